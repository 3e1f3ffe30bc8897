// Package rpcapi implements the "grpc-like method surface" of spec §6
// as a plain Go service interface: one method per RPC, taking a request
// struct and returning a response struct whose Envelope carries the
// status/error_message pair. http.go exposes the same surface over
// JSON-over-HTTP, since no RPC framework in the retrieval pack could be
// wired here (see DESIGN.md).
package rpcapi

import (
	"context"

	"github.com/pqwallet/walletd/internal/daemon"
	"github.com/pqwallet/walletd/internal/daemonerr"
	"github.com/pqwallet/walletd/internal/hash"
	"github.com/pqwallet/walletd/internal/qaddress"
	"github.com/pqwallet/walletd/internal/txmodel"
)

// Service adapts a *daemon.Daemon to the request/response shapes of
// spec §6. It holds no state of its own.
type Service struct {
	d *daemon.Daemon
}

// NewService wraps d.
func NewService(d *daemon.Daemon) *Service {
	return &Service{d: d}
}

func parseQaddresses(qaddrs []string) ([][39]byte, error) {
	out := make([][39]byte, len(qaddrs))
	for i, q := range qaddrs {
		addr, err := qaddress.Parse(q)
		if err != nil {
			return nil, daemonerr.Wrap(daemonerr.KindMalformedAddress, err)
		}
		out[i] = addr
	}
	return out, nil
}

// --- AddNewAddress ---

type AddNewAddressRequest struct {
	Height       uint8     `json:"height"`
	HashFunction hash.Func `json:"hash_function"`
}

type AddNewAddressResponse struct {
	Envelope
	Qaddress string `json:"qaddress,omitempty"`
}

func (s *Service) AddNewAddress(_ context.Context, req AddNewAddressRequest) AddNewAddressResponse {
	qaddr, err := s.d.AddNewAddress(req.Height, req.HashFunction)
	return AddNewAddressResponse{Envelope: envelopeFor(err), Qaddress: qaddr}
}

// --- AddAddressFromSeed ---

type AddAddressFromSeedRequest struct {
	Seed string `json:"seed"`
}

type AddAddressFromSeedResponse struct {
	Envelope
	Qaddress string `json:"qaddress,omitempty"`
}

func (s *Service) AddAddressFromSeed(_ context.Context, req AddAddressFromSeedRequest) AddAddressFromSeedResponse {
	qaddr, err := s.d.AddAddressFromSeed(req.Seed)
	return AddAddressFromSeedResponse{Envelope: envelopeFor(err), Qaddress: qaddr}
}

// --- ListAddresses ---

type ListAddressesResponse struct {
	Envelope
	Qaddresses []string `json:"qaddresses,omitempty"`
}

func (s *Service) ListAddresses(_ context.Context) ListAddressesResponse {
	return ListAddressesResponse{Envelope: envelopeFor(nil), Qaddresses: s.d.ListAddresses()}
}

// --- RemoveAddress ---

type RemoveAddressRequest struct {
	Qaddress string `json:"qaddress"`
}

type RemoveAddressResponse struct {
	Envelope
	Removed bool `json:"removed"`
}

func (s *Service) RemoveAddress(_ context.Context, req RemoveAddressRequest) RemoveAddressResponse {
	removed, err := s.d.RemoveAddress(req.Qaddress)
	return RemoveAddressResponse{Envelope: envelopeFor(err), Removed: removed}
}

// --- GetRecoverySeeds ---

type GetRecoverySeedsRequest struct {
	Qaddress string `json:"qaddress"`
}

type GetRecoverySeedsResponse struct {
	Envelope
	HexSeed  string `json:"hexseed,omitempty"`
	Mnemonic string `json:"mnemonic,omitempty"`
}

func (s *Service) GetRecoverySeeds(_ context.Context, req GetRecoverySeedsRequest) GetRecoverySeedsResponse {
	hexSeed, mnemonic, err := s.d.GetRecoverySeeds(req.Qaddress)
	return GetRecoverySeedsResponse{Envelope: envelopeFor(err), HexSeed: hexSeed, Mnemonic: mnemonic}
}

// --- GetWalletInfo ---

type GetWalletInfoResponse struct {
	Envelope
	Version      int  `json:"version"`
	AddressCount int  `json:"address_count"`
	Encrypted    bool `json:"encrypted"`
}

func (s *Service) GetWalletInfo(_ context.Context) GetWalletInfoResponse {
	version, count, encrypted := s.d.GetWalletInfo()
	return GetWalletInfoResponse{Envelope: envelopeFor(nil), Version: version, AddressCount: count, Encrypted: encrypted}
}

// --- EncryptWallet / LockWallet / UnlockWallet / ChangePassphrase ---

type EncryptWalletRequest struct {
	Passphrase string `json:"passphrase"`
}

func (s *Service) EncryptWallet(_ context.Context, req EncryptWalletRequest) Envelope {
	return envelopeFor(s.d.EncryptWallet(req.Passphrase))
}

func (s *Service) LockWallet(_ context.Context) Envelope {
	return envelopeFor(s.d.LockWallet())
}

type UnlockWalletRequest struct {
	Passphrase string `json:"passphrase"`
}

func (s *Service) UnlockWallet(_ context.Context, req UnlockWalletRequest) Envelope {
	return envelopeFor(s.d.UnlockWallet(req.Passphrase))
}

type ChangePassphraseRequest struct {
	Old string `json:"old"`
	New string `json:"new"`
}

func (s *Service) ChangePassphrase(_ context.Context, req ChangePassphraseRequest) Envelope {
	return envelopeFor(s.d.ChangePassphrase(req.Old, req.New))
}

// --- relay_* ---

// relayCommon is the part of every relay_* request common across the
// five variants (spec §6: "each takes signer qaddress, optional master
// qaddress, fee, ots_index, and variant-specific fields").
type relayCommon struct {
	SignerQaddress string `json:"signer_qaddress"`
	MasterQaddress string `json:"master_qaddress,omitempty"`
	Fee            uint64 `json:"fee"`
	OtsIndex       uint64 `json:"ots_index"`
}

// RelayResponse is shared by every relay_* RPC.
type RelayResponse struct {
	Envelope
	TransactionHash string `json:"transaction_hash,omitempty"`
}

func relayResponse(tx *txmodel.Transaction, err error) RelayResponse {
	if err != nil {
		return RelayResponse{Envelope: envelopeFor(err)}
	}
	return RelayResponse{Envelope: envelopeFor(nil), TransactionHash: hexString(tx.TransactionHash[:])}
}

type RelayTransferTxnRequest struct {
	relayCommon
	AddressesTo []string `json:"addresses_to"`
	Amounts     []uint64 `json:"amounts"`
}

func (s *Service) RelayTransferTxn(ctx context.Context, req RelayTransferTxnRequest) RelayResponse {
	addrs, err := parseQaddresses(req.AddressesTo)
	if err != nil {
		return RelayResponse{Envelope: envelopeFor(err)}
	}
	tx, err := s.d.RelayTransferTxn(ctx, req.SignerQaddress, req.MasterQaddress, req.Fee, req.OtsIndex, addrs, req.Amounts)
	return relayResponse(tx, err)
}

type RelayMessageTxnRequest struct {
	relayCommon
	Message []byte `json:"message"`
}

func (s *Service) RelayMessageTxn(ctx context.Context, req RelayMessageTxnRequest) RelayResponse {
	tx, err := s.d.RelayMessageTxn(ctx, req.SignerQaddress, req.MasterQaddress, req.Fee, req.OtsIndex, req.Message)
	return relayResponse(tx, err)
}

type RelayTokenTxnRequest struct {
	relayCommon
	Symbol           []byte   `json:"symbol"`
	Name             []byte   `json:"name"`
	Owner            string   `json:"owner"`
	Decimals         uint8    `json:"decimals"`
	InitialAddresses []string `json:"initial_addresses"`
	InitialAmounts   []uint64 `json:"initial_amounts"`
}

func (s *Service) RelayTokenTxn(ctx context.Context, req RelayTokenTxnRequest) RelayResponse {
	owner, err := qaddress.Parse(req.Owner)
	if err != nil {
		return RelayResponse{Envelope: envelopeFor(daemonerr.Wrap(daemonerr.KindMalformedAddress, err))}
	}
	addrs, err := parseQaddresses(req.InitialAddresses)
	if err != nil {
		return RelayResponse{Envelope: envelopeFor(err)}
	}
	tx, err := s.d.RelayTokenTxn(ctx, req.SignerQaddress, req.MasterQaddress, req.Fee, req.OtsIndex,
		req.Symbol, req.Name, owner, req.Decimals, addrs, req.InitialAmounts)
	return relayResponse(tx, err)
}

type RelayTransferTokenTxnRequest struct {
	relayCommon
	TokenHash   string   `json:"token_hash"`
	AddressesTo []string `json:"addresses_to"`
	Amounts     []uint64 `json:"amounts"`
}

func (s *Service) RelayTransferTokenTxn(ctx context.Context, req RelayTransferTokenTxnRequest) RelayResponse {
	tokenHash, err := decodeHash32(req.TokenHash)
	if err != nil {
		return RelayResponse{Envelope: envelopeFor(daemonerr.Wrap(daemonerr.KindValidation, err))}
	}
	addrs, err := parseQaddresses(req.AddressesTo)
	if err != nil {
		return RelayResponse{Envelope: envelopeFor(err)}
	}
	tx, err := s.d.RelayTransferTokenTxn(ctx, req.SignerQaddress, req.MasterQaddress, req.Fee, req.OtsIndex, tokenHash, addrs, req.Amounts)
	return relayResponse(tx, err)
}

type RelaySlaveTxnRequest struct {
	relayCommon
	SlavePublicKeys [][]byte             `json:"slave_public_keys"`
	AccessTypes     []txmodel.AccessType `json:"access_types"`
}

func (s *Service) RelaySlaveTxn(ctx context.Context, req RelaySlaveTxnRequest) RelayResponse {
	tx, err := s.d.RelaySlaveTxn(ctx, req.SignerQaddress, req.MasterQaddress, req.Fee, req.OtsIndex, req.SlavePublicKeys, req.AccessTypes)
	return relayResponse(tx, err)
}

// --- forwarded-to-node queries ---

type GetTransactionRequest struct {
	Hash string `json:"hash"`
}

type GetTransactionResponse struct {
	Envelope
	Data          []byte `json:"data,omitempty"`
	Confirmations uint64 `json:"confirmations,omitempty"`
}

func (s *Service) GetTransaction(ctx context.Context, req GetTransactionRequest) GetTransactionResponse {
	h, err := decodeHash32(req.Hash)
	if err != nil {
		return GetTransactionResponse{Envelope: envelopeFor(daemonerr.Wrap(daemonerr.KindValidation, err))}
	}
	obj, err := s.d.GetTransaction(ctx, h)
	if err != nil {
		return GetTransactionResponse{Envelope: envelopeFor(daemonerr.Wrap(daemonerr.KindNodeUnavailable, err))}
	}
	return GetTransactionResponse{Envelope: envelopeFor(nil), Data: obj.Data, Confirmations: obj.Confirmations}
}

type GetBalanceRequest struct {
	Qaddress string `json:"qaddress"`
}

type GetBalanceResponse struct {
	Envelope
	Balance uint64 `json:"balance"`
}

func (s *Service) GetBalance(ctx context.Context, req GetBalanceRequest) GetBalanceResponse {
	balance, err := s.d.GetBalance(ctx, req.Qaddress)
	if err != nil {
		return GetBalanceResponse{Envelope: envelopeFor(daemonerr.Wrap(daemonerr.KindNodeUnavailable, err))}
	}
	return GetBalanceResponse{Envelope: envelopeFor(nil), Balance: balance}
}

type GetOTSRequest struct {
	Qaddress string `json:"qaddress"`
}

type GetOTSResponse struct {
	Envelope
	Bitfield   []byte `json:"bitfield,omitempty"`
	NextUnused uint64 `json:"next_unused"`
}

func (s *Service) GetOTS(ctx context.Context, req GetOTSRequest) GetOTSResponse {
	bitfield, next, err := s.d.GetOTS(ctx, req.Qaddress)
	if err != nil {
		return GetOTSResponse{Envelope: envelopeFor(daemonerr.Wrap(daemonerr.KindNodeUnavailable, err))}
	}
	return GetOTSResponse{Envelope: envelopeFor(nil), Bitfield: bitfield, NextUnused: next}
}

type GetHeightResponse struct {
	Envelope
	Height uint64 `json:"height"`
}

func (s *Service) GetHeight(ctx context.Context) GetHeightResponse {
	height, err := s.d.GetHeight(ctx)
	if err != nil {
		return GetHeightResponse{Envelope: envelopeFor(daemonerr.Wrap(daemonerr.KindNodeUnavailable, err))}
	}
	return GetHeightResponse{Envelope: envelopeFor(nil), Height: height}
}

type GetBlockRequest struct {
	Hash string `json:"hash"`
}

type GetBlockResponse struct {
	Envelope
	Data []byte `json:"data,omitempty"`
}

func (s *Service) GetBlock(ctx context.Context, req GetBlockRequest) GetBlockResponse {
	h, err := decodeHash32(req.Hash)
	if err != nil {
		return GetBlockResponse{Envelope: envelopeFor(daemonerr.Wrap(daemonerr.KindValidation, err))}
	}
	obj, err := s.d.GetBlock(ctx, h)
	if err != nil {
		return GetBlockResponse{Envelope: envelopeFor(daemonerr.Wrap(daemonerr.KindNodeUnavailable, err))}
	}
	return GetBlockResponse{Envelope: envelopeFor(nil), Data: obj.Data}
}

type GetBlockByNumberRequest struct {
	Number uint64 `json:"number"`
}

type GetBlockByNumberResponse struct {
	Envelope
	Data []byte `json:"data,omitempty"`
}

func (s *Service) GetBlockByNumber(ctx context.Context, req GetBlockByNumberRequest) GetBlockByNumberResponse {
	data, err := s.d.GetBlockByNumber(ctx, req.Number)
	if err != nil {
		return GetBlockByNumberResponse{Envelope: envelopeFor(daemonerr.Wrap(daemonerr.KindNodeUnavailable, err))}
	}
	return GetBlockByNumberResponse{Envelope: envelopeFor(nil), Data: data}
}
