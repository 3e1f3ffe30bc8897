package daemon

import (
	"context"
	"fmt"

	"github.com/pqwallet/walletd/internal/daemonerr"
	"github.com/pqwallet/walletd/internal/nodeclient"
	"github.com/pqwallet/walletd/internal/qaddress"
	"github.com/pqwallet/walletd/internal/txmodel"
)

// relay runs the six-step pipeline every relay_* RPC shares (spec
// §4.6, "Relay pipeline"). body has already been built by the specific
// Relay*Txn caller; relay resolves the signer, validates the OTS index,
// persists the cursor bump before signing, signs, and pushes.
//
// Steps 1-5 run under the daemon's wallet mutex (spec §5): without it,
// two concurrent calls for the same signer could both read the same
// cursor, both pass the ots_index check, and both sign at the same
// leaf index — the exact OTS reuse I1/I2 exist to prevent. The mutex
// is released before step 6's outbound call, which must not serialize
// the whole daemon.
func (d *Daemon) relay(ctx context.Context, signerQaddr, masterQaddr string, fee, otsIndex uint64, body txmodel.Variant) (*txmodel.Transaction, error) {
	if err := d.requireMutable(); err != nil {
		return nil, err
	}

	tx, err := d.prepareAndSign(signerQaddr, masterQaddr, fee, otsIndex, body)
	if err != nil {
		return nil, err
	}

	// Step 6: push. The cursor bump from step 4 is never rolled back
	// from here on, regardless of outcome.
	callCtx, cancel := nodeclient.WithDefaultTimeout(ctx)
	defer cancel()
	result, err := d.node.PushTransaction(callCtx, tx.Marshal())
	if err != nil {
		log.Warnf("push transaction for %s failed: %v", signerQaddr, err)
		return nil, daemonerr.Wrap(daemonerr.KindNodeUnavailable, err)
	}
	if result != nodeclient.PushSubmitted {
		log.Warnf("node rejected transaction for %s: %s", signerQaddr, result)
		return nil, daemonerr.Wrap(daemonerr.KindNodeRejected, fmt.Errorf("daemon: node returned %s", result))
	}

	log.Infof("relayed %s transaction for %s at ots_index %d", body.Kind(), signerQaddr, otsIndex)
	return tx, nil
}

// prepareAndSign runs steps 1-5 of the relay pipeline under the wallet
// mutex: resolve the signer, validate the caller-supplied ots_index
// against the stored cursor, build the canonical transaction, bump and
// persist the cursor, then sign. Holding the mutex across the whole
// sequence is what makes the cursor read and the cursor bump atomic
// with respect to other concurrent relay calls for the same signer.
func (d *Daemon) prepareAndSign(signerQaddr, masterQaddr string, fee, otsIndex uint64, body txmodel.Variant) (*txmodel.Transaction, error) {
	d.walletMu.Lock()
	defer d.walletMu.Unlock()

	// Step 1: resolve signer.
	kp, cursor, err := d.keyPairFor(signerQaddr)
	if err != nil {
		return nil, err
	}

	// Step 2: validate the caller-supplied ots_index.
	if otsIndex < cursor {
		return nil, daemonerr.Wrap(daemonerr.KindOtsIndexConflict,
			fmt.Errorf("daemon: ots_index %d is behind cursor %d", otsIndex, cursor))
	}
	if otsIndex >= kp.Descriptor.NumLeaves() {
		return nil, daemonerr.Wrap(daemonerr.KindOtsExhausted,
			fmt.Errorf("daemon: ots_index %d exceeds key capacity 2^%d", otsIndex, kp.Descriptor.Height))
	}

	var masterAddr []byte
	if masterQaddr != "" {
		addr, err := qaddress.Parse(masterQaddr)
		if err != nil {
			return nil, daemonerr.Wrap(daemonerr.KindMalformedAddress, err)
		}
		masterAddr = addr[:]
	}

	// Step 3: build the transaction (and its canonical hash).
	pub := kp.PublicKey()
	tx, err := txmodel.New(masterAddr, fee, pub, body)
	if err != nil {
		return nil, daemonerr.Wrap(daemonerr.KindValidation, err)
	}

	// Step 4: bump the cursor and persist BEFORE signing or sending —
	// a crash after this point must never allow the same OTS index to
	// be reused (I1, I2). Still under the wallet mutex, so no other
	// relay call can observe the pre-bump cursor once this one has.
	if err := d.store.BumpCursor(signerQaddr, otsIndex+1); err != nil {
		return nil, err
	}

	// Step 5: sign.
	if err := tx.Sign(kp, otsIndex); err != nil {
		return nil, err
	}
	return tx, nil
}

// RelayTransferTxn relays a Transfer transaction (spec §6).
func (d *Daemon) RelayTransferTxn(ctx context.Context, signerQaddr, masterQaddr string, fee, otsIndex uint64, addressesTo [][39]byte, amounts []uint64) (*txmodel.Transaction, error) {
	body := &txmodel.TransferBody{AddressesTo: addressesTo, Amounts: amounts}
	return d.relay(ctx, signerQaddr, masterQaddr, fee, otsIndex, body)
}

// RelayMessageTxn relays a Message transaction (spec §6).
func (d *Daemon) RelayMessageTxn(ctx context.Context, signerQaddr, masterQaddr string, fee, otsIndex uint64, message []byte) (*txmodel.Transaction, error) {
	body := &txmodel.MessageBody{Data: message}
	return d.relay(ctx, signerQaddr, masterQaddr, fee, otsIndex, body)
}

// RelayTokenTxn relays a Token-create transaction (spec §6).
func (d *Daemon) RelayTokenTxn(ctx context.Context, signerQaddr, masterQaddr string, fee, otsIndex uint64, symbol, name []byte, owner [39]byte, decimals uint8, initialAddresses [][39]byte, initialAmounts []uint64) (*txmodel.Transaction, error) {
	body := &txmodel.TokenBody{
		Symbol:   symbol,
		Name:     name,
		Owner:    owner,
		Decimals: decimals,
		InitialBalances: txmodel.TransferBody{
			AddressesTo: initialAddresses,
			Amounts:     initialAmounts,
		},
	}
	return d.relay(ctx, signerQaddr, masterQaddr, fee, otsIndex, body)
}

// RelayTransferTokenTxn relays a TransferToken transaction (spec §6).
func (d *Daemon) RelayTransferTokenTxn(ctx context.Context, signerQaddr, masterQaddr string, fee, otsIndex uint64, tokenHash [32]byte, addressesTo [][39]byte, amounts []uint64) (*txmodel.Transaction, error) {
	body := &txmodel.TransferTokenBody{TokenHash: tokenHash, AddressesTo: addressesTo, Amounts: amounts}
	return d.relay(ctx, signerQaddr, masterQaddr, fee, otsIndex, body)
}

// RelaySlaveTxn relays a Slave transaction (spec §6).
func (d *Daemon) RelaySlaveTxn(ctx context.Context, signerQaddr, masterQaddr string, fee, otsIndex uint64, slavePublicKeys [][]byte, accessTypes []txmodel.AccessType) (*txmodel.Transaction, error) {
	body := &txmodel.SlaveBody{SlavePublicKeys: slavePublicKeys, AccessTypes: accessTypes}
	return d.relay(ctx, signerQaddr, masterQaddr, fee, otsIndex, body)
}
