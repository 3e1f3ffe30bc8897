package txmodel

import (
	"github.com/pqwallet/walletd/internal/hash"
	"github.com/pqwallet/walletd/internal/xmss"
)

// Transaction is the common envelope of spec §4.4 wrapping one of the
// six variant bodies.
type Transaction struct {
	MasterAddr      []byte // empty, or addressSize bytes
	Fee             uint64
	PublicKey       [xmss.PublicKeySize]byte
	Nonce           uint64
	TransactionHash [hash.Size]byte
	Signature       []byte
	OtsIndexUsed    uint64
	Body            Variant
}

// New validates body and builds a Transaction with its canonical
// transaction_hash computed, ready to be signed (spec §4.4). Nonce is
// always 0 at construction — per spec §4.4 it is "filled by node".
// Signature is left nil until Sign is called.
func New(masterAddr []byte, fee uint64, publicKey [xmss.PublicKeySize]byte, body Variant) (*Transaction, error) {
	if len(masterAddr) != 0 && len(masterAddr) != addressSize {
		return nil, ErrInvalidAddress
	}
	if err := body.validate(); err != nil {
		return nil, err
	}

	tx := &Transaction{
		MasterAddr: masterAddr,
		Fee:        fee,
		PublicKey:  publicKey,
		Body:       body,
	}
	digest, err := tx.computeHash()
	if err != nil {
		return nil, err
	}
	tx.TransactionHash = digest
	return tx, nil
}

// computeHash builds the canonical field-ordered, length-prefixed
// preimage — variant-specific fields first, then the common envelope
// fields, excluding signature and nonce (spec §4.4, "Canonical hash") —
// and reduces it with SHA2-256. Transaction-hash computation always
// uses SHA2-256 regardless of the signer's chosen XMSS hash function,
// the same way qaddress derivation is pinned to a single algorithm
// independent of any one key's descriptor (see DESIGN.md).
func (tx *Transaction) computeHash() ([hash.Size]byte, error) {
	e := newEncoder()
	e.writeUint8(uint8(tx.Body.Kind()))
	tx.Body.encode(e)
	e.writeVarBytes(tx.MasterAddr)
	e.writeUint64(tx.Fee)
	e.writeFixed(tx.PublicKey[:])
	return hash.Sum(hash.SHA2_256, e.bytes())
}

// Sign signs the transaction's hash with kp at the given OTS leaf
// index and records both the signature and the index used (spec §4.4,
// "Signature binding"). Index ownership — has it been used before? —
// belongs entirely to the caller (internal/walletstore's cursor); Sign
// itself re-signs happily at any unexhausted index.
func (tx *Transaction) Sign(kp *xmss.KeyPair, index uint64) error {
	sig, err := kp.Sign(index, tx.TransactionHash)
	if err != nil {
		return err
	}
	tx.Signature = sig.Marshal()
	tx.OtsIndexUsed = index
	return nil
}

// Marshal renders the committed artifact spec §4.6 step 6 describes —
// "(envelope, signature, ots_index_used)" — as a flat byte string
// suitable for handing to NodeClient.PushTransaction.
func (tx *Transaction) Marshal() []byte {
	e := newEncoder()
	e.writeUint8(uint8(tx.Body.Kind()))
	tx.Body.encode(e)
	e.writeVarBytes(tx.MasterAddr)
	e.writeUint64(tx.Fee)
	e.writeFixed(tx.PublicKey[:])
	e.writeUint64(tx.Nonce)
	e.writeFixed(tx.TransactionHash[:])
	e.writeVarBytes(tx.Signature)
	return e.bytes()
}

// Verify checks tx's signature against its own transaction_hash and
// embedded public key.
func (tx *Transaction) Verify() (bool, error) {
	if len(tx.Signature) == 0 {
		return false, ErrUnsignedTransaction
	}
	d, err := xmss.DecodeDescriptor(tx.PublicKey[:3])
	if err != nil {
		return false, err
	}
	sig, err := xmss.UnmarshalSignature(tx.Signature, d.Height)
	if err != nil {
		return false, err
	}
	return xmss.Verify(tx.PublicKey[:], tx.TransactionHash, sig)
}
