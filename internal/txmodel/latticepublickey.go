package txmodel

import "errors"

// Fixed public-key sizes for the lattice-based schemes this variant
// commits to. Spec §4.4 leaves the exact parameter set to "the scheme"
// without naming one; these are the Kyber768 and Dilithium3 NIST
// round-3 public-key sizes, the mid-security parameter sets most
// post-quantum wallet designs default to (see DESIGN.md).
const (
	KyberPublicKeySize     = 1184
	DilithiumPublicKeySize = 1952
)

var (
	ErrInvalidKyberPublicKey     = errors.New("txmodel: kyber public key has the wrong length")
	ErrInvalidDilithiumPublicKey = errors.New("txmodel: dilithium public key has the wrong length")
)

// LatticePublicKeyBody registers auxiliary lattice-based public keys
// for a future post-XMSS migration path (spec §4.4, "LatticePublicKey").
type LatticePublicKeyBody struct {
	KyberPK     [KyberPublicKeySize]byte
	DilithiumPK [DilithiumPublicKeySize]byte
}

func (b *LatticePublicKeyBody) Kind() Kind { return KindLatticePublicKey }

func (b *LatticePublicKeyBody) validate() error {
	return nil
}

func (b *LatticePublicKeyBody) encode(e *encoder) {
	e.writeFixed(b.KyberPK[:])
	e.writeFixed(b.DilithiumPK[:])
}
