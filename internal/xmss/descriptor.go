// Package xmss implements the stateless cryptographic core of the wallet's
// signature scheme: seed -> key derivation, Merkle authentication paths,
// WOTS+ one-time signatures, and verification. It deliberately does NOT
// track which leaf index has been used — per spec §4.1 ("OTS index
// ownership") that bookkeeping belongs to the wallet store
// (internal/walletstore), not the engine. Every exported function here
// except NewRandomSeed, which draws from crypto/rand, is a pure function
// of its arguments.
//
// The construction (ADRS-addressed PRF/hash calls, WOTS+ chains, an L-tree
// collapsing the WOTS+ public key into a single leaf, a binary Merkle tree
// over the leaves) follows github.com/bwesterb/go-xmssmt, simplified to a
// single fixed security parameter (n = 32 bytes) and a single XMSS tree
// (no XMSS^MT layering), matching what spec.md's descriptor actually needs.
package xmss

import (
	"fmt"

	"github.com/pqwallet/walletd/internal/hash"
)

// Scheme identifies the signature scheme byte of the descriptor. Only one
// is defined; the byte is reserved so a future scheme can be introduced
// without shifting the other descriptor fields.
type Scheme uint8

// SchemeXMSS is the only signature scheme this engine implements.
const SchemeXMSS Scheme = 0

// DescriptorSize is the length in bytes of the 3-byte descriptor prefix
// (spec §3: "hash function id, tree height, signature scheme id").
const DescriptorSize = 3

// allowedHeights enumerates the tree heights spec §3 permits. A height not
// in this set is rejected by Validate / DecodeDescriptor.
var allowedHeights = map[uint8]bool{
	4: true, 6: true, 8: true, 10: true,
	12: true, 14: true, 16: true, 18: true,
}

// Descriptor is the 3-byte header that precedes every extended seed,
// address, and public key: which hash function to use, how tall the
// Merkle tree is, and which signature scheme (always XMSS here).
type Descriptor struct {
	HashFunc hash.Func
	Height   uint8
	Scheme   Scheme
}

// ErrInvalidHeight is returned when a descriptor names a tree height
// outside the {4,6,8,...,18} set spec §3 defines.
var ErrInvalidHeight = fmt.Errorf("xmss: invalid tree height")

// ErrInvalidScheme is returned when a descriptor names a signature scheme
// other than XMSS.
var ErrInvalidScheme = fmt.Errorf("xmss: invalid signature scheme")

// Validate checks that the descriptor's fields are all individually legal.
// It checks the hash function byte with hash.Parse even when the caller
// already built HashFunc via hash.Parse, since a Descriptor can be built
// by hand.
func (d Descriptor) Validate() error {
	if _, err := hash.Parse(byte(d.HashFunc)); err != nil {
		return err
	}
	if !allowedHeights[d.Height] {
		return ErrInvalidHeight
	}
	if d.Scheme != SchemeXMSS {
		return ErrInvalidScheme
	}
	return nil
}

// Encode serializes the descriptor to its 3-byte wire form.
func (d Descriptor) Encode() [DescriptorSize]byte {
	return [DescriptorSize]byte{byte(d.HashFunc), d.Height, byte(d.Scheme)}
}

// DecodeDescriptor parses and validates a 3-byte descriptor.
func DecodeDescriptor(b []byte) (Descriptor, error) {
	if len(b) != DescriptorSize {
		return Descriptor{}, fmt.Errorf("xmss: descriptor must be %d bytes, got %d", DescriptorSize, len(b))
	}
	f, err := hash.Parse(b[0])
	if err != nil {
		return Descriptor{}, err
	}
	d := Descriptor{HashFunc: f, Height: b[1], Scheme: Scheme(b[2])}
	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// NumLeaves returns 2^h, the number of one-time signatures this
// descriptor's tree height supports.
func (d Descriptor) NumLeaves() uint64 {
	return uint64(1) << d.Height
}
