package xmss

import (
	"encoding/binary"
	"errors"

	"github.com/pqwallet/walletd/internal/hash"
)

// ExtendedSeedSize is the total length of an extended seed: a 3-byte
// descriptor followed by a 48-byte seed body (spec §3).
const ExtendedSeedSize = DescriptorSize + SeedBodySize

// SeedBodySize is the length of the random seed material following the
// descriptor in an extended seed.
const SeedBodySize = 48

// Sentinel errors, named to match spec §4.1's "Failure modes".
var (
	ErrExhaustedKey  = errors.New("xmss: ots index exhausted for this key's height")
	ErrInvalidSeed   = errors.New("xmss: invalid extended seed")
	ErrWrongHeight   = errors.New("xmss: signature authentication path does not match key height")
)

// KeyPair is the materialized state for one extended seed: its seeds and
// a fully built Merkle tree, ready to sign any leaf index or verify any
// signature. It holds no OTS cursor — per spec §4.1, the engine never
// owns "which index is next"; that's internal/walletstore's job.
type KeyPair struct {
	Descriptor Descriptor
	skSeed     [hash.Size]byte
	skPrf      [hash.Size]byte
	pubSeed    [hash.Size]byte
	tree       *tree
}

// Derive builds the full key-pair state (seeds, Merkle tree, root) from a
// 51-byte extended seed. This is the expensive call in the engine: it is
// O(2^h) hash operations, dominated by the WOTS+ key generation per leaf.
func Derive(extendedSeed []byte) (*KeyPair, error) {
	if len(extendedSeed) != ExtendedSeedSize {
		return nil, ErrInvalidSeed
	}
	d, err := DecodeDescriptor(extendedSeed[:DescriptorSize])
	if err != nil {
		return nil, ErrInvalidSeed
	}
	skSeed, skPrf, pubSeed, err := expandSeeds(d.HashFunc, extendedSeed[DescriptorSize:])
	if err != nil {
		return nil, err
	}
	t, err := buildTree(d.HashFunc, skSeed[:], pubSeed[:], d.Height)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Descriptor: d, skSeed: skSeed, skPrf: skPrf, pubSeed: pubSeed, tree: t}, nil
}

// PublicSeed returns the 32-byte public seed (PKS of spec §4.3/§4.4).
func (kp *KeyPair) PublicSeed() [hash.Size]byte { return kp.pubSeed }

// Root returns the Merkle root.
func (kp *KeyPair) Root() [hash.Size]byte { return kp.tree.root() }

// PublicKey renders the 67-byte wire-form public key: descriptor ||
// public seed || root (spec §4.4).
func (kp *KeyPair) PublicKey() [PublicKeySize]byte {
	var out [PublicKeySize]byte
	desc := kp.Descriptor.Encode()
	copy(out[:DescriptorSize], desc[:])
	copy(out[DescriptorSize:DescriptorSize+hash.Size], kp.pubSeed[:])
	copy(out[DescriptorSize+hash.Size:], kp.tree.root()[:])
	return out
}

// Signature is a parsed XMSS signature: the leaf index it was produced
// at, the per-signature randomizer r, the WOTS+ one-time signature, and
// the authentication path proving that leaf's membership in the tree.
type Signature struct {
	Index    uint64
	R        [hash.Size]byte
	Wots     [wotsLen][hash.Size]byte
	AuthPath [][hash.Size]byte
}

// Sign produces a signature on msg at the given leaf index. index
// ownership (has it been used before?) is the caller's responsibility —
// this function will happily re-sign the same index twice, which is
// exactly the catastrophic case the wallet store's cursor exists to
// prevent (spec §4.1 "OTS index ownership").
func (kp *KeyPair) Sign(index uint64, msg [hash.Size]byte) (Signature, error) {
	if index >= kp.Descriptor.NumLeaves() {
		return Signature{}, ErrExhaustedKey
	}
	r, err := prf(kp.Descriptor.HashFunc, kp.skPrf[:], encodeCounter(index))
	if err != nil {
		return Signature{}, err
	}
	digest, err := messageDigest(kp.Descriptor.HashFunc, r, kp.tree.root(), index, msg[:])
	if err != nil {
		return Signature{}, err
	}
	wotsSig, err := wotsSign(kp.Descriptor.HashFunc, kp.skSeed[:], kp.pubSeed[:], index, digest)
	if err != nil {
		return Signature{}, err
	}
	return Signature{
		Index:    index,
		R:        r,
		Wots:     wotsSig,
		AuthPath: kp.tree.authPath(index),
	}, nil
}

// Verify checks that sig is a valid signature on msg under pub (a
// 67-byte wire-form public key as produced by PublicKey).
func Verify(pub []byte, msg [hash.Size]byte, sig Signature) (bool, error) {
	if len(pub) != PublicKeySize {
		return false, ErrInvalidSeed
	}
	d, err := DecodeDescriptor(pub[:DescriptorSize])
	if err != nil {
		return false, err
	}
	if uint8(len(sig.AuthPath)) != d.Height {
		return false, ErrWrongHeight
	}
	if sig.Index >= d.NumLeaves() {
		return false, ErrExhaustedKey
	}
	var pubSeed, root [hash.Size]byte
	copy(pubSeed[:], pub[DescriptorSize:DescriptorSize+hash.Size])
	copy(root[:], pub[DescriptorSize+hash.Size:])

	digest, err := messageDigest(d.HashFunc, sig.R, root, sig.Index, msg[:])
	if err != nil {
		return false, err
	}
	wotsPk, err := wotsPkFromSig(d.HashFunc, pubSeed[:], sig.Index, digest, sig.Wots)
	if err != nil {
		return false, err
	}
	leaf, err := lTree(d.HashFunc, pubSeed[:], sig.Index, wotsPk)
	if err != nil {
		return false, err
	}
	computedRoot, err := rootFromAuthPath(d.HashFunc, pubSeed[:], sig.Index, leaf, sig.AuthPath)
	if err != nil {
		return false, err
	}
	return computedRoot == root, nil
}

// Marshal encodes a signature to its fixed-size wire form: big-endian
// index || r || wotsLen chain values || authPath (one entry per tree
// level).
func (s Signature) Marshal() []byte {
	out := make([]byte, sigIndexSize+sigRSize+wotsLen*wotsN+len(s.AuthPath)*wotsN)
	off := 0
	binary.BigEndian.PutUint32(out[off:], uint32(s.Index))
	off += sigIndexSize
	copy(out[off:], s.R[:])
	off += sigRSize
	for i := 0; i < wotsLen; i++ {
		copy(out[off:], s.Wots[i][:])
		off += wotsN
	}
	for _, node := range s.AuthPath {
		copy(out[off:], node[:])
		off += wotsN
	}
	return out
}

// UnmarshalSignature parses a signature of the wire form Marshal
// produces, given the tree height (needed to know how many
// authentication-path entries follow the WOTS+ signature).
func UnmarshalSignature(b []byte, height uint8) (Signature, error) {
	want := SignatureSize(height)
	if len(b) != want {
		return Signature{}, ErrInvalidSeed
	}
	var s Signature
	off := 0
	s.Index = uint64(binary.BigEndian.Uint32(b[off:]))
	off += sigIndexSize
	copy(s.R[:], b[off:off+sigRSize])
	off += sigRSize
	for i := 0; i < wotsLen; i++ {
		copy(s.Wots[i][:], b[off:off+wotsN])
		off += wotsN
	}
	s.AuthPath = make([][hash.Size]byte, height)
	for i := range s.AuthPath {
		copy(s.AuthPath[i][:], b[off:off+wotsN])
		off += wotsN
	}
	return s, nil
}
