package xmss

import (
	"encoding/binary"

	"github.com/pqwallet/walletd/internal/hash"
)

// Domain-separation tags mixed in as the first byte of every hash input,
// keeping the WOTS+ chain function, the tree function, the PRF and the
// seed expansion from ever being confusable with one another even though
// they all ultimately call the same underlying hash.Sum. This mirrors the
// HASH_PADDING_* constants of github.com/bwesterb/go-xmssmt (hash.go),
// renamed to this package's own scheme.
const (
	tagChainF    = 0x00
	tagTreeH     = 0x01
	tagMessage   = 0x02
	tagPRF       = 0x03
	tagSeedSK    = 0x10
	tagSeedPRF   = 0x11
	tagSeedPub   = 0x12
)

// encodeCounter renders x as a 32-byte big-endian value, the fixed-width
// encoding spec §4.1 requires for every PRF input ("All PRF inputs are
// fixed-length big-endian").
func encodeCounter(x uint64) []byte {
	buf := make([]byte, wotsN)
	binary.BigEndian.PutUint64(buf[wotsN-8:], x)
	return buf
}

func tagByte(tag byte) []byte { return []byte{tag} }

// prf computes a keyed pseudorandom function: PRF(key, msg) =
// H(tag || key || msg), under the descriptor's chosen hash function.
func prf(f hash.Func, key, msg []byte) ([hash.Size]byte, error) {
	return hash.Sum(f, tagByte(tagPRF), key, msg)
}

// expandSeeds derives the three working seeds (secret chain seed, secret
// randomization seed, public seed) from the 48-byte seed half of an
// extended seed. spec §3 only specifies the extended seed's total layout,
// not how its seed bytes become the SK/PRF/public sub-seeds an XMSS
// implementation needs; this engine domain-separates a single expansion
// hash per sub-seed, the same shape as a single-step HKDF-expand.
func expandSeeds(f hash.Func, seed []byte) (skSeed, skPrf, pubSeed [hash.Size]byte, err error) {
	skSeed, err = hash.Sum(f, tagByte(tagSeedSK), seed)
	if err != nil {
		return
	}
	skPrf, err = hash.Sum(f, tagByte(tagSeedPRF), seed)
	if err != nil {
		return
	}
	pubSeed, err = hash.Sum(f, tagByte(tagSeedPub), seed)
	return
}

// chainF is the WOTS+ chain step function: F_key(x) where key and the
// XOR mask are both derived from pubSeed via the ADRS, so that
// identically-valued chain inputs at different chain positions never
// collide (spec §4.1 step 2's "adverse-domain separation").
func chainF(f hash.Func, pubSeed []byte, a adrs, in [hash.Size]byte) ([hash.Size]byte, error) {
	a.setKeyAndMask(0)
	key, err := prf(f, pubSeed, a.bytes())
	if err != nil {
		return [hash.Size]byte{}, err
	}
	a.setKeyAndMask(1)
	mask, err := prf(f, pubSeed, a.bytes())
	if err != nil {
		return [hash.Size]byte{}, err
	}
	masked := xorBytes(in[:], mask[:])
	return hash.Sum(f, tagByte(tagChainF), key[:], masked)
}

// treeH is RAND_HASH: the node function combining a node's two children
// into its parent, again keyed and masked from pubSeed/ADRS.
func treeH(f hash.Func, pubSeed []byte, a adrs, left, right [hash.Size]byte) ([hash.Size]byte, error) {
	a.setKeyAndMask(0)
	key, err := prf(f, pubSeed, a.bytes())
	if err != nil {
		return [hash.Size]byte{}, err
	}
	a.setKeyAndMask(1)
	maskL, err := prf(f, pubSeed, a.bytes())
	if err != nil {
		return [hash.Size]byte{}, err
	}
	a.setKeyAndMask(2)
	maskR, err := prf(f, pubSeed, a.bytes())
	if err != nil {
		return [hash.Size]byte{}, err
	}
	l := xorBytes(left[:], maskL[:])
	r := xorBytes(right[:], maskR[:])
	return hash.Sum(f, tagByte(tagTreeH), key[:], l, r)
}

// messageDigest computes H(r || root || i || msg) per spec §4.1 step 3.
func messageDigest(f hash.Func, r, root [hash.Size]byte, index uint64, msg []byte) ([hash.Size]byte, error) {
	return hash.Sum(f, tagByte(tagMessage), r[:], root[:], encodeCounter(index), msg)
}

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}
