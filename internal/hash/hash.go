// Package hash wraps the fixed-output hash primitives the XMSS engine is
// built on: SHAKE-128, SHAKE-256 and SHA2-256, all truncated/expanded to a
// constant 32-byte digest so every caller in internal/xmss can treat a
// "hash" as [32]byte regardless of which underlying function produced it.
//
// The three functions and their numeric ids mirror the descriptor encoding
// of spec §3; the XOF/hash split itself follows the construction used by
// github.com/bwesterb/go-xmssmt (hash.go), which keys SHA2 via
// crypto/sha256 and SHAKE via golang.org/x/crypto/sha3.
package hash

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Func identifies which hash function an extended seed's descriptor names.
type Func uint8

const (
	// SHAKE128 is SHAKE-128, truncated/squeezed to 32 bytes.
	SHAKE128 Func = iota
	// SHAKE256 is SHAKE-256, truncated/squeezed to 32 bytes.
	SHAKE256
	// SHA2_256 is SHA2-256, which is already exactly 32 bytes wide.
	SHA2_256
)

// Size is the fixed digest width used throughout the XMSS engine.
const Size = 32

// ErrUnsupportedDescriptor is returned when a descriptor byte names a hash
// function this package does not implement.
var ErrUnsupportedDescriptor = fmt.Errorf("hash: unsupported hash function descriptor")

// String renders the function's canonical name.
func (f Func) String() string {
	switch f {
	case SHAKE128:
		return "SHAKE-128"
	case SHAKE256:
		return "SHAKE-256"
	case SHA2_256:
		return "SHA2-256"
	default:
		return "unknown"
	}
}

// Parse validates a raw descriptor byte and returns the hash function it
// names.
func Parse(b byte) (Func, error) {
	switch Func(b) {
	case SHAKE128, SHAKE256, SHA2_256:
		return Func(b), nil
	default:
		return 0, ErrUnsupportedDescriptor
	}
}

// Sum hashes the concatenation of parts under the chosen function and
// returns a 32-byte digest. Every PRF and tree-node hash in internal/xmss
// goes through this single entry point so that a signer and a verifier
// using different descriptors fail loudly rather than silently disagreeing
// (spec §4.1, "Determinism & tie-breaks").
func Sum(f Func, parts ...[]byte) ([Size]byte, error) {
	var out [Size]byte
	switch f {
	case SHA2_256:
		h := sha256.New()
		for _, p := range parts {
			h.Write(p)
		}
		copy(out[:], h.Sum(nil))
	case SHAKE128:
		x := sha3.NewShake128()
		for _, p := range parts {
			x.Write(p)
		}
		if _, err := x.Read(out[:]); err != nil {
			return out, err
		}
	case SHAKE256:
		x := sha3.NewShake256()
		for _, p := range parts {
			x.Write(p)
		}
		if _, err := x.Read(out[:]); err != nil {
			return out, err
		}
	default:
		return out, ErrUnsupportedDescriptor
	}
	return out, nil
}

// MustSum is Sum without the error return, for call sites that have already
// validated f via Parse and cannot meaningfully recover from a XOF read
// failure (which only occurs on a broken io.Reader, never in practice for
// sha3's in-memory state).
func MustSum(f Func, parts ...[]byte) [Size]byte {
	out, err := Sum(f, parts...)
	if err != nil {
		panic(err)
	}
	return out
}
