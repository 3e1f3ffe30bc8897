package seed

import (
	"encoding/hex"
	"strings"

	"github.com/pqwallet/walletd/internal/xmss"
)

// HexLength is the number of characters in the hex representation of an
// extended seed (51 bytes * 2).
const HexLength = xmss.ExtendedSeedSize * 2

// ToHex renders an extended seed as a lowercase, 102-character hex
// string.
func ToHex(extendedSeed []byte) (string, error) {
	if len(extendedSeed) != xmss.ExtendedSeedSize {
		return "", ErrWrongByteLength
	}
	return hex.EncodeToString(extendedSeed), nil
}

// FromHex parses a hex seed string back into 51 bytes. Uppercase input is
// normalized to lowercase before validation, so "AB12..." decodes
// identically to "ab12..."; note that re-encoding the result with ToHex
// will therefore not reproduce the original uppercase string bit-for-bit
// — the round-trip law in spec §4.2/§8 only holds starting from bytes,
// not from an arbitrary-case hex string.
func FromHex(s string) ([]byte, error) {
	if len(s) != HexLength {
		return nil, ErrWrongHexLength
	}
	lower := strings.ToLower(s)
	b, err := hex.DecodeString(lower)
	if err != nil {
		return nil, ErrInvalidHexChars
	}
	return b, nil
}
