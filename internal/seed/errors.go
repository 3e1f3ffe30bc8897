// Package seed implements the bidirectional codecs between an extended
// seed's three on-the-wire representations: raw bytes, a 102-character
// hex string, and a 34-word mnemonic phrase (spec §3, §4.2).
//
// Neither direction ever interprets the seed's descriptor or key material
// — that's internal/xmss's job. This package only moves bits between
// formats, matching the teacher's style of keeping codec concerns
// (hdwallet.go's NewSeedFromMnemonic/NewMnemonic) separate from the
// wallet's key-management concerns.
package seed

import "errors"

var (
	// ErrWrongHexLength is returned when a hex seed string isn't exactly
	// 102 characters.
	ErrWrongHexLength = errors.New("seed: hex seed must be 102 characters")
	// ErrInvalidHexChars is returned when a hex seed string contains a
	// non-hex-digit character after case normalization.
	ErrInvalidHexChars = errors.New("seed: hex seed contains non-hex characters")
	// ErrWrongWordCount is returned when a mnemonic does not have exactly
	// 34 words.
	ErrWrongWordCount = errors.New("seed: mnemonic must have exactly 34 words")
	// ErrUnknownWord is returned when a mnemonic word is not in the
	// dictionary.
	ErrUnknownWord = errors.New("seed: mnemonic contains a word outside the dictionary")
	// ErrWrongByteLength is returned when bytes passed to ToHex/ToMnemonic
	// are not exactly xmss.ExtendedSeedSize long.
	ErrWrongByteLength = errors.New("seed: extended seed must be 51 bytes")
)
