package seed

import (
	"strings"

	"github.com/pqwallet/walletd/internal/xmss"
)

// WordCount is the fixed number of words in a mnemonic: 408 bits (51
// bytes * 8) packed 12 bits per word is exactly 34 words.
const WordCount = 34

const bitsPerWord = 12

// ToMnemonic packs an extended seed's 408 bits into 34 space-separated
// words, MSB-first (spec §3, §4.2).
func ToMnemonic(extendedSeed []byte) (string, error) {
	if len(extendedSeed) != xmss.ExtendedSeedSize {
		return "", ErrWrongByteLength
	}
	indices := bytesToWordIndices(extendedSeed)
	words := make([]string, len(indices))
	for i, idx := range indices {
		words[i] = WordList[idx]
	}
	return strings.Join(words, " "), nil
}

// FromMnemonic unpacks a 34-word mnemonic phrase back into 51 bytes.
func FromMnemonic(phrase string) ([]byte, error) {
	words := strings.Fields(phrase)
	if len(words) != WordCount {
		return nil, ErrWrongWordCount
	}
	indices := make([]int, WordCount)
	for i, w := range words {
		idx, ok := wordIndex[w]
		if !ok {
			return nil, ErrUnknownWord
		}
		indices[i] = idx
	}
	return wordIndicesToBytes(indices), nil
}

// bytesToWordIndices unpacks data's bits, bitsPerWord at a time, MSB
// first, into dictionary indices. Requires len(data)*8 to be an exact
// multiple of bitsPerWord, which holds for the 51-byte extended seed
// (408 / 12 = 34).
func bytesToWordIndices(data []byte) []int {
	n := len(data) * 8 / bitsPerWord
	out := make([]int, 0, n)

	bitBuf := 0
	bitCount := 0
	for _, b := range data {
		bitBuf = (bitBuf << 8) | int(b)
		bitCount += 8
		for bitCount >= bitsPerWord {
			bitCount -= bitsPerWord
			out = append(out, (bitBuf>>bitCount)&((1<<bitsPerWord)-1))
		}
	}
	return out
}

// wordIndicesToBytes is the inverse of bytesToWordIndices.
func wordIndicesToBytes(indices []int) []byte {
	nBits := len(indices) * bitsPerWord
	out := make([]byte, 0, nBits/8)

	bitBuf := 0
	bitCount := 0
	for _, idx := range indices {
		bitBuf = (bitBuf << bitsPerWord) | idx
		bitCount += bitsPerWord
		for bitCount >= 8 {
			bitCount -= 8
			out = append(out, byte((bitBuf>>bitCount)&0xFF))
		}
	}
	return out
}
