// Package qaddress implements spec §4.3's address derivation: turning a
// signer's public-key seed and Merkle root into the 39-byte on-chain
// address and its "Qaddress" user-facing hex form.
//
// This package has no dependency on internal/xmss — it only needs the
// three raw byte slices (descriptor, public-key seed, root) any XMSS
// public key already carries, keeping the dependency graph a straight
// line (C1 hash -> C2 xmss -> C4 qaddress) rather than a cycle.
package qaddress

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/pqwallet/walletd/internal/hash"
)

// Size is the length in bytes of a raw address: descriptor(3) ||
// SHA2-256(descriptor||pks||root)(32) || checksum(4).
const Size = 39

const coreSize = 3 + hash.Size // descriptor + the address core hash

// QaddressLength is the length of the "Q"-prefixed hex string form.
const QaddressLength = 1 + Size*2

var (
	// ErrMalformedAddress is returned by Parse for any structurally
	// invalid qaddress: wrong prefix, wrong length, or bad checksum
	// (spec §4.3).
	ErrMalformedAddress = errors.New("qaddress: malformed address")
)

// Derive computes the 39-byte address for a public key's descriptor,
// public-key seed, and Merkle root (spec §4.3, steps 1-3). Address
// derivation always uses SHA2-256 regardless of the signing descriptor's
// chosen hash function — the descriptor bytes are only carried along so
// the derivation is bound to a specific (hash function, height) pair.
func Derive(descriptor [3]byte, pks, root [hash.Size]byte) ([Size]byte, error) {
	inner, err := hash.Sum(hash.SHA2_256, descriptor[:], pks[:], root[:])
	if err != nil {
		return [Size]byte{}, err
	}

	var core [coreSize]byte
	copy(core[:3], descriptor[:])
	copy(core[3:], inner[:])

	firstPass, err := hash.Sum(hash.SHA2_256, core[:])
	if err != nil {
		return [Size]byte{}, err
	}
	checksum, err := hash.Sum(hash.SHA2_256, firstPass[:])
	if err != nil {
		return [Size]byte{}, err
	}

	var addr [Size]byte
	copy(addr[:coreSize], core[:])
	copy(addr[coreSize:], checksum[:4])
	return addr, nil
}

// ToQaddress renders a 39-byte address as "Q" || lowercase hex.
func ToQaddress(addr [Size]byte) string {
	return "Q" + hex.EncodeToString(addr[:])
}

// Parse validates and decodes a qaddress string back into its 39 raw
// bytes, checking the "Q" prefix, hex length, and embedded checksum
// (spec §4.3, "Parsing a qaddress").
func Parse(qaddr string) ([Size]byte, error) {
	if len(qaddr) != QaddressLength || qaddr[0] != 'Q' {
		return [Size]byte{}, ErrMalformedAddress
	}
	raw, err := hex.DecodeString(strings.ToLower(qaddr[1:]))
	if err != nil {
		return [Size]byte{}, ErrMalformedAddress
	}

	var addr [Size]byte
	copy(addr[:], raw)

	firstPass, err := hash.Sum(hash.SHA2_256, addr[:coreSize])
	if err != nil {
		return [Size]byte{}, err
	}
	checksum, err := hash.Sum(hash.SHA2_256, firstPass[:])
	if err != nil {
		return [Size]byte{}, err
	}
	if string(checksum[:4]) != string(addr[coreSize:]) {
		return [Size]byte{}, ErrMalformedAddress
	}
	return addr, nil
}
