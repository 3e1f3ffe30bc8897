package rpcapi

import (
	"encoding/hex"
	"fmt"
)

func hexString(b []byte) string {
	return hex.EncodeToString(b)
}

func decodeHash32(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("rpcapi: invalid hash hex: %w", err)
	}
	if len(b) != 32 {
		return out, fmt.Errorf("rpcapi: hash must be 32 bytes, got %d", len(b))
	}
	copy(out[:], b)
	return out, nil
}
