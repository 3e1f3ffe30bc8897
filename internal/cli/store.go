package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/pqwallet/walletd/internal/walletstore"
)

// openStore loads wallet.json if it exists, or creates a fresh in-memory
// store otherwise. Every mutating store call persists the file itself.
func openStore() (*walletstore.Store, error) {
	path, err := walletPath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		return walletstore.New(path), nil
	}
	store, err := walletstore.Load(path)
	if err != nil {
		return nil, fmt.Errorf("cli: load wallet: %w", err)
	}
	return store, nil
}
