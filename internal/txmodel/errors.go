// Package txmodel implements the six QRL-style transaction variants of
// spec §4.4: their shared envelope, canonical field-ordered encoding,
// transaction-hash computation, and per-variant validation.
package txmodel

import "errors"

// Sentinel errors, named to match spec §4.4's "Failure modes per variant".
var (
	ErrEmptyDestinations  = errors.New("txmodel: destination list is empty")
	ErrLengthMismatch     = errors.New("txmodel: parallel lists have different lengths")
	ErrSymbolTooLong      = errors.New("txmodel: token symbol exceeds 10 bytes")
	ErrNameTooLong        = errors.New("txmodel: token name exceeds 30 bytes")
	ErrMessageOutOfRange  = errors.New("txmodel: message length outside [1, 80] bytes")
	ErrTooManySlaves      = errors.New("txmodel: slave list exceeds 100 entries")
	ErrNegativeOrZeroAmount = errors.New("txmodel: amount must be greater than zero")
	ErrDecimalsTooLarge   = errors.New("txmodel: token decimals exceeds 19")
	ErrInvalidAddress     = errors.New("txmodel: address is not 39 bytes")
	ErrInvalidPublicKey   = errors.New("txmodel: public key is not 67 bytes")
	ErrInvalidTokenHash   = errors.New("txmodel: token hash is not 32 bytes")
	ErrUnsignedTransaction = errors.New("txmodel: transaction has no signature")
)
