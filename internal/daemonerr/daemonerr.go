// Package daemonerr gives every failure mode named in spec §7 a stable,
// tagged identifier so the RPC layer can map internal errors onto the
// grpc-like status/error_message envelope without string matching.
package daemonerr

import "errors"

// Kind is a stable, numeric identifier for one of §7's error kinds. Its
// values never change meaning once assigned — the RPC wire format
// carries the integer, not the Go identifier.
type Kind int

const (
	KindUnknown Kind = iota
	KindWalletLocked
	KindWalletDecryption
	KindUnknownSigner
	KindOtsIndexConflict
	KindOtsExhausted
	KindInvalidSeed
	KindMalformedAddress
	KindNodeUnavailable
	KindNodeRejected
	KindValidation
	KindCorruptWallet
)

func (k Kind) String() string {
	switch k {
	case KindWalletLocked:
		return "WalletLocked"
	case KindWalletDecryption:
		return "WalletDecryption"
	case KindUnknownSigner:
		return "UnknownSigner"
	case KindOtsIndexConflict:
		return "OtsIndexConflict"
	case KindOtsExhausted:
		return "OtsExhausted"
	case KindInvalidSeed:
		return "InvalidSeed"
	case KindMalformedAddress:
		return "MalformedAddress"
	case KindNodeUnavailable:
		return "NodeUnavailable"
	case KindNodeRejected:
		return "NodeRejected"
	case KindValidation:
		return "Validation"
	case KindCorruptWallet:
		return "CorruptWallet"
	default:
		return "Unknown"
	}
}

// Error wraps an underlying sentinel or wrapped error with its §7 kind,
// so callers can both errors.Is against the concrete cause and recover
// the stable Kind for the RPC envelope.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap tags err with kind. Wrap(kind, nil) returns nil, so call sites
// can wrap the result of a function regardless of whether it errored.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// KindOf recovers the §7 kind carried by err, or KindUnknown if err was
// never tagged with one.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
