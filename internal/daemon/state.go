package daemon

// LockState is the daemon's in-memory lock disposition for one running
// instance (spec §4.6, "Lifecycle & lock state"). It is never persisted
// — only the wallet file's own encrypted flag is.
type LockState int

const (
	// StateUnlocked: the wallet file itself is plaintext. Every
	// operation is allowed.
	StateUnlocked LockState = iota
	// StateLocked: the wallet file is encrypted and this daemon does
	// not currently hold the passphrase. Only read-only operations
	// that don't need seed material are allowed.
	StateLocked
	// StateUnlockedEncrypted: the wallet file is encrypted but this
	// daemon holds the passphrase in memory. Behaves like
	// StateUnlocked, except Save re-encrypts.
	StateUnlockedEncrypted
)

func (s LockState) String() string {
	switch s {
	case StateUnlocked:
		return "UNLOCKED"
	case StateLocked:
		return "LOCKED"
	case StateUnlockedEncrypted:
		return "UNLOCKED_ENCRYPTED"
	default:
		return "UNKNOWN"
	}
}
