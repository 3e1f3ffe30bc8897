package txmodel

// Kind identifies which of the six transaction variants a Transaction
// carries.
type Kind uint8

const (
	KindTransfer Kind = iota
	KindToken
	KindTransferToken
	KindMessage
	KindSlave
	KindLatticePublicKey
)

func (k Kind) String() string {
	switch k {
	case KindTransfer:
		return "Transfer"
	case KindToken:
		return "Token"
	case KindTransferToken:
		return "TransferToken"
	case KindMessage:
		return "Message"
	case KindSlave:
		return "Slave"
	case KindLatticePublicKey:
		return "LatticePublicKey"
	default:
		return "Unknown"
	}
}

// Variant is one of the six transaction bodies of spec §4.4. validate
// checks the variant's own field-level invariants (list lengths, size
// caps); encode appends the variant's fields, in the fixed order spec
// §4.4 calls out, to e.
type Variant interface {
	Kind() Kind
	validate() error
	encode(e *encoder)
}

const (
	maxSymbolLen  = 10
	maxNameLen    = 30
	maxDecimals   = 19
	minMessageLen = 1
	maxMessageLen = 80
	maxSlaves     = 100
	addressSize   = 39
	tokenHashSize = 32
)
