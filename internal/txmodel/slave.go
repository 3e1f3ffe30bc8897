package txmodel

// AccessType controls what a delegated slave key may sign (spec §4.4,
// "Slave").
type AccessType uint8

const (
	// AccessAll lets the slave key sign any transaction on the
	// master's behalf.
	AccessAll AccessType = 0
	// AccessMiningOnly restricts the slave key to mining-related
	// transactions.
	AccessMiningOnly AccessType = 1
)

// SlaveBody delegates signing authority to one or more auxiliary public
// keys (spec §4.4, "Slave").
type SlaveBody struct {
	SlavePublicKeys [][]byte
	AccessTypes     []AccessType
}

func (b *SlaveBody) Kind() Kind { return KindSlave }

func (b *SlaveBody) validate() error {
	if len(b.SlavePublicKeys) != len(b.AccessTypes) {
		return ErrLengthMismatch
	}
	if len(b.SlavePublicKeys) > maxSlaves {
		return ErrTooManySlaves
	}
	return nil
}

func (b *SlaveBody) encode(e *encoder) {
	e.writeUint32Count(len(b.SlavePublicKeys))
	for i, pk := range b.SlavePublicKeys {
		e.writeVarBytes(pk)
		e.writeUint8(uint8(b.AccessTypes[i]))
	}
}
