package txmodel

// TransferBody moves Quanta to one or more destination addresses. The
// destination addresses and amounts are two parallel lists so the same
// LengthMismatch check spec §4.4 applies to every multi-destination
// variant (spec §4.4, "Transfer").
type TransferBody struct {
	AddressesTo [][addressSize]byte
	Amounts     []uint64
}

func (b *TransferBody) Kind() Kind { return KindTransfer }

func (b *TransferBody) validate() error {
	return validateAddressAmountLists(b.AddressesTo, b.Amounts)
}

func (b *TransferBody) encode(e *encoder) {
	encodeAddressAmountLists(e, b.AddressesTo, b.Amounts)
}

func validateAddressAmountLists(addrs [][addressSize]byte, amounts []uint64) error {
	if len(addrs) == 0 {
		return ErrEmptyDestinations
	}
	if len(addrs) != len(amounts) {
		return ErrLengthMismatch
	}
	for _, a := range amounts {
		if a == 0 {
			return ErrNegativeOrZeroAmount
		}
	}
	return nil
}

func encodeAddressAmountLists(e *encoder, addrs [][addressSize]byte, amounts []uint64) {
	e.writeUint32Count(len(addrs))
	for i, addr := range addrs {
		e.writeFixed(addr[:])
		e.writeUint64(amounts[i])
	}
}
