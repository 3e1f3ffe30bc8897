package txmodel

// TransferTokenBody transfers units of an existing token (spec §4.4,
// "TransferToken").
type TransferTokenBody struct {
	TokenHash   [tokenHashSize]byte
	AddressesTo [][addressSize]byte
	Amounts     []uint64
}

func (b *TransferTokenBody) Kind() Kind { return KindTransferToken }

func (b *TransferTokenBody) validate() error {
	return validateAddressAmountLists(b.AddressesTo, b.Amounts)
}

func (b *TransferTokenBody) encode(e *encoder) {
	e.writeFixed(b.TokenHash[:])
	encodeAddressAmountLists(e, b.AddressesTo, b.Amounts)
}
