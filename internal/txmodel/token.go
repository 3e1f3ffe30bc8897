package txmodel

// TokenBody creates a new token (spec §4.4, "Token (create)").
type TokenBody struct {
	Symbol          []byte
	Name            []byte
	Owner           [addressSize]byte
	Decimals        uint8
	InitialBalances TransferBody
}

func (b *TokenBody) Kind() Kind { return KindToken }

func (b *TokenBody) validate() error {
	if len(b.Symbol) > maxSymbolLen {
		return ErrSymbolTooLong
	}
	if len(b.Name) > maxNameLen {
		return ErrNameTooLong
	}
	if b.Decimals > maxDecimals {
		return ErrDecimalsTooLarge
	}
	return validateAddressAmountLists(b.InitialBalances.AddressesTo, b.InitialBalances.Amounts)
}

func (b *TokenBody) encode(e *encoder) {
	e.writeVarBytes(b.Symbol)
	e.writeVarBytes(b.Name)
	e.writeFixed(b.Owner[:])
	e.writeUint8(b.Decimals)
	encodeAddressAmountLists(e, b.InitialBalances.AddressesTo, b.InitialBalances.Amounts)
}
