package txmodel

// MessageBody carries opaque application data on-chain (spec §4.4,
// "Message").
type MessageBody struct {
	Data []byte
}

func (b *MessageBody) Kind() Kind { return KindMessage }

func (b *MessageBody) validate() error {
	if len(b.Data) < minMessageLen || len(b.Data) > maxMessageLen {
		return ErrMessageOutOfRange
	}
	return nil
}

func (b *MessageBody) encode(e *encoder) {
	e.writeVarBytes(b.Data)
}
