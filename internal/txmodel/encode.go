package txmodel

import (
	"bytes"
	"encoding/binary"
)

// encoder accumulates a canonical field-ordered, length-prefixed
// serialization. Every variable-length field is written as a 4-byte
// big-endian length followed by its bytes; every fixed-size integer is
// written as its natural big-endian width. This mirrors the explicit,
// element-by-element writes of the wire codecs in the rest of the pack
// (each field has one obvious way to serialize it) without pulling in a
// full network wire-protocol package for what is, here, purely a local
// hash-preimage builder.
type encoder struct {
	buf bytes.Buffer
}

func newEncoder() *encoder { return &encoder{} }

func (e *encoder) writeUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) writeUint8(v uint8) {
	e.buf.WriteByte(v)
}

func (e *encoder) writeFixed(b []byte) {
	e.buf.Write(b)
}

func (e *encoder) writeVarBytes(b []byte) {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(b)))
	e.buf.Write(length[:])
	e.buf.Write(b)
}

func (e *encoder) writeUint32Count(n int) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(n))
	e.buf.Write(b[:])
}

func (e *encoder) bytes() []byte { return e.buf.Bytes() }
