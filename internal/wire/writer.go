package wire

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
)

// Writer accumulates NRBF primitives and emits a single contiguous buffer
// on Bytes. It is purely positional, the structural inverse of Reader.
type Writer struct {
	buf []byte
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// U8 writes an unsigned byte.
func (w *Writer) U8(v uint8) { w.buf = append(w.buf, v) }

// I8 writes a signed byte.
func (w *Writer) I8(v int8) { w.U8(uint8(v)) }

// U16 writes a little-endian uint16.
func (w *Writer) U16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// I16 writes a little-endian int16.
func (w *Writer) I16(v int16) { w.U16(uint16(v)) }

// U32 writes a little-endian uint32.
func (w *Writer) U32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// I32 writes a little-endian int32.
func (w *Writer) I32(v int32) { w.U32(uint32(v)) }

// U64 writes a little-endian uint64.
func (w *Writer) U64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// I64 writes a little-endian int64.
func (w *Writer) I64(v int64) { w.U64(uint64(v)) }

// F32 writes a little-endian IEEE-754 float32.
func (w *Writer) F32(v float32) { w.U32(math.Float32bits(v)) }

// F64 writes a little-endian IEEE-754 float64.
func (w *Writer) F64(v float64) { w.U64(math.Float64bits(v)) }

// Bool writes a one-byte boolean.
func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
	} else {
		w.U8(0)
	}
}

// Char writes a one-byte char (ASCII subset; see record.PrimitiveChar).
func (w *Writer) Char(v byte) { w.U8(v) }

// RawBytes appends the bytes of b verbatim.
func (w *Writer) RawBytes(b []byte) { w.buf = append(w.buf, b...) }

// Varint writes n using the format's 7-bit continuation encoding.
func (w *Writer) Varint(n int32) error {
	if n < 0 {
		return fmt.Errorf("wire: cannot varint-encode negative value %d", n)
	}
	u := uint32(n)
	for {
		b := byte(u & 0x7f)
		u >>= 7
		if u != 0 {
			w.U8(b | 0x80)
		} else {
			w.U8(b)
			return nil
		}
	}
}

// String writes s as a varint-prefixed length followed by its UTF-8 bytes.
func (w *Writer) String(s string) error {
	if err := w.Varint(int32(len(s))); err != nil {
		return err
	}
	w.buf = append(w.buf, s...)
	return nil
}

// Decimal16 writes a 32-char hex string (as produced by Reader.Decimal16)
// back out as its original 16 raw bytes.
func (w *Writer) Decimal16(hexStr string) error {
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		return fmt.Errorf("wire: invalid decimal hex %q: %w", hexStr, err)
	}
	if len(b) != 16 {
		return fmt.Errorf("wire: decimal hex %q decodes to %d bytes, want 16", hexStr, len(b))
	}
	w.RawBytes(b)
	return nil
}
