// Package wire provides the little-endian binary primitives the NRBF codec
// is built on: a positional byte reader/writer, the format's 7-bit
// continuation varint, and its length-prefixed UTF-8 strings.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

// Errors returned by Reader.
var (
	ErrUnexpectedEOF    = errors.New("wire: unexpected end of stream")
	ErrMalformedVarint   = errors.New("wire: malformed varint")
	ErrNegativeLength    = errors.New("wire: negative string length")
	ErrInvalidUTF8       = errors.New("wire: invalid utf-8 string")
)

// maxVarintBytes bounds the 7-bit continuation encoding to 5 bytes, enough
// to cover the full int32 range (0..2^31-1) the format uses for lengths.
const maxVarintBytes = 5

// Reader reads NRBF primitives from a byte buffer. It is purely positional:
// it never seeks across record boundaries on its own.
type Reader struct {
	data   []byte
	offset int
}

// NewReader creates a Reader over data, starting at offset 0.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the current read position.
func (r *Reader) Offset() int { return r.offset }

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	if r.offset >= len(r.data) {
		return 0
	}
	return len(r.data) - r.offset
}

// Context returns up to n bytes of the buffer surrounding the current
// offset, for use in error messages (see record.BadRecordTag).
func (r *Reader) Context(n int) []byte {
	start := r.offset - n/2
	if start < 0 {
		start = 0
	}
	end := start + n
	if end > len(r.data) {
		end = len(r.data)
	}
	if start > end {
		start = end
	}
	return r.data[start:end]
}

func (r *Reader) need(n int) error {
	if r.offset+n > len(r.data) || n < 0 {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrUnexpectedEOF, n, r.offset, r.Len())
	}
	return nil
}

// U8 reads an unsigned byte.
func (r *Reader) U8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.data[r.offset]
	r.offset++
	return v, nil
}

// I8 reads a signed byte.
func (r *Reader) I8() (int8, error) {
	v, err := r.U8()
	return int8(v), err
}

// U16 reads a little-endian uint16.
func (r *Reader) U16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.data[r.offset:])
	r.offset += 2
	return v, nil
}

// I16 reads a little-endian int16.
func (r *Reader) I16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

// U32 reads a little-endian uint32.
func (r *Reader) U32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.data[r.offset:])
	r.offset += 4
	return v, nil
}

// I32 reads a little-endian int32.
func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

// U64 reads a little-endian uint64.
func (r *Reader) U64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.data[r.offset:])
	r.offset += 8
	return v, nil
}

// I64 reads a little-endian int64.
func (r *Reader) I64() (int64, error) {
	v, err := r.U64()
	return int64(v), err
}

// F32 reads a little-endian IEEE-754 float32.
func (r *Reader) F32() (float32, error) {
	v, err := r.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// F64 reads a little-endian IEEE-754 float64.
func (r *Reader) F64() (float64, error) {
	v, err := r.U64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// Bool reads a one-byte boolean (nonzero is true).
func (r *Reader) Bool() (bool, error) {
	v, err := r.U8()
	return v != 0, err
}

// Char reads a one-byte char (ASCII subset; see record.PrimitiveChar).
func (r *Reader) Char() (byte, error) {
	return r.U8()
}

// Bytes reads and copies n raw bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	v := make([]byte, n)
	copy(v, r.data[r.offset:r.offset+n])
	r.offset += n
	return v, nil
}

// Varint reads the format's 7-bit continuation, little-endian variable
// length integer: MSB set means another byte follows, up to 5 bytes
// covering 0..2^31-1.
func (r *Reader) Varint() (int32, error) {
	var result uint32
	for i := 0; i < maxVarintBytes; i++ {
		b, err := r.U8()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			return int32(result), nil
		}
	}
	return 0, ErrMalformedVarint
}

// String reads a varint-prefixed length followed by that many UTF-8 bytes.
// A length of 0 yields the empty string.
func (r *Reader) String() (string, error) {
	n, err := r.Varint()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", ErrNegativeLength
	}
	if n == 0 {
		return "", nil
	}
	b, err := r.Bytes(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

// Decimal16 reads the 16 raw bytes of a .NET Decimal and renders them as a
// 32-char lowercase hex string, preserving the bit pattern without
// interpreting it (spec.md §4.1, §9).
func (r *Reader) Decimal16() (string, error) {
	b, err := r.Bytes(16)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", b), nil
}
