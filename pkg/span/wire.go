package span

import (
	"encoding/binary"
	"errors"
	"unicode/utf8"
)

// ErrTruncated is returned when serialized data ends before a field does.
var ErrTruncated = errors.New("truncated span payload")

// ErrInvalidString is returned when a string field is not valid UTF-8.
var ErrInvalidString = errors.New("invalid utf-8 in span payload")

// MaxStringLen bounds string fields so corrupt lengths cannot force huge
// allocations.
const MaxStringLen = 1 << 20

// Encoder writes payload fields in order.
type Encoder struct {
	buf []byte
}

// WriteUvarint appends an unsigned varint.
func (e *Encoder) WriteUvarint(v uint64) {
	e.buf = binary.AppendUvarint(e.buf, v)
}

// WriteString appends a length-prefixed string.
func (e *Encoder) WriteString(s string) {
	e.WriteUvarint(uint64(len(s)))
	e.buf = append(e.buf, s...)
}

// WriteBool appends a boolean as a single byte.
func (e *Encoder) WriteBool(b bool) {
	if b {
		e.buf = append(e.buf, 1)
		return
	}
	e.buf = append(e.buf, 0)
}

// Bytes returns the encoded data.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Decoder reads payload fields written by an Encoder.
type Decoder struct {
	data []byte
	off  int
}

// NewDecoder creates a decoder over data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// ReadUvarint reads an unsigned varint.
func (d *Decoder) ReadUvarint() (uint64, error) {
	v, n := binary.Uvarint(d.data[d.off:])
	if n <= 0 {
		return 0, ErrTruncated
	}
	d.off += n
	return v, nil
}

// ReadString reads a length-prefixed string.
func (d *Decoder) ReadString() (string, error) {
	n, err := d.ReadUvarint()
	if err != nil {
		return "", err
	}
	if n > MaxStringLen || n > uint64(len(d.data)-d.off) {
		return "", ErrTruncated
	}
	s := string(d.data[d.off : d.off+int(n)])
	if !utf8.ValidString(s) {
		return "", ErrInvalidString
	}
	d.off += int(n)
	return s, nil
}

// ReadBool reads a single-byte boolean.
func (d *Decoder) ReadBool() (bool, error) {
	if d.off >= len(d.data) {
		return false, ErrTruncated
	}
	b := d.data[d.off] != 0
	d.off++
	return b, nil
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.data) - d.off
}
