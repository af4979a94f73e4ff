package encoding

import (
	"fmt"

	"github.com/arloliu/zqx/errs"
	"github.com/arloliu/zqx/internal/pool"
)

// MaxTextLength is the longest string a uint8 length prefix can describe.
const MaxTextLength = 255

// VarStringEncoder writes strings with a uint8 length prefix into a pooled
// buffer.
type VarStringEncoder struct {
	buf   *pool.ByteBuffer
	count int
}

// NewVarStringEncoder creates an encoder backed by the table buffer pool.
// Call Reset when done to return the buffer.
func NewVarStringEncoder() *VarStringEncoder {
	return &VarStringEncoder{buf: pool.GetTableBuffer()}
}

// Write appends text.
//
// Returns errs.ErrTextTooLong if text is longer than MaxTextLength bytes.
func (e *VarStringEncoder) Write(text string) error {
	if len(text) > MaxTextLength {
		return fmt.Errorf("%w: length %d exceeds maximum %d", errs.ErrTextTooLong, len(text), MaxTextLength)
	}

	e.buf.Grow(1 + len(text))
	_ = e.buf.WriteByte(uint8(len(text))) //nolint:gosec
	e.buf.MustWriteString(text)
	e.count++

	return nil
}

// WriteSlice appends every text, validating all of them before writing any.
func (e *VarStringEncoder) WriteSlice(texts []string) error {
	total := 0
	for _, text := range texts {
		if len(text) > MaxTextLength {
			return fmt.Errorf("%w: length %d exceeds maximum %d", errs.ErrTextTooLong, len(text), MaxTextLength)
		}
		total += 1 + len(text)
	}

	e.buf.Grow(total)
	for _, text := range texts {
		_ = e.buf.WriteByte(uint8(len(text))) //nolint:gosec
		e.buf.MustWriteString(text)
		e.count++
	}

	return nil
}

// WriteByte appends one raw byte. It does not count as a string.
func (e *VarStringEncoder) WriteByte(b byte) error {
	return e.buf.WriteByte(b)
}

// WriteRaw appends p unchanged. It does not count as a string.
func (e *VarStringEncoder) WriteRaw(p []byte) {
	e.buf.MustWrite(p)
}

// Bytes returns the encoded data. The slice is only valid until Reset.
func (e *VarStringEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of strings written.
func (e *VarStringEncoder) Len() int {
	return e.count
}

// Size returns the number of encoded bytes.
func (e *VarStringEncoder) Size() int {
	return e.buf.Len()
}

// Reset returns the buffer to the pool. The encoder must not be used after.
func (e *VarStringEncoder) Reset() {
	if e.buf != nil {
		pool.PutTableBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// VarStringDecoder reads what a VarStringEncoder wrote.
type VarStringDecoder struct {
	data   []byte
	offset int
}

// NewVarStringDecoder creates a decoder over data. data is not copied.
func NewVarStringDecoder(data []byte) *VarStringDecoder {
	return &VarStringDecoder{data: data}
}

// Next reads one string.
//
// Returns errs.ErrInvalidPayload when the data ends inside the string.
func (d *VarStringDecoder) Next() (string, error) {
	if d.offset >= len(d.data) {
		return "", fmt.Errorf("%w: missing string length at offset %d", errs.ErrInvalidPayload, d.offset)
	}

	n := int(d.data[d.offset])
	start := d.offset + 1
	if start+n > len(d.data) {
		return "", fmt.Errorf("%w: string of %d bytes at offset %d overruns payload of %d bytes",
			errs.ErrInvalidPayload, n, d.offset, len(d.data))
	}

	d.offset = start + n

	return string(d.data[start:d.offset]), nil
}

// ReadByte reads one raw byte.
func (d *VarStringDecoder) ReadByte() (byte, error) {
	if d.offset >= len(d.data) {
		return 0, fmt.Errorf("%w: unexpected end at offset %d", errs.ErrInvalidPayload, d.offset)
	}

	b := d.data[d.offset]
	d.offset++

	return b, nil
}

// Remaining returns the number of unread bytes.
func (d *VarStringDecoder) Remaining() int {
	return len(d.data) - d.offset
}
