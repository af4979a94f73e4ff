package pool

import (
	"io"
	"sync"
)

// A default code table payload is about 30KiB before compression.
const (
	TableBufferDefaultSize  = 1024 * 32   // 32KiB
	TableBufferMaxThreshold = 1024 * 1024 // 1MiB
)

// ByteBuffer is an append-only byte slice that can be recycled through a pool.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying slice without copying.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer and keeps its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// MustWriteString appends s without converting it to a byte slice first.
func (bb *ByteBuffer) MustWriteString(s string) {
	bb.B = append(bb.B, s...)
}

// WriteByte appends c. It never fails.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// Grow ensures room for requiredBytes more bytes.
//
// Small buffers grow by TableBufferDefaultSize; buffers larger than four
// times that grow by a quarter of their capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	if cap(bb.B)-len(bb.B) >= requiredBytes {
		return
	}

	growBy := TableBufferDefaultSize
	if cap(bb.B) > 4*TableBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	growBy = max(growBy, requiredBytes)

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write implements io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo implements io.WriterTo.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool recycles ByteBuffers. Buffers that grew beyond maxThreshold
// are dropped on Put instead of being retained.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool; maxThreshold <= 0 keeps every buffer.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get returns an empty buffer.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put resets bb and returns it to the pool. Nil is ignored.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var tableDefaultPool = NewByteBufferPool(TableBufferDefaultSize, TableBufferMaxThreshold)

// GetTableBuffer returns a buffer from the table payload pool.
func GetTableBuffer() *ByteBuffer {
	return tableDefaultPool.Get()
}

// PutTableBuffer returns a buffer to the table payload pool.
func PutTableBuffer(bb *ByteBuffer) {
	tableDefaultPool.Put(bb)
}
