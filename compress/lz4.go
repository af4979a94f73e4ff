package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// maxLZ4Output bounds the decompression buffer; a code table is far smaller.
const maxLZ4Output = 64 * 1024 * 1024

// LZ4Compressor compresses with raw LZ4 blocks.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress encodes data as one LZ4 block using a pooled compressor.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:n], nil
}

// Decompress decodes one LZ4 block.
//
// A raw block does not record its decoded size, so the buffer starts at four
// times the input and doubles on ErrInvalidSourceShortBuffer up to 64MB.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	for size := len(data) * 4; size <= maxLZ4Output; size *= 2 {
		buf := make([]byte, size)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
	}

	return nil, fmt.Errorf("lz4 decompression failed: %w", lz4.ErrInvalidSourceShortBuffer)
}
