package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor compresses with S2, the Snappy-compatible block format.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes data as one S2 block using the better-compression mode.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress decodes one S2 block.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
