package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// XZCompressor compresses with the xz container (LZMA2).
//
// It gives the smallest tables at the cost of speed, which suits a file
// written once per vocabulary release.
type XZCompressor struct{}

var _ Codec = (*XZCompressor)(nil)

func NewXZCompressor() XZCompressor {
	return XZCompressor{}
}

// Compress writes data as one xz stream.
func (c XZCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("xz compression failed: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("xz compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("xz compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress reads one xz stream.
func (c XZCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("xz decompression failed: %w", err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("xz decompression failed: %w", err)
	}

	return out, nil
}
