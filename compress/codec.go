package compress

import (
	"fmt"

	"github.com/arloliu/zqx/errs"
	"github.com/arloliu/zqx/format"
)

// Compressor compresses a whole payload in one call.
//
// The returned slice is owned by the caller; the input is never modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm.
//
// Corrupted input or input produced by another algorithm returns an error.
// Implementations must be safe for concurrent use.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// Stats describes one compression, as reported by the CLI.
type Stats struct {
	Algorithm      format.CompressionType
	OriginalSize   int
	CompressedSize int
}

// Ratio returns compressed size / original size, or 0 for empty input.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space as a percentage.
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.Ratio()) * 100.0
}

// Measure compresses data with codec and reports sizes alongside the result.
func Measure(compressionType format.CompressionType, data []byte) ([]byte, Stats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, Stats{}, err
	}

	out, err := codec.Compress(data)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%s compression failed: %w", compressionType, err)
	}

	return out, Stats{Algorithm: compressionType, OriginalSize: len(data), CompressedSize: len(out)}, nil
}

// CreateCodec returns a new Codec for compressionType. target names the data
// being compressed and only appears in error messages.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionXZ:
		return NewXZCompressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s for %s", errs.ErrInvalidCompression, compressionType, target)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionXZ:   NewXZCompressor(),
}

// GetCodec returns the shared built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: unsupported %s", errs.ErrInvalidCompression, compressionType)
}
