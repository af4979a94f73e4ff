package compress

// ZstdCompressor compresses with Zstandard.
//
// The default build uses the pure-Go klauspost/compress encoder. Building with
// cgo and -tags gozstd switches to the libzstd binding; both produce standard
// zstd frames, so tables stay readable across builds.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
