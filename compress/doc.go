// Package compress provides the codecs that compress a code-table payload.
//
// A table file names its codec in the header (format.CompressionType), and
// the decoder picks the matching Codec through GetCodec. Supported codecs:
//   - None: payload stored as-is
//   - Zstd: best ratio for the text-heavy payload; pure Go by default, cgo
//     gozstd when built with -tags gozstd
//   - S2: fast, moderate ratio
//   - LZ4: fastest decompression
//   - XZ: LZMA2, smallest output, slowest
//
// Every codec is safe for concurrent use. Encoders and decoders that are
// costly to construct are pooled.
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "table payload")
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
package compress
