package table

import (
	"encoding/hex"
	"fmt"
	"math"

	"github.com/zeebo/blake3"

	"github.com/arloliu/zqx/assign"
	"github.com/arloliu/zqx/codespace"
	"github.com/arloliu/zqx/compress"
	"github.com/arloliu/zqx/encoding"
	"github.com/arloliu/zqx/endian"
	"github.com/arloliu/zqx/format"
	"github.com/arloliu/zqx/internal/hash"
	"github.com/arloliu/zqx/internal/options"
	"github.com/arloliu/zqx/internal/wordlist"
)

type config struct {
	compression format.CompressionType
	order       format.ByteOrder
	exclusion   *codespace.ExclusionSet
}

// Option configures Encode.
type Option = options.Option[*config]

// WithCompression selects the payload codec. The default is Zstd.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *config) error {
		if _, err := compress.GetCodec(c); err != nil {
			return err
		}
		cfg.compression = c

		return nil
	})
}

// WithBigEndian writes header integers big-endian.
func WithBigEndian() Option {
	return options.NoError(func(cfg *config) {
		cfg.order = format.BigEndian
	})
}

// WithLittleEndian writes header integers little-endian (the default).
func WithLittleEndian() Option {
	return options.NoError(func(cfg *config) {
		cfg.order = format.LittleEndian
	})
}

// WithByteOrder is WithBigEndian or WithLittleEndian chosen at runtime.
func WithByteOrder(order format.ByteOrder) Option {
	return options.NoError(func(cfg *config) {
		cfg.order = order
	})
}

// WithExclusionSet embeds excl in the payload so readers can verify the table
// without knowing how it was generated.
func WithExclusionSet(excl codespace.ExclusionSet) Option {
	return options.NoError(func(cfg *config) {
		cfg.exclusion = &excl
	})
}

// Encode serializes a into a table file.
func Encode(a *assign.Assignment, opts ...Option) ([]byte, error) {
	cfg := &config{
		compression: format.CompressionZstd,
		order:       format.LittleEndian,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if uint64(a.Len()) > math.MaxUint32 {
		return nil, fmt.Errorf("table: %d records exceed the format limit", a.Len())
	}

	h := NewHeader(cfg.order, cfg.compression)

	enc := encoding.NewVarStringEncoder()
	defer enc.Reset()

	if cfg.exclusion != nil {
		section, err := wordlist.EncodeWordList(cfg.exclusion.Words(), endian.ForByteOrder(cfg.order))
		if err != nil {
			return nil, fmt.Errorf("exclusion set: %w", err)
		}
		enc.WriteRaw(section)
		h.Flags |= FlagExclusionSet
	}

	for r := range a.All() {
		if err := enc.Write(r.Word); err != nil {
			return nil, fmt.Errorf("word %q: %w", r.Word, err)
		}
		if err := enc.Write(r.Code); err != nil {
			return nil, fmt.Errorf("code of %q: %w", r.Word, err)
		}
		_ = enc.WriteByte(uint8(r.Tier))
		if err := enc.Write(r.Category); err != nil {
			return nil, fmt.Errorf("category of %q: %w", r.Word, err)
		}
	}

	payload := enc.Bytes()

	codec, err := compress.CreateCodec(cfg.compression, "table payload")
	if err != nil {
		return nil, err
	}
	packed, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("compress table payload: %w", err)
	}
	if uint64(len(packed)) > math.MaxUint32 {
		return nil, fmt.Errorf("table: payload of %d bytes exceeds the format limit", len(packed))
	}

	counts := a.Counts()
	h.EntryCount = uint32(a.Len())      //nolint:gosec
	h.Tier1 = uint32(counts.Tier1)      //nolint:gosec
	h.Tier2 = uint32(counts.Tier2)      //nolint:gosec
	h.Tier3 = uint32(counts.Tier3)      //nolint:gosec
	h.PayloadSize = uint32(len(packed)) //nolint:gosec
	h.Checksum = hash.Checksum32(payload)

	out := make([]byte, 0, HeaderSize+len(packed))
	out = append(out, h.Bytes()...)
	out = append(out, packed...)

	return out, nil
}

// Digest returns the hex BLAKE3-256 digest of an encoded table, used to pin
// a published table in release notes and in the store metadata.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
