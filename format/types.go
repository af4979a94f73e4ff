package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/zqx/errs"
)

type (
	Tier            uint8
	CompressionType uint8
	ByteOrder       uint8
)

const (
	Tier1 Tier = 0x1 // Tier1 represents single-symbol codes from the fixed table.
	Tier2 Tier = 0x2 // Tier2 represents two-letter codes.
	Tier3 Tier = 0x3 // Tier3 represents three-consonant codes.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
	CompressionXZ   CompressionType = 0x5 // CompressionXZ represents XZ (LZMA2) compression.

	LittleEndian ByteOrder = 0x0
	BigEndian    ByteOrder = 0x1
)

// Tiers lists every tier in ascending code length.
var Tiers = [...]Tier{Tier1, Tier2, Tier3}

// Valid reports whether t is one of the three defined tiers.
func (t Tier) Valid() bool {
	return t >= Tier1 && t <= Tier3
}

// CodeLength returns the fixed code length of the tier, or 0 for an unknown tier.
func (t Tier) CodeLength() int {
	if !t.Valid() {
		return 0
	}

	return int(t)
}

func (t Tier) String() string {
	switch t {
	case Tier1:
		return "Tier1"
	case Tier2:
		return "Tier2"
	case Tier3:
		return "Tier3"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionXZ:
		return "XZ"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a case-insensitive name ("none", "zstd", "s2", "lz4", "xz")
// to its CompressionType.
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	case "xz":
		return CompressionXZ, nil
	default:
		return 0, fmt.Errorf("%w: unknown name %q", errs.ErrInvalidCompression, name)
	}
}

func (b ByteOrder) String() string {
	switch b {
	case LittleEndian:
		return "LittleEndian"
	case BigEndian:
		return "BigEndian"
	default:
		return "Unknown"
	}
}

// ParseByteOrder maps "little" or "big" (case-insensitive) to a ByteOrder.
func ParseByteOrder(name string) (ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "little", "le":
		return LittleEndian, nil
	case "big", "be":
		return BigEndian, nil
	default:
		return 0, fmt.Errorf("unknown byte order %q", name)
	}
}
