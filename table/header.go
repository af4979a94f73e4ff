package table

import (
	"fmt"

	"github.com/arloliu/zqx/endian"
	"github.com/arloliu/zqx/errs"
	"github.com/arloliu/zqx/format"
)

const (
	HeaderSize  = 32     // fixed header size in bytes
	MagicNumber = 0x5A51 // "QZ" read little-endian
	Version     = 1      // current format version

	FlagBigEndian    = 0x01 // header integers are big-endian
	FlagExclusionSet = 0x02 // payload starts with the tier-2 exclusion set
	flagReservedMask = 0xFC
)

// Header is the fixed-size table header.
type Header struct {
	Version     uint8
	Flags       uint8
	Compression format.CompressionType
	Reserved    [3]byte

	EntryCount  uint32
	Tier1       uint32
	Tier2       uint32
	Tier3       uint32
	PayloadSize uint32
	Checksum    uint32
}

// NewHeader creates a version-1 header for the given byte order and codec.
func NewHeader(order format.ByteOrder, compression format.CompressionType) *Header {
	h := &Header{
		Version:     Version,
		Compression: compression,
	}
	if order == format.BigEndian {
		h.Flags |= FlagBigEndian
	}

	return h
}

// IsBigEndian reports whether the header integers are big-endian.
func (h *Header) IsBigEndian() bool {
	return h.Flags&FlagBigEndian != 0
}

// HasExclusionSet reports whether the payload carries the exclusion set.
func (h *Header) HasExclusionSet() bool {
	return h.Flags&FlagExclusionSet != 0
}

// ByteOrder returns the byte order named by the flags.
func (h *Header) ByteOrder() format.ByteOrder {
	if h.IsBigEndian() {
		return format.BigEndian
	}

	return format.LittleEndian
}

// GetEndianEngine returns the engine for the header integers.
func (h *Header) GetEndianEngine() endian.EndianEngine {
	return endian.ForByteOrder(h.ByteOrder())
}

// Validate checks the fields that do not depend on the payload.
func (h *Header) Validate() error {
	if h.Version != Version {
		return fmt.Errorf("%w: %d", errs.ErrInvalidVersion, h.Version)
	}
	if h.Flags&flagReservedMask != 0 {
		return fmt.Errorf("%w: 0x%02x", errs.ErrInvalidHeaderFlags, h.Flags)
	}
	if h.Reserved != [3]byte{} {
		return fmt.Errorf("%w: reserved bytes must be zero", errs.ErrInvalidHeaderFlags)
	}
	switch h.Compression {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4, format.CompressionXZ:
	default:
		return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, uint8(h.Compression))
	}
	if uint64(h.Tier1)+uint64(h.Tier2)+uint64(h.Tier3) != uint64(h.EntryCount) {
		return fmt.Errorf("%w: tier counts %d+%d+%d do not sum to %d entries",
			errs.ErrInvalidHeaderFlags, h.Tier1, h.Tier2, h.Tier3, h.EntryCount)
	}

	return nil
}

// Parse reads a header from exactly HeaderSize bytes and validates it.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: got %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	if magic := endian.GetLittleEndianEngine().Uint16(data[0:2]); magic != MagicNumber {
		return fmt.Errorf("%w: 0x%04x", errs.ErrInvalidMagicNumber, magic)
	}

	h.Version = data[2]
	h.Flags = data[3]
	h.Compression = format.CompressionType(data[4])
	copy(h.Reserved[:], data[5:8])

	engine := h.GetEndianEngine()
	h.EntryCount = engine.Uint32(data[8:12])
	h.Tier1 = engine.Uint32(data[12:16])
	h.Tier2 = engine.Uint32(data[16:20])
	h.Tier3 = engine.Uint32(data[20:24])
	h.PayloadSize = engine.Uint32(data[24:28])
	h.Checksum = engine.Uint32(data[28:32])

	return h.Validate()
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	endian.GetLittleEndianEngine().PutUint16(b[0:2], MagicNumber)
	b[2] = h.Version
	b[3] = h.Flags
	b[4] = uint8(h.Compression)
	copy(b[5:8], h.Reserved[:])

	engine := h.GetEndianEngine()
	engine.PutUint32(b[8:12], h.EntryCount)
	engine.PutUint32(b[12:16], h.Tier1)
	engine.PutUint32(b[16:20], h.Tier2)
	engine.PutUint32(b[20:24], h.Tier3)
	engine.PutUint32(b[24:28], h.PayloadSize)
	engine.PutUint32(b[28:32], h.Checksum)

	return b
}
