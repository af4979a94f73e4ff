// Package endian selects the byte order of the fixed-width header fields in a
// code table file.
//
// Tables are little-endian unless the writer asks otherwise; the chosen order
// is recorded in the header flags so readers never guess.
//
//	engine := endian.ForByteOrder(format.BigEndian)
//	buf = engine.AppendUint32(buf, entryCount)
package endian

import (
	"encoding/binary"

	"github.com/arloliu/zqx/format"
)

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder, both of
// which binary.LittleEndian and binary.BigEndian implement.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// ForByteOrder maps a header byte order to its engine. Unknown values fall
// back to little-endian.
func ForByteOrder(order format.ByteOrder) EndianEngine {
	if order == format.BigEndian {
		return GetBigEndianEngine()
	}

	return GetLittleEndianEngine()
}

// ByteOrderOf is the inverse of ForByteOrder.
func ByteOrderOf(engine EndianEngine) format.ByteOrder {
	if engine == GetBigEndianEngine() {
		return format.BigEndian
	}

	return format.LittleEndian
}
