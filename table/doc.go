// Package table reads and writes the binary code-table file.
//
// # Layout
//
// A table file is a fixed 32-byte header followed by one payload:
//
//	offset  size  field
//	0       2     magic 0x5A51 (always little-endian)
//	2       1     version
//	3       1     flags (bit 0: big-endian, bit 1: exclusion set present)
//	4       1     compression (format.CompressionType)
//	5       3     reserved, zero
//	8       4     entry count
//	12      4     tier-1 count
//	16      4     tier-2 count
//	20      4     tier-3 count
//	24      4     payload size in bytes, as stored
//	28      4     checksum: low 32 bits of xxHash64 of the uncompressed payload
//
// When flag bit 1 is set the uncompressed payload starts with the tier-2
// exclusion set the table was generated with: a uint16 count, then each code
// as a uint16 length and its bytes, in the header byte order. It is followed
// by one entry per record in assignment order: the word, the code, one tier
// byte, and the category. Record strings use the uint8 length prefix of the
// encoding package.
//
// # Usage
//
//	data, err := table.Encode(result, table.WithCompression(format.CompressionZstd))
//	...
//	t, err := table.Decode(data)
//	rec, ok := t.Assignment().Lookup("zebra")
package table
