package table

import (
	"testing"

	"github.com/arloliu/zqx/assign"
	"github.com/arloliu/zqx/codespace"
	"github.com/arloliu/zqx/errs"
	"github.com/arloliu/zqx/format"
	"github.com/arloliu/zqx/vocab"
	"github.com/stretchr/testify/require"
)

var compressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
	format.CompressionXZ,
}

func defaultAssignment(t testing.TB) *assign.Assignment {
	t.Helper()

	lex := vocab.Default()
	a, err := assign.New(assign.WithPriority(lex.Priority))
	require.NoError(t, err)

	result, err := a.Assign(lex.Vocabulary)
	require.NoError(t, err)

	return result
}

func smallAssignment(t testing.TB) *assign.Assignment {
	t.Helper()

	a, err := assign.FromRecords([]assign.Record{
		{Word: "do", Code: "a", Tier: format.Tier1, Category: "verb"},
		{Word: "zebra", Code: "aa", Tier: format.Tier2, Category: "noun"},
		{Word: "yak", Code: "ab", Tier: format.Tier2},
		{Word: "wolf", Code: "bbb", Tier: format.Tier3, Category: "noun"},
	})
	require.NoError(t, err)

	return a
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	source := defaultAssignment(t)

	for _, c := range compressions {
		for _, order := range []format.ByteOrder{format.LittleEndian, format.BigEndian} {
			t.Run(c.String()+"/"+order.String(), func(t *testing.T) {
				data, err := Encode(source, WithCompression(c), WithByteOrder(order))
				require.NoError(t, err)

				decoded, err := Decode(data)
				require.NoError(t, err)

				h := decoded.Header()
				require.Equal(t, c, h.Compression)
				require.Equal(t, order, h.ByteOrder())
				require.Equal(t, uint32(source.Len()), h.EntryCount)

				got := decoded.Assignment()
				require.Equal(t, source.Records(), got.Records())
				require.Equal(t, source.Counts(), got.Counts())
				require.Equal(t, source.Fingerprint(), got.Fingerprint())
			})
		}
	}
}

func TestEncode_Defaults(t *testing.T) {
	data, err := Encode(smallAssignment(t))
	require.NoError(t, err)

	var h Header
	require.NoError(t, h.Parse(data[:HeaderSize]))
	require.Equal(t, format.CompressionZstd, h.Compression)
	require.False(t, h.IsBigEndian())
	require.Equal(t, uint32(4), h.EntryCount)
	require.Equal(t, uint32(1), h.Tier1)
	require.Equal(t, uint32(2), h.Tier2)
	require.Equal(t, uint32(1), h.Tier3)
	require.Equal(t, uint32(len(data)-HeaderSize), h.PayloadSize)
}

func TestEncode_PayloadLayout(t *testing.T) {
	a, err := assign.FromRecords([]assign.Record{{Word: "do", Code: "a", Tier: format.Tier1, Category: "verb"}})
	require.NoError(t, err)

	data, err := Encode(a, WithCompression(format.CompressionNone))
	require.NoError(t, err)

	require.Equal(t, []byte{2, 'd', 'o', 1, 'a', 1, 4, 'v', 'e', 'r', 'b'}, data[HeaderSize:])
}

func TestEncode_Empty(t *testing.T) {
	empty, err := assign.FromRecords(nil)
	require.NoError(t, err)

	for _, c := range compressions {
		data, err := Encode(empty, WithCompression(c))
		require.NoError(t, err, c.String())

		decoded, err := Decode(data)
		require.NoError(t, err, c.String())
		require.Equal(t, 0, decoded.Assignment().Len())
	}
}

func TestEncode_InvalidOptions(t *testing.T) {
	_, err := Encode(smallAssignment(t), WithCompression(format.CompressionType(42)))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestEncode_TextTooLong(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	a, err := assign.FromRecords([]assign.Record{{Word: string(long), Code: "aa", Tier: format.Tier2}})
	require.NoError(t, err)

	_, err = Encode(a)
	require.ErrorIs(t, err, errs.ErrTextTooLong)
}

func TestEncode_Deterministic(t *testing.T) {
	a := defaultAssignment(t)

	first, err := Encode(a)
	require.NoError(t, err)
	second, err := Encode(a)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, Digest(first), Digest(second))
}

func TestEncode_BigEndianHeader(t *testing.T) {
	data, err := Encode(smallAssignment(t), WithBigEndian(), WithCompression(format.CompressionNone))
	require.NoError(t, err)

	require.Equal(t, []byte{0x51, 0x5A}, data[0:2], "magic is always little-endian")
	require.Equal(t, byte(FlagBigEndian), data[3])
	require.Equal(t, []byte{0, 0, 0, 4}, data[8:12])

	data, err = Encode(smallAssignment(t), WithBigEndian(), WithLittleEndian(), WithCompression(format.CompressionNone))
	require.NoError(t, err)
	require.Equal(t, []byte{4, 0, 0, 0}, data[8:12], "last option wins")
}

func TestDecode_Errors(t *testing.T) {
	valid, err := Encode(smallAssignment(t), WithCompression(format.CompressionNone))
	require.NoError(t, err)

	mutate := func(fn func(b []byte) []byte) []byte {
		b := append([]byte(nil), valid...)
		return fn(b)
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short", valid[:HeaderSize-1], errs.ErrInvalidHeaderSize},
		{"bad magic", mutate(func(b []byte) []byte { b[0] = 0; return b }), errs.ErrInvalidMagicNumber},
		{"bad version", mutate(func(b []byte) []byte { b[2] = 9; return b }), errs.ErrInvalidVersion},
		{"reserved flag", mutate(func(b []byte) []byte { b[3] = 0x80; return b }), errs.ErrInvalidHeaderFlags},
		{"reserved bytes", mutate(func(b []byte) []byte { b[6] = 1; return b }), errs.ErrInvalidHeaderFlags},
		{"bad compression", mutate(func(b []byte) []byte { b[4] = 0; return b }), errs.ErrInvalidCompression},
		{"truncated payload", valid[:len(valid)-1], errs.ErrInvalidPayload},
		{"trailing bytes", append(append([]byte(nil), valid...), 0), errs.ErrInvalidPayload},
		{"checksum", mutate(func(b []byte) []byte { b[HeaderSize+1] ^= 0xFF; return b }), errs.ErrChecksumMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

// reencode writes a header with new counts over an unchanged payload.
func reencode(t *testing.T, data []byte, fn func(h *Header)) []byte {
	t.Helper()

	var h Header
	require.NoError(t, h.Parse(data[:HeaderSize]))
	fn(&h)

	return append(h.Bytes(), data[HeaderSize:]...)
}

func TestDecode_CountMismatch(t *testing.T) {
	valid, err := Encode(smallAssignment(t), WithCompression(format.CompressionS2))
	require.NoError(t, err)

	more := reencode(t, valid, func(h *Header) { h.EntryCount++; h.Tier3++ })
	_, err = Decode(more)
	require.ErrorIs(t, err, errs.ErrInvalidPayload)

	fewer := reencode(t, valid, func(h *Header) { h.EntryCount--; h.Tier3-- })
	_, err = Decode(fewer)
	require.ErrorIs(t, err, errs.ErrInvalidPayload)

	shifted := reencode(t, valid, func(h *Header) { h.Tier2--; h.Tier3++ })
	_, err = Decode(shifted)
	require.ErrorIs(t, err, errs.ErrInvalidPayload)

	unbalanced := reencode(t, valid, func(h *Header) { h.Tier1++ })
	_, err = Decode(unbalanced)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
}

func TestDecode_CorruptCompressedPayload(t *testing.T) {
	valid, err := Encode(defaultAssignment(t), WithCompression(format.CompressionZstd))
	require.NoError(t, err)

	corrupt := append([]byte(nil), valid...)
	for i := HeaderSize; i < HeaderSize+8; i++ {
		corrupt[i] ^= 0xFF
	}

	_, err = Decode(corrupt)
	require.ErrorIs(t, err, errs.ErrInvalidPayload)
}

func TestDecode_InvalidTier(t *testing.T) {
	a, err := assign.FromRecords([]assign.Record{{Word: "zebra", Code: "aa", Tier: format.Tier2}})
	require.NoError(t, err)

	data, err := Encode(a, WithCompression(format.CompressionNone))
	require.NoError(t, err)

	// word(6) + code(3) puts the tier byte at payload offset 9.
	payload := append([]byte(nil), data[HeaderSize:]...)
	payload[9] = 7
	bad := reencode(t, data, func(h *Header) {})
	copy(bad[HeaderSize:], payload)
	bad = reencode(t, bad, func(h *Header) { h.Checksum = checksumOf(payload) })

	_, err = Decode(bad)
	require.ErrorIs(t, err, errs.ErrInvalidPayload)
	require.ErrorIs(t, err, errs.ErrInvalidTier)
}

func TestDigest(t *testing.T) {
	require.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", Digest(nil))

	data, err := Encode(smallAssignment(t))
	require.NoError(t, err)

	d := Digest(data)
	require.Len(t, d, 64)
	require.NotEqual(t, d, Digest(data[:len(data)-1]))
}

func TestEncode_ExclusionSet(t *testing.T) {
	excl, err := codespace.NewExclusionSet("ox", "ad")
	require.NoError(t, err)

	for _, order := range []format.ByteOrder{format.LittleEndian, format.BigEndian} {
		data, err := Encode(smallAssignment(t), WithExclusionSet(excl), WithByteOrder(order), WithCompression(format.CompressionLZ4))
		require.NoError(t, err)

		decoded, err := Decode(data)
		require.NoError(t, err)
		h := decoded.Header()
		require.True(t, h.HasExclusionSet())

		got, ok := decoded.ExclusionSet()
		require.True(t, ok)
		require.Equal(t, excl.Words(), got.Words())
		require.Equal(t, smallAssignment(t).Records(), decoded.Assignment().Records())
	}
}

func TestEncode_ExclusionSetLayout(t *testing.T) {
	a, err := assign.FromRecords([]assign.Record{{Word: "do", Code: "a", Tier: format.Tier1}})
	require.NoError(t, err)
	excl, err := codespace.NewExclusionSet("ox")
	require.NoError(t, err)

	data, err := Encode(a, WithExclusionSet(excl), WithCompression(format.CompressionNone))
	require.NoError(t, err)

	require.Equal(t, byte(FlagExclusionSet), data[3])
	require.Equal(t, []byte{1, 0, 2, 0, 'o', 'x', 2, 'd', 'o', 1, 'a', 1, 0}, data[HeaderSize:])
}

func TestDecode_NoExclusionSet(t *testing.T) {
	data, err := Encode(smallAssignment(t))
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	_, ok := decoded.ExclusionSet()
	require.False(t, ok)
}

func TestDecode_InvalidExclusionSet(t *testing.T) {
	a, err := assign.FromRecords([]assign.Record{{Word: "do", Code: "a", Tier: format.Tier1}})
	require.NoError(t, err)
	excl, err := codespace.NewExclusionSet("ox")
	require.NoError(t, err)

	data, err := Encode(a, WithExclusionSet(excl), WithCompression(format.CompressionNone))
	require.NoError(t, err)

	payload := append([]byte(nil), data[HeaderSize:]...)
	payload[4] = 'O'
	bad := append(append([]byte(nil), data[:HeaderSize]...), payload...)
	bad = reencode(t, bad, func(h *Header) { h.Checksum = checksumOf(payload) })

	_, err = Decode(bad)
	require.ErrorIs(t, err, errs.ErrInvalidPayload)
	require.ErrorIs(t, err, errs.ErrInvalidExclusion)

	truncated := payload[:3]
	short := reencode(t, append(append([]byte(nil), data[:HeaderSize]...), truncated...), func(h *Header) {
		h.Checksum = checksumOf(truncated)
		h.PayloadSize = uint32(len(truncated))
	})
	_, err = Decode(short)
	require.ErrorIs(t, err, errs.ErrInvalidPayload)
}
