package endian

import (
	"encoding/binary"
	"testing"

	"github.com/arloliu/zqx/format"
	"github.com/stretchr/testify/require"
)

func TestEngines(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())
}

func TestForByteOrder(t *testing.T) {
	tests := []struct {
		order format.ByteOrder
		want  []byte
	}{
		{format.LittleEndian, []byte{0x51, 0x5A}},
		{format.BigEndian, []byte{0x5A, 0x51}},
		{format.ByteOrder(7), []byte{0x51, 0x5A}},
	}

	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			engine := ForByteOrder(tt.order)

			buf := engine.AppendUint16(nil, 0x5A51)
			require.Equal(t, tt.want, buf)
			require.Equal(t, uint16(0x5A51), engine.Uint16(buf))
		})
	}
}

func TestByteOrderOf(t *testing.T) {
	require.Equal(t, format.LittleEndian, ByteOrderOf(GetLittleEndianEngine()))
	require.Equal(t, format.BigEndian, ByteOrderOf(GetBigEndianEngine()))

	for _, order := range []format.ByteOrder{format.LittleEndian, format.BigEndian} {
		require.Equal(t, order, ByteOrderOf(ForByteOrder(order)))
	}
}

func TestEngine_Uint32(t *testing.T) {
	le := GetLittleEndianEngine().AppendUint32(nil, 2247)
	be := GetBigEndianEngine().AppendUint32(nil, 2247)

	require.Equal(t, []byte{0xC7, 0x08, 0x00, 0x00}, le)
	require.Equal(t, []byte{0x00, 0x00, 0x08, 0xC7}, be)
}
