package rlpx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethlc/verify/types"
)

func TestDecodeSingleByte(t *testing.T) {
	item, err := Decode([]byte{0x42})
	require.NoError(t, err)
	require.False(t, item.IsList())
	require.Equal(t, []byte{0x42}, item.Data)
}

func TestDecodeShortString(t *testing.T) {
	item, err := Decode(append([]byte{0x83}, []byte("dog")...))
	require.NoError(t, err)
	require.Equal(t, []byte("dog"), item.Data)
}

func TestDecodeRejectsNonCanonicalSingleByteString(t *testing.T) {
	_, err := Decode([]byte{0x81, 0x05})
	require.ErrorIs(t, err, types.ErrRlpInvalidPrefix)
}

func TestDecodeRejectsLeadingZeroLength(t *testing.T) {
	buf := append([]byte{0xb8, 0x00}, make([]byte, 56)...)
	_, err := Decode(buf)
	require.ErrorIs(t, err, types.ErrRlpLengthLeadingZero)
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	_, err := Decode([]byte{0x42, 0x43})
	require.ErrorIs(t, err, types.ErrRlpTrailingBytes)
}

func TestDecodeEmptyList(t *testing.T) {
	item, err := Decode([]byte{0xc0})
	require.NoError(t, err)
	require.True(t, item.IsList())
	require.Empty(t, item.List)
}

func TestDecodeTwoElementList(t *testing.T) {
	// ["cat", "dog"]
	buf := []byte{0xc8, 0x83, 'c', 'a', 't', 0x83, 'd', 'o', 'g'}
	item, err := Decode(buf)
	require.NoError(t, err)
	require.True(t, item.IsList())
	require.Len(t, item.List, 2)
	require.Equal(t, []byte("cat"), item.List[0].Data)
	require.Equal(t, []byte("dog"), item.List[1].Data)
}

func TestEncodeDecodeUintRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 1000, 1 << 32} {
		encoded := EncodeUint(v)
		item, err := Decode(encoded)
		require.NoErrorf(t, err, "decode(%d)", v)
		require.Falsef(t, item.IsList(), "decode(%d)", v)
	}
}
