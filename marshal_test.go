// SPDX-License-Identifier: GPL-3.0-or-later

package bytestring

import (
	"testing"

	"github.com/bassosimone/runtimex"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
)

func TestMarshalCBOR(t *testing.T) {
	tests := []struct {
		name     string
		s        *ByteString
		expected []byte
	}{
		{"Empty", Empty, []byte{0x40}},
		{"Whole", From(1, 2, 3), []byte{0x43, 1, 2, 3}},
		{"Window", runtimex.PanicOnError1(From(1, 2, 3, 4, 5, 6, 7, 8, 9).Substring(3, 6)), []byte{0x43, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.s.MarshalCBOR()
			require.NoError(t, err)
			require.Equal(t, tt.expected, data)

			decoded := &ByteString{}
			require.NoError(t, decoded.UnmarshalCBOR(data))
			require.True(t, tt.s.Equal(decoded))
			require.Equal(t, tt.s.HashCode(), decoded.HashCode())
			require.Equal(t, decoded.Len(), decoded.Footprint())
		})
	}
}

func TestCBORStructField(t *testing.T) {
	type record struct {
		Key   *ByteString `cbor:"key"`
		Value *ByteString `cbor:"value,omitempty"`
	}

	input := record{Key: From(0xde, 0xad, 0xbe, 0xef)}
	data := runtimex.PanicOnError1(cbor.Marshal(input))

	var output record
	require.NoError(t, cbor.Unmarshal(data, &output))
	require.True(t, input.Key.Equal(output.Key))
	require.Nil(t, output.Value)
}

func TestUnmarshalCBORErrors(t *testing.T) {
	data := runtimex.PanicOnError1(From(1, 2, 3).MarshalCBOR())

	t.Run("IntoEmpty", func(t *testing.T) {
		require.ErrorIs(t, Empty.UnmarshalCBOR(data), ErrInvalidArgument)
		require.Equal(t, 0, Empty.Len())
	})

	t.Run("IntoPopulated", func(t *testing.T) {
		s := From(9)
		require.ErrorIs(t, s.UnmarshalCBOR(data), ErrInvalidArgument)
		requireContent(t, []byte{9}, s)
	})

	t.Run("Truncated", func(t *testing.T) {
		s := &ByteString{}
		require.Error(t, s.UnmarshalCBOR([]byte{0x43, 0x01}))
		require.Equal(t, 0, s.Len())
	})
}

func TestMarshalBinary(t *testing.T) {
	s := runtimex.PanicOnError1(From(1, 2, 3, 4, 5).Substring(1, 4))
	data := runtimex.PanicOnError1(s.MarshalBinary())
	require.Equal(t, []byte{2, 3, 4}, data)

	data[0] = 42
	requireContent(t, []byte{2, 3, 4}, s)

	decoded := &ByteString{}
	require.NoError(t, decoded.UnmarshalBinary([]byte{2, 3, 4}))
	require.True(t, s.Equal(decoded))

	decoded = &ByteString{}
	require.NoError(t, decoded.UnmarshalBinary(nil))
	require.True(t, Empty.Equal(decoded))

	require.ErrorIs(t, From(1).UnmarshalBinary([]byte{2}), ErrInvalidArgument)
}

func TestUnmarshalAfterHashCode(t *testing.T) {
	expected := From(1, 2, 3)

	tests := []struct {
		name      string
		unmarshal func(s *ByteString) error
	}{
		{"Binary", func(s *ByteString) error { return s.UnmarshalBinary([]byte{1, 2, 3}) }},
		{"CBOR", func(s *ByteString) error { return s.UnmarshalCBOR([]byte{0x43, 1, 2, 3}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s ByteString
			require.Equal(t, "[len=0, hashCode=0]", s.String())
			require.NoError(t, tt.unmarshal(&s))
			require.True(t, expected.Equal(&s))
			require.Equal(t, expected.HashCode(), s.HashCode())
			require.Equal(t, int32(1446), s.HashCode())
		})
	}
}
