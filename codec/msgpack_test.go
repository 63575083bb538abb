package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	Kind string `msgpack:"k"`
	N    int    `msgpack:"n"`
}

func TestMsgPackRoundTrip(t *testing.T) {
	ser := MsgPack[testEvent]()

	data, err := ser.ToBytes(testEvent{Kind: "click", N: 3})
	require.NoError(t, err)

	got, err := ser.FromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, testEvent{Kind: "click", N: 3}, got)
}

func TestMsgPackDecodeError(t *testing.T) {
	_, err := MsgPack[testEvent]().FromBytes([]byte{0xc1})
	assert.Error(t, err)
}

func TestMsgPackSortsMapKeys(t *testing.T) {
	ser := MsgPack[map[string]int]()

	want, err := ser.ToBytes(map[string]int{"a": 1, "b": 2, "c": 3})
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		got, err := ser.ToBytes(map[string]int{"c": 3, "b": 2, "a": 1})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
