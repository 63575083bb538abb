package codec

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	b, err := Text.ToBytes("héllo")
	require.NoError(t, err)
	assert.Equal(t, []byte("héllo"), b)

	s, err := Text.FromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, "héllo", s)

	_, err = Text.FromBytes([]byte{0xff, 0xfe})
	assert.Error(t, err)
}

func TestBytes(t *testing.T) {
	in := []byte{0, 1, 2}
	b, err := Bytes.ToBytes(in)
	require.NoError(t, err)
	assert.Equal(t, in, b)

	out, err := Bytes.FromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestBool(t *testing.T) {
	b, err := Bool.ToBytes(true)
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, b)

	b, err = Bool.ToBytes(false)
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, b)

	v, err := Bool.FromBytes([]byte{1})
	require.NoError(t, err)
	assert.True(t, v)

	v, err = Bool.FromBytes([]byte{0})
	require.NoError(t, err)
	assert.False(t, v)
}

func TestInt32(t *testing.T) {
	b, err := Int32.ToBytes(-1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, b)

	b, err = Int32.ToBytes(0x01020304)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, b)

	v, err := Int32.FromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, int32(0x01020304), v)
}

func TestInt64(t *testing.T) {
	b, err := Int64.ToBytes(0x0102030405060708)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, b)

	v, err := Int64.FromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, int64(0x0102030405060708), v)

	b, err = Int64.ToBytes(-1)
	require.NoError(t, err)
	v, err = Int64.FromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), v)
}

func TestFloat64(t *testing.T) {
	b, err := Float64.ToBytes(1.5)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x3f, 0xf8, 0, 0, 0, 0, 0, 0}, b)

	v, err := Float64.FromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
}

func TestTime(t *testing.T) {
	in := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	b, err := Time.ToBytes(in)
	require.NoError(t, err)
	require.Len(t, b, 8)

	out, err := Time.FromBytes(b)
	require.NoError(t, err)
	assert.True(t, in.Equal(out), "got %v, wanted %v", out, in)

	// Sub-millisecond precision does not survive.
	in2 := in.Add(250 * time.Microsecond)
	b2, err := Time.ToBytes(in2)
	require.NoError(t, err)
	out2, err := Time.FromBytes(b2)
	require.NoError(t, err)
	assert.True(t, in.Equal(out2), "got %v, wanted %v", out2, in)
}

func TestUUID(t *testing.T) {
	in := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	b, err := UUID.ToBytes(in)
	require.NoError(t, err)
	assert.Equal(t, in[:], b)

	out, err := UUID.FromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFixedWidthLengthChecks(t *testing.T) {
	tests := []struct {
		name string
		dec  func([]byte) error
	}{
		{"bool", func(b []byte) error { _, err := Bool.FromBytes(b); return err }},
		{"int32", func(b []byte) error { _, err := Int32.FromBytes(b); return err }},
		{"int64", func(b []byte) error { _, err := Int64.FromBytes(b); return err }},
		{"float64", func(b []byte) error { _, err := Float64.FromBytes(b); return err }},
		{"time", func(b []byte) error { _, err := Time.FromBytes(b); return err }},
		{"uuid", func(b []byte) error { _, err := UUID.FromBytes(b); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.dec(nil))
			assert.Error(t, tt.dec([]byte{1, 2, 3}))
		})
	}
}

func TestFunc(t *testing.T) {
	ser := Func(
		func(v int) ([]byte, error) { return []byte{byte(v)}, nil },
		func(b []byte) (int, error) { return int(b[0]), nil },
	)

	b, err := ser.ToBytes(7)
	require.NoError(t, err)
	assert.Equal(t, []byte{7}, b)

	v, err := ser.FromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
