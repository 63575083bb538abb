package codec

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Serializers for the standard scalar kinds.
//
// Integers and floats use fixed-width big-endian encodings, so encoded
// values compare the same way the store's comparators do. Time is encoded
// as milliseconds since the Unix epoch in 8 bytes. UUIDs are the raw 16
// bytes.
var (
	Text    Serializer[string]    = textSerializer{}
	Bytes   Serializer[[]byte]    = bytesSerializer{}
	Bool    Serializer[bool]      = boolSerializer{}
	Int32   Serializer[int32]     = int32Serializer{}
	Int64   Serializer[int64]     = int64Serializer{}
	Float64 Serializer[float64]   = float64Serializer{}
	Time    Serializer[time.Time] = timeSerializer{}
	UUID    Serializer[uuid.UUID] = uuidSerializer{}
)

type textSerializer struct{}

func (textSerializer) ToBytes(v string) ([]byte, error) {
	return []byte(v), nil
}

func (textSerializer) FromBytes(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", fmt.Errorf("invalid UTF-8 text: (%d) %x", len(b), b)
	}
	return string(b), nil
}

type bytesSerializer struct{}

func (bytesSerializer) ToBytes(v []byte) ([]byte, error) {
	return v, nil
}

func (bytesSerializer) FromBytes(b []byte) ([]byte, error) {
	return b, nil
}

type boolSerializer struct{}

func (boolSerializer) ToBytes(v bool) ([]byte, error) {
	if v {
		return []byte{1}, nil
	}
	return []byte{0}, nil
}

func (boolSerializer) FromBytes(b []byte) (bool, error) {
	if len(b) != 1 {
		return false, fmt.Errorf("invalid bool length: got %d bytes, wanted 1", len(b))
	}
	return b[0] != 0, nil
}

type int32Serializer struct{}

func (int32Serializer) ToBytes(v int32) ([]byte, error) {
	return binary.BigEndian.AppendUint32(nil, uint32(v)), nil
}

func (int32Serializer) FromBytes(b []byte) (int32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("invalid int32 length: got %d bytes, wanted 4", len(b))
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

type int64Serializer struct{}

func (int64Serializer) ToBytes(v int64) ([]byte, error) {
	return binary.BigEndian.AppendUint64(nil, uint64(v)), nil
}

func (int64Serializer) FromBytes(b []byte) (int64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("invalid int64 length: got %d bytes, wanted 8", len(b))
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

type float64Serializer struct{}

func (float64Serializer) ToBytes(v float64) ([]byte, error) {
	return binary.BigEndian.AppendUint64(nil, math.Float64bits(v)), nil
}

func (float64Serializer) FromBytes(b []byte) (float64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("invalid float64 length: got %d bytes, wanted 8", len(b))
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

type timeSerializer struct{}

func (timeSerializer) ToBytes(v time.Time) ([]byte, error) {
	return binary.BigEndian.AppendUint64(nil, uint64(v.UnixMilli())), nil
}

func (timeSerializer) FromBytes(b []byte) (time.Time, error) {
	if len(b) != 8 {
		return time.Time{}, fmt.Errorf("invalid time length: got %d bytes, wanted 8", len(b))
	}
	ms := int64(binary.BigEndian.Uint64(b))
	return time.UnixMilli(ms).UTC(), nil
}

type uuidSerializer struct{}

func (uuidSerializer) ToBytes(v uuid.UUID) ([]byte, error) {
	return append([]byte(nil), v[:]...), nil
}

func (uuidSerializer) FromBytes(b []byte) (uuid.UUID, error) {
	u, err := uuid.FromBytes(b)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("invalid uuid: %w", err)
	}
	return u, nil
}
