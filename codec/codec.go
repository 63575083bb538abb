// Package codec converts row keys, column names and column values to and
// from the raw bytes a wide-column store actually moves around.
//
// A Serializer handles one kind of value. The package provides serializers
// for the usual scalar kinds with stable, comparator-friendly encodings
// (big-endian integers sort correctly as bytes), plus msgpack for structured
// values and snappy for bulky text. Anything else plugs in via Func.
package codec

// Serializer converts values of one kind to raw bytes and back.
//
// ToBytes and FromBytes must round-trip: FromBytes(ToBytes(v)) == v for any
// valid v. Implementations must not retain or mutate the byte slices they
// are given.
type Serializer[T any] interface {
	ToBytes(v T) ([]byte, error)
	FromBytes(b []byte) (T, error)
}

// Func builds a Serializer from a pair of functions.
func Func[T any](enc func(T) ([]byte, error), dec func([]byte) (T, error)) Serializer[T] {
	return funcSerializer[T]{enc, dec}
}

type funcSerializer[T any] struct {
	enc func(T) ([]byte, error)
	dec func([]byte) (T, error)
}

func (s funcSerializer[T]) ToBytes(v T) ([]byte, error) {
	return s.enc(v)
}

func (s funcSerializer[T]) FromBytes(b []byte) (T, error) {
	return s.dec(b)
}
