package rowmut

import (
	"errors"
	"strings"
	"testing"
)

func TestSerializationError_ErrorAndUnwrap(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		inner := errors.New("inner")
		err := serializationErrf("column value", "someval", inner)
		var serr *SerializationError
		if !errors.As(err, &serr) {
			t.Fatalf("err = %T, wanted *SerializationError", err)
		}
		if !errors.Is(err, inner) {
			t.Fatalf("errors.Is(err, inner) = false, wanted true")
		}
		s := err.Error()
		if !strings.Contains(s, "column value") || !strings.Contains(s, `"someval"`) || !strings.Contains(s, "string") || !strings.Contains(s, "inner") {
			t.Fatalf("err.Error() = %q, wanted arg/value/type/inner", s)
		}
	})

	t.Run("without cause", func(t *testing.T) {
		s := serializationErrf("column name", 42, nil).Error()
		if !strings.Contains(s, "column name") || !strings.Contains(s, `"42"`) || !strings.Contains(s, "int") {
			t.Fatalf("err.Error() = %q, wanted arg/value/type", s)
		}
	})

	t.Run("long value is truncated", func(t *testing.T) {
		long := strings.Repeat("ab", 200)
		s := serializationErrf("column value", long, nil).Error()
		if !strings.Contains(s, "...") {
			t.Fatalf("err.Error() = %q, wanted truncated value", s)
		}
		if len(s) > 200 {
			t.Fatalf("err.Error() is %d chars, wanted a short message", len(s))
		}
	})
}

func TestDataError_ErrorAndUnwrap(t *testing.T) {
	t.Run("small data", func(t *testing.T) {
		inner := errors.New("inner")
		err := dataErrf([]byte{0xAA, 0xBB}, 1, inner, "oops")
		var de *DataError
		if !errors.As(err, &de) {
			t.Fatalf("err = %T, wanted *DataError", err)
		}
		if !errors.Is(err, inner) {
			t.Fatalf("errors.Is(err, inner) = false, wanted true")
		}
		s := err.Error()
		if !strings.Contains(s, "oops") || !strings.Contains(s, "inner") || !strings.Contains(s, "(2)") {
			t.Fatalf("err.Error() = %q, wanted message with oops/inner/(2)", s)
		}
	})

	t.Run("large data includes prefix+suffix", func(t *testing.T) {
		data := make([]byte, 200)
		for i := range data {
			data[i] = byte(i)
		}
		err := dataErrf(data, 0, nil, "oops")
		s := err.Error()
		if !strings.Contains(s, "(200)") || !strings.Contains(s, "...") {
			t.Fatalf("err.Error() = %q, wanted message with (200) and ...", s)
		}
	})
}
