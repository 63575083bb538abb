package rowmut

import (
	"fmt"
)

// argument labels for SerializationError.Arg
const (
	argRowKey          = "row key"
	argColumnName      = "column name"
	argColumnValue     = "column value"
	argSuperColumnName = "super column name"
)

// SerializationError is the only error a builder operation can produce:
// a row key, column name, column value or super column name failed to
// convert to bytes. The failing call leaves the batch unmodified.
type SerializationError struct {
	Arg   string // which argument failed, e.g. "column name"
	Value any    // the offending value
	Err   error  // underlying serializer error, may be nil
}

func serializationErrf(arg string, value any, err error) error {
	return &SerializationError{arg, value, err}
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

func (e *SerializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot serialize %s %s of type %T: %v", e.Arg, briefValue(e.Value), e.Value, e.Err)
	}
	return fmt.Sprintf("cannot serialize %s %s of type %T", e.Arg, briefValue(e.Value), e.Value)
}

func briefValue(value any) string {
	const prefixLen = 48
	const suffixLen = 16
	s := fmt.Sprintf("%q", fmt.Sprint(value))
	if len(s) <= prefixLen+suffixLen+3 {
		return s
	}
	return s[:prefixLen] + "..." + s[len(s)-suffixLen:]
}

// DataError reports malformed binary data passed to UnmarshalBinary.
type DataError struct {
	Data []byte
	Off  int
	Err  error
	Msg  string
}

func dataErrf(data []byte, off int, err error, format string, args ...any) error {
	return &DataError{data, off, err, fmt.Sprintf(format, args...)}
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func (e *DataError) Error() string {
	const prefixLen = 64
	const suffixLen = 32
	n := len(e.Data)
	if n <= prefixLen+suffixLen {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: (%d) %x", e.Msg, e.Err, n, e.Data)
		} else {
			return fmt.Sprintf("%s: (%d) %x", e.Msg, n, e.Data)
		}
	} else {
		p, s := e.Data[:prefixLen], e.Data[n-suffixLen:]
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: (%d) %x...%x", e.Msg, e.Err, n, p, s)
		} else {
			return fmt.Sprintf("%s: (%d) %x...%x", e.Msg, n, p, s)
		}
	}
}
