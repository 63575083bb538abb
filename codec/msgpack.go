package codec

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgPack returns a Serializer that encodes T as msgpack. Map keys are
// sorted so that equal values encode to equal bytes.
func MsgPack[T any]() Serializer[T] {
	return msgpackSerializer[T]{}
}

type msgpackSerializer[T any] struct{}

func (msgpackSerializer[T]) ToBytes(v T) ([]byte, error) {
	var bb bytes.Buffer
	enc := msgpack.GetEncoder()
	enc.ResetDict(&bb, nil)
	enc.SetSortMapKeys(true)
	err := enc.Encode(v)
	msgpack.PutEncoder(enc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T using MsgPack: %w", v, err)
	}
	return bb.Bytes(), nil
}

func (msgpackSerializer[T]) FromBytes(b []byte) (T, error) {
	var v T
	var r bytes.Reader
	r.Reset(b)
	dec := msgpack.GetDecoder()
	dec.ResetDict(&r, nil)
	err := dec.Decode(&v)
	msgpack.PutDecoder(dec)
	if err != nil {
		return v, fmt.Errorf("failed to decode msgpack into %T: %w", v, err)
	}
	return v, nil
}
