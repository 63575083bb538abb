package rowmut

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// encodingVersion is bumped when the binary layout changes. Decoders accept
// any version up to the current one.
const encodingVersion = 1

var (
	_ encoding.BinaryMarshaler   = (*Batch)(nil)
	_ encoding.BinaryUnmarshaler = (*Batch)(nil)
	_ encoding.BinaryMarshaler   = (*Mutator)(nil)
	_ encoding.BinaryUnmarshaler = (*Mutator)(nil)
)

type encColumn struct {
	Name  []byte `msgpack:"n"`
	Value []byte `msgpack:"v"`
	Ts    int64  `msgpack:"t"`
	TTL   int32  `msgpack:"l,omitempty"`
}

type encCounter struct {
	Name  []byte `msgpack:"n"`
	Delta int64  `msgpack:"d"`
}

// encDeletion's Names is nil for a whole-row deletion; a predicate is never
// empty, so the distinction survives the round trip.
type encDeletion struct {
	Ts    int64    `msgpack:"t"`
	Names [][]byte `msgpack:"p"`
}

type encEntry struct {
	Op    int          `msgpack:"o"`
	Scope []byte       `msgpack:"s"`
	Col   *encColumn   `msgpack:"c,omitempty"`
	Ctr   *encCounter  `msgpack:"x,omitempty"`
	Del   *encDeletion `msgpack:"e,omitempty"`
}

type encBatch struct {
	Entries []encEntry `msgpack:"e"`
}

type encRow struct {
	Family string   `msgpack:"f"`
	Key    []byte   `msgpack:"k"`
	Batch  encBatch `msgpack:"b"`
}

type encMutator struct {
	Rows []encRow `msgpack:"r"`
}

func marshalWithHeader(v any) ([]byte, error) {
	var bb bytes.Buffer
	bb.Write(binary.AppendUvarint(nil, encodingVersion))
	enc := msgpack.GetEncoder()
	enc.ResetDict(&bb, nil)
	err := enc.Encode(v)
	msgpack.PutEncoder(enc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T using MsgPack: %w", v, err)
	}
	return bb.Bytes(), nil
}

func unmarshalWithHeader(data []byte, v any) error {
	ver, n := binary.Uvarint(data)
	if n <= 0 {
		return dataErrf(data, 0, nil, "invalid encoding header")
	}
	if ver == 0 || ver > encodingVersion {
		return dataErrf(data, 0, nil, "unsupported encoding version %d", ver)
	}
	var r bytes.Reader
	r.Reset(data[n:])
	dec := msgpack.GetDecoder()
	dec.ResetDict(&r, nil)
	err := dec.Decode(v)
	msgpack.PutDecoder(dec)
	if err != nil {
		return dataErrf(data, n, err, "failed to decode msgpack into %T", v)
	}
	return nil
}

func encodeBatch(b *Batch) encBatch {
	ents := make([]encEntry, len(b.entries))
	for i, e := range b.entries {
		ee := encEntry{Op: int(e.op), Scope: e.scope}
		switch e.op {
		case OpUpsert:
			ee.Col = &encColumn{e.column.Name, e.column.Value, e.column.Timestamp, e.column.TTL}
		case OpCounter:
			ee.Ctr = &encCounter{e.counter.Name, e.counter.Delta}
		case OpDelete:
			d := &encDeletion{Ts: e.deletion.Timestamp}
			if p := e.deletion.Predicate; p != nil {
				d.Names = p.names
			}
			ee.Del = d
		}
		ents[i] = ee
	}
	return encBatch{ents}
}

func decodeBatch(data []byte, eb encBatch) (*Batch, error) {
	b := &Batch{entries: make([]Entry, len(eb.Entries)), sealed: true}
	for i, ee := range eb.Entries {
		e := Entry{op: Op(ee.Op), scope: ee.Scope}
		switch {
		case e.op == OpUpsert && ee.Col != nil && ee.Ctr == nil && ee.Del == nil:
			e.column = &Column{ee.Col.Name, ee.Col.Value, ee.Col.Ts, ee.Col.TTL}
		case e.op == OpCounter && ee.Ctr != nil && ee.Col == nil && ee.Del == nil:
			e.counter = &CounterColumn{ee.Ctr.Name, ee.Ctr.Delta}
		case e.op == OpDelete && ee.Del != nil && ee.Col == nil && ee.Ctr == nil:
			d := &Deletion{Timestamp: ee.Del.Ts}
			if ee.Del.Names != nil {
				d.Predicate = &Predicate{names: ee.Del.Names}
			}
			e.deletion = d
		default:
			return nil, dataErrf(data, 0, nil, "invalid entry %d (op %v)", i, e.op)
		}
		b.entries[i] = e
	}
	return b, nil
}

// MarshalBinary encodes the batch's current entries. A batch with a
// recorded serialization failure refuses to encode.
func (b *Batch) MarshalBinary() ([]byte, error) {
	if b.err != nil {
		return nil, fmt.Errorf("rowmut: refusing to encode failed batch: %w", b.err)
	}
	return marshalWithHeader(encodeBatch(b))
}

// UnmarshalBinary replaces the batch with the decoded entries. Decoded
// batches come back sealed.
func (b *Batch) UnmarshalBinary(data []byte) error {
	var eb encBatch
	if err := unmarshalWithHeader(data, &eb); err != nil {
		return err
	}
	nb, err := decodeBatch(data, eb)
	if err != nil {
		return err
	}
	*b = *nb
	return nil
}

// MarshalBinary encodes all staged rows. A mutator with a recorded
// serialization failure refuses to encode.
func (m *Mutator) MarshalBinary() ([]byte, error) {
	if err := m.Err(); err != nil {
		return nil, fmt.Errorf("rowmut: refusing to encode failed mutator: %w", err)
	}
	em := encMutator{Rows: make([]encRow, len(m.rows))}
	for i, r := range m.rows {
		em.Rows[i] = encRow{r.Family, r.Key, encodeBatch(r.Batch)}
	}
	return marshalWithHeader(em)
}

// UnmarshalBinary replaces the mutator's staged rows with the decoded ones.
// All decoded batches are sealed: a restored mutator is for inspection and
// re-submission, not for further staging.
func (m *Mutator) UnmarshalBinary(data []byte) error {
	var em encMutator
	if err := unmarshalWithHeader(data, &em); err != nil {
		return err
	}
	rows := make([]StagedRow, len(em.Rows))
	index := make(map[stagedKey]*Batch, len(em.Rows))
	for i, er := range em.Rows {
		if er.Family == "" {
			return dataErrf(data, 0, nil, "missing column family in row %d", i)
		}
		b, err := decodeBatch(data, er.Batch)
		if err != nil {
			return err
		}
		rows[i] = StagedRow{er.Family, er.Key, b}
		index[stagedKey{er.Family, string(er.Key)}] = b
	}
	m.rows = rows
	m.index = index
	m.err = nil
	return nil
}
