package rowmut

import (
	"fmt"
	"strings"
)

type Op int

const (
	OpNone Op = iota
	OpUpsert
	OpCounter
	OpDelete
)

func (v Op) String() string {
	switch v {
	case OpNone:
		return "none"
	case OpUpsert:
		return "upsert"
	case OpCounter:
		return "counter"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("op(%d)", int(v))
	}
}

// Column is an absolute-value write. The server resolves concurrent writes
// to the same column by Timestamp, last writer wins. TTL is in whole seconds
// from the moment the write lands, zero means the column never expires.
type Column struct {
	Name      []byte
	Value     []byte
	Timestamp int64
	TTL       int32
}

// CounterColumn is a commutative delta. It carries no timestamp: the server
// merges deltas in any order.
type CounterColumn struct {
	Name  []byte
	Delta int64
}

// Deletion removes the whole row when Predicate is nil, or exactly the
// columns the predicate names otherwise. Columns written after Timestamp
// survive.
type Deletion struct {
	Timestamp int64
	Predicate *Predicate
}

// Predicate enumerates columns to delete. A builder keeps growing the same
// predicate across DeleteColumn calls, so the value is shared between the
// builder and the batch entry; use Names or Len to observe it.
type Predicate struct {
	names [][]byte
}

func (p *Predicate) Len() int {
	return len(p.names)
}

// Names returns the serialized column names in the order they were added,
// duplicates preserved.
func (p *Predicate) Names() [][]byte {
	return append([][]byte(nil), p.names...)
}

func (p *Predicate) add(name []byte) {
	p.names = append(p.names, name)
}

// Entry is one staged operation. Exactly one of Column, Counter and Deletion
// is set, matching Op. Scope carries the serialized super column name for
// entries staged through WithSuperColumn, and is nil at the row root.
type Entry struct {
	op       Op
	scope    []byte
	column   *Column
	counter  *CounterColumn
	deletion *Deletion
}

func (e Entry) Op() Op                  { return e.op }
func (e Entry) HasScope() bool          { return e.scope != nil }
func (e Entry) Scope() []byte           { return e.scope }
func (e Entry) Column() *Column         { return e.column }
func (e Entry) Counter() *CounterColumn { return e.counter }
func (e Entry) Deletion() *Deletion     { return e.deletion }

func (e Entry) String() string {
	var buf strings.Builder
	buf.WriteString(e.op.String())
	buf.WriteByte(' ')
	if e.scope != nil {
		buf.WriteString(hexstr(e.scope))
		buf.WriteByte('/')
	}
	switch e.op {
	case OpUpsert:
		fmt.Fprintf(&buf, "%s = %s ts=%d", hexstr(e.column.Name), hexstr(e.column.Value), e.column.Timestamp)
		if e.column.TTL > 0 {
			fmt.Fprintf(&buf, " ttl=%d", e.column.TTL)
		}
	case OpCounter:
		fmt.Fprintf(&buf, "%s += %d", hexstr(e.counter.Name), e.counter.Delta)
	case OpDelete:
		if p := e.deletion.Predicate; p != nil {
			strs := make([]string, len(p.names))
			for i, name := range p.names {
				strs[i] = hexstr(name)
			}
			fmt.Fprintf(&buf, "%s ts=%d", strings.Join(strs, ","), e.deletion.Timestamp)
		} else {
			fmt.Fprintf(&buf, "* ts=%d", e.deletion.Timestamp)
		}
	default:
		buf.WriteString("???")
	}
	return buf.String()
}
