package rowmut

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/andreyvit/rowmut/codec"
)

// emptyValue marks presence-only columns. Never mutated.
var emptyValue = []byte{}

// mutation is the state shared by RowMutation and SuperColumnMutation.
//
// scope is the serialized super column name, nil at the row root. pred is
// the tracked column-deletion predicate, created by the first DeleteColumn
// and grown in place by every later one; it belongs to this builder alone.
// bad marks a builder whose scope or row key failed to serialize: all of
// its operations turn into no-ops (the error is already on the batch).
type mutation[C any] struct {
	batch *Batch
	clock Clock
	names codec.Serializer[C]
	scope []byte
	ttl   int32
	pred  *Predicate
	bad   bool
}

func (mu *mutation[C]) encodeName(arg string, name C) ([]byte, bool) {
	raw, err := mu.names.ToBytes(name)
	if err != nil {
		mu.batch.fail(serializationErrf(arg, name, err))
		return nil, false
	}
	return raw, true
}

// putColumn stages an absolute-value write: serialize the name, then the
// value, then read the clock, then append. A serializer failure before the
// append leaves the batch without a partial entry.
func putColumn[C, V any](mu *mutation[C], name C, value V, ser codec.Serializer[V], ttl int32) {
	if mu.bad {
		return
	}
	rawName, ok := mu.encodeName(argColumnName, name)
	if !ok {
		return
	}
	rawValue, err := ser.ToBytes(value)
	if err != nil {
		mu.batch.fail(serializationErrf(argColumnValue, value, err))
		return
	}
	mu.batch.append(Entry{
		op:     OpUpsert,
		scope:  mu.scope,
		column: &Column{Name: rawName, Value: rawValue, Timestamp: mu.clock.Now(), TTL: ttl},
	})
}

func (mu *mutation[C]) putEmpty(name C, ttl int32) {
	putColumn(mu, name, emptyValue, codec.Bytes, ttl)
}

func (mu *mutation[C]) deleteRow() {
	if mu.bad {
		return
	}
	mu.batch.append(Entry{
		op:       OpDelete,
		scope:    mu.scope,
		deletion: &Deletion{Timestamp: mu.clock.Now()},
	})
}

// deleteColumn coalesces: the first call appends a deletion entry and keeps
// its predicate; later calls grow that same predicate in place, regardless
// of what was staged in between. The name is serialized before anything is
// created, so a failure changes nothing.
func (mu *mutation[C]) deleteColumn(name C) {
	if mu.bad {
		return
	}
	rawName, ok := mu.encodeName(argColumnName, name)
	if !ok {
		return
	}
	if mu.pred == nil {
		mu.pred = &Predicate{}
		mu.batch.append(Entry{
			op:       OpDelete,
			scope:    mu.scope,
			deletion: &Deletion{Timestamp: mu.clock.Now(), Predicate: mu.pred},
		})
	} else {
		mu.batch.ensureMutable()
	}
	mu.pred.add(rawName)
}

func (mu *mutation[C]) incrementCounter(name C, delta int64) {
	if mu.bad {
		return
	}
	rawName, ok := mu.encodeName(argColumnName, name)
	if !ok {
		return
	}
	mu.batch.append(Entry{
		op:      OpCounter,
		scope:   mu.scope,
		counter: &CounterColumn{Name: rawName, Delta: delta},
	})
}

func ttlSeconds(d time.Duration) int32 {
	if d == 0 {
		return 0
	}
	if d < time.Second {
		panic(fmt.Errorf("rowmut: TTL must be at least one second, got %v", d))
	}
	secs := int64(d / time.Second)
	if secs > math.MaxInt32 {
		panic(fmt.Errorf("rowmut: TTL too large: %v", d))
	}
	return int32(secs)
}

// RowMutation accumulates changes to one row. All operations return the
// builder for chaining, and record failures on the shared Batch instead of
// returning them; see Batch.Err.
//
// Use NewRowMutation for a standalone builder, or Mutator.Row (via the Row
// function) to stage multiple rows together.
type RowMutation[C any] struct {
	mu mutation[C]
}

// NewRowMutation returns a builder appending to b, with names converting
// column names to bytes and clock timestamping absolute-value writes.
func NewRowMutation[C any](b *Batch, clock Clock, names codec.Serializer[C]) *RowMutation[C] {
	if b == nil {
		panic("rowmut: nil batch")
	}
	if clock == nil {
		panic("rowmut: nil clock")
	}
	if names == nil {
		panic("rowmut: nil name serializer")
	}
	return &RowMutation[C]{mutation[C]{batch: b, clock: clock, names: names}}
}

func (b *RowMutation[C]) mut() *mutation[C] { return &b.mu }

// Batch returns the batch this builder appends to.
func (b *RowMutation[C]) Batch() *Batch { return b.mu.batch }

// Err returns the first serialization failure recorded on the batch, or nil.
func (b *RowMutation[C]) Err() error { return b.mu.batch.Err() }

// WithTTL sets the default TTL applied by the typed Put methods from now
// on. Zero removes the default. Sub-second durations panic; see PutTTL.
func (b *RowMutation[C]) WithTTL(d time.Duration) *RowMutation[C] {
	b.mu.ttl = ttlSeconds(d)
	return b
}

func (b *RowMutation[C]) PutString(name C, value string) *RowMutation[C] {
	putColumn(&b.mu, name, value, codec.Text, b.mu.ttl)
	return b
}

func (b *RowMutation[C]) PutBytes(name C, value []byte) *RowMutation[C] {
	putColumn(&b.mu, name, value, codec.Bytes, b.mu.ttl)
	return b
}

func (b *RowMutation[C]) PutBool(name C, value bool) *RowMutation[C] {
	putColumn(&b.mu, name, value, codec.Bool, b.mu.ttl)
	return b
}

func (b *RowMutation[C]) PutInt32(name C, value int32) *RowMutation[C] {
	putColumn(&b.mu, name, value, codec.Int32, b.mu.ttl)
	return b
}

func (b *RowMutation[C]) PutInt64(name C, value int64) *RowMutation[C] {
	putColumn(&b.mu, name, value, codec.Int64, b.mu.ttl)
	return b
}

func (b *RowMutation[C]) PutFloat64(name C, value float64) *RowMutation[C] {
	putColumn(&b.mu, name, value, codec.Float64, b.mu.ttl)
	return b
}

func (b *RowMutation[C]) PutTime(name C, value time.Time) *RowMutation[C] {
	putColumn(&b.mu, name, value, codec.Time, b.mu.ttl)
	return b
}

func (b *RowMutation[C]) PutUUID(name C, value uuid.UUID) *RowMutation[C] {
	putColumn(&b.mu, name, value, codec.UUID, b.mu.ttl)
	return b
}

// PutEmpty stages a column with a zero-length value. Wide-column data
// models use such columns as membership markers.
func (b *RowMutation[C]) PutEmpty(name C) *RowMutation[C] {
	b.mu.putEmpty(name, b.mu.ttl)
	return b
}

func (b *RowMutation[C]) PutEmptyTTL(name C, ttl time.Duration) *RowMutation[C] {
	b.mu.putEmpty(name, ttlSeconds(ttl))
	return b
}

// Delete stages a whole-row deletion. Every call appends its own entry;
// row deletions are never coalesced.
func (b *RowMutation[C]) Delete() *RowMutation[C] {
	b.mu.deleteRow()
	return b
}

// DeleteColumn stages deletion of one column. Calls on the same builder
// coalesce into a single entry; see the package documentation.
func (b *RowMutation[C]) DeleteColumn(name C) *RowMutation[C] {
	b.mu.deleteColumn(name)
	return b
}

// IncrementCounter stages a counter delta. Deltas are commutative and
// carry no timestamp.
func (b *RowMutation[C]) IncrementCounter(name C, delta int64) *RowMutation[C] {
	b.mu.incrementCounter(name, delta)
	return b
}

// WithSuperColumn returns a builder whose entries are scoped to the given
// super column. The child appends to the same batch and reads the same
// clock, but tracks its own deletion predicate and its own default TTL.
// Nesting stops here: the child cannot open another scope.
//
// If the group name fails to serialize, the error is recorded on the batch
// and the returned child ignores all operations.
func (b *RowMutation[C]) WithSuperColumn(name C) *SuperColumnMutation[C] {
	child := &SuperColumnMutation[C]{mutation[C]{
		batch: b.mu.batch,
		clock: b.mu.clock,
		names: b.mu.names,
	}}
	if b.mu.bad {
		child.mu.bad = true
		return child
	}
	raw, err := b.mu.names.ToBytes(name)
	if err != nil {
		b.mu.batch.fail(serializationErrf(argSuperColumnName, name, err))
		child.mu.bad = true
		return child
	}
	child.mu.scope = raw
	return child
}

// SuperColumnMutation accumulates changes scoped to one super column.
// It supports the same operations as RowMutation except opening another
// scope. Delete removes the whole group.
type SuperColumnMutation[C any] struct {
	mu mutation[C]
}

func (b *SuperColumnMutation[C]) mut() *mutation[C] { return &b.mu }

// Scope returns the serialized super column name entries are scoped to,
// or nil if the name failed to serialize.
func (b *SuperColumnMutation[C]) Scope() []byte { return b.mu.scope }

func (b *SuperColumnMutation[C]) Batch() *Batch { return b.mu.batch }

func (b *SuperColumnMutation[C]) Err() error { return b.mu.batch.Err() }

func (b *SuperColumnMutation[C]) WithTTL(d time.Duration) *SuperColumnMutation[C] {
	b.mu.ttl = ttlSeconds(d)
	return b
}

func (b *SuperColumnMutation[C]) PutString(name C, value string) *SuperColumnMutation[C] {
	putColumn(&b.mu, name, value, codec.Text, b.mu.ttl)
	return b
}

func (b *SuperColumnMutation[C]) PutBytes(name C, value []byte) *SuperColumnMutation[C] {
	putColumn(&b.mu, name, value, codec.Bytes, b.mu.ttl)
	return b
}

func (b *SuperColumnMutation[C]) PutBool(name C, value bool) *SuperColumnMutation[C] {
	putColumn(&b.mu, name, value, codec.Bool, b.mu.ttl)
	return b
}

func (b *SuperColumnMutation[C]) PutInt32(name C, value int32) *SuperColumnMutation[C] {
	putColumn(&b.mu, name, value, codec.Int32, b.mu.ttl)
	return b
}

func (b *SuperColumnMutation[C]) PutInt64(name C, value int64) *SuperColumnMutation[C] {
	putColumn(&b.mu, name, value, codec.Int64, b.mu.ttl)
	return b
}

func (b *SuperColumnMutation[C]) PutFloat64(name C, value float64) *SuperColumnMutation[C] {
	putColumn(&b.mu, name, value, codec.Float64, b.mu.ttl)
	return b
}

func (b *SuperColumnMutation[C]) PutTime(name C, value time.Time) *SuperColumnMutation[C] {
	putColumn(&b.mu, name, value, codec.Time, b.mu.ttl)
	return b
}

func (b *SuperColumnMutation[C]) PutUUID(name C, value uuid.UUID) *SuperColumnMutation[C] {
	putColumn(&b.mu, name, value, codec.UUID, b.mu.ttl)
	return b
}

func (b *SuperColumnMutation[C]) PutEmpty(name C) *SuperColumnMutation[C] {
	b.mu.putEmpty(name, b.mu.ttl)
	return b
}

func (b *SuperColumnMutation[C]) PutEmptyTTL(name C, ttl time.Duration) *SuperColumnMutation[C] {
	b.mu.putEmpty(name, ttlSeconds(ttl))
	return b
}

// Delete stages deletion of the whole super column group.
func (b *SuperColumnMutation[C]) Delete() *SuperColumnMutation[C] {
	b.mu.deleteRow()
	return b
}

func (b *SuperColumnMutation[C]) DeleteColumn(name C) *SuperColumnMutation[C] {
	b.mu.deleteColumn(name)
	return b
}

func (b *SuperColumnMutation[C]) IncrementCounter(name C, delta int64) *SuperColumnMutation[C] {
	b.mu.incrementCounter(name, delta)
	return b
}

// ColumnMutation is the surface shared by RowMutation and
// SuperColumnMutation, for the generic Put functions. Only those two types
// implement it.
type ColumnMutation[C any] interface {
	mut() *mutation[C]
}

// Put stages an absolute-value write of any kind on b, converting the value
// with the given serializer and applying b's default TTL. This is a
// function rather than a method so that the value kind can be a type
// parameter.
func Put[C, V any, M ColumnMutation[C]](b M, name C, value V, ser codec.Serializer[V]) M {
	mu := b.mut()
	putColumn(mu, name, value, ser, mu.ttl)
	return b
}

// PutTTL is Put with an explicit TTL for this one column, overriding the
// builder default. The TTL is truncated to whole seconds; zero means no
// expiry, and a nonzero TTL under one second panics.
func PutTTL[C, V any, M ColumnMutation[C]](b M, name C, value V, ser codec.Serializer[V], ttl time.Duration) M {
	putColumn(b.mut(), name, value, ser, ttlSeconds(ttl))
	return b
}
