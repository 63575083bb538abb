package rowmut

import (
	"fmt"
	"strings"
)

// StagedRow is one row's pending batch inside a Mutator.
type StagedRow struct {
	Family string
	Key    []byte
	Batch  *Batch
}

type stagedKey struct {
	family string
	key    string
}

// Mutator stages mutations for any number of rows across column families.
// Asking for the same (family, key) twice returns a fresh builder over the
// same batch, so entries keep accumulating; each builder still tracks its
// own deletion predicate.
//
// A Mutator is single-goroutine, like the builders it hands out.
type Mutator struct {
	clock   Clock
	logf    func(format string, args ...any)
	verbose bool
	rows    []StagedRow
	index   map[stagedKey]*Batch
	err     error
}

type Options struct {
	Clock   Clock // defaults to NewUniqueMicrosClock()
	Logf    func(format string, args ...any)
	Verbose bool
}

func NewMutator(opt Options) *Mutator {
	if opt.Clock == nil {
		opt.Clock = NewUniqueMicrosClock()
	}
	return &Mutator{
		clock:   opt.Clock,
		logf:    opt.Logf,
		verbose: opt.Verbose,
		index:   make(map[stagedKey]*Batch),
	}
}

// Row returns a builder for the given row. This is a function rather than
// a method so that the column family's key and name kinds can be type
// parameters.
//
// If the row key fails to serialize, the error is recorded on the mutator,
// and the returned builder is detached: it ignores all operations and
// reports the failure from Err.
func Row[K, C any](m *Mutator, cf *ColumnFamily[K, C], key K) *RowMutation[C] {
	if cf == nil {
		panic("rowmut: nil column family")
	}
	rawKey, err := cf.keys.ToBytes(key)
	if err != nil {
		serr := serializationErrf(argRowKey, key, err)
		m.fail(serr)
		b := NewRowMutation(NewBatch(), m.clock, cf.names)
		b.mu.batch.fail(serr)
		b.mu.bad = true
		return b
	}
	if m.verbose && m.logf != nil {
		m.logf("mut: ROW %s/%s", cf.name, hexstr(rawKey))
	}
	return NewRowMutation(m.batch(cf.name, rawKey), m.clock, cf.names)
}

func (m *Mutator) batch(family string, rawKey []byte) *Batch {
	k := stagedKey{family, string(rawKey)}
	if b := m.index[k]; b != nil {
		return b
	}
	b := NewBatch()
	if m.index == nil {
		m.index = make(map[stagedKey]*Batch)
	}
	m.index[k] = b
	m.rows = append(m.rows, StagedRow{family, rawKey, b})
	return b
}

// RowCount returns the number of distinct rows staged so far.
func (m *Mutator) RowCount() int {
	return len(m.rows)
}

// IsEmpty reports whether no entries are staged. Rows whose builders were
// obtained but never used don't count.
func (m *Mutator) IsEmpty() bool {
	for _, r := range m.rows {
		if r.Batch.Len() > 0 {
			return false
		}
	}
	return true
}

// Rows returns a copy of the staged row list, in first-touch order.
func (m *Mutator) Rows() []StagedRow {
	return append([]StagedRow(nil), m.rows...)
}

// Err returns the first serialization failure recorded by this mutator or
// any of its staged batches.
func (m *Mutator) Err() error {
	if m.err != nil {
		return m.err
	}
	for _, r := range m.rows {
		if err := r.Batch.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mutator) fail(err error) {
	if m.err == nil {
		m.err = err
	}
}

// Seal seals every staged batch. Builder operations after this panic.
func (m *Mutator) Seal() {
	for _, r := range m.rows {
		r.Batch.Seal()
	}
}

// Discard drops all staged rows and recorded errors, keeping the mutator
// usable for a new round.
func (m *Mutator) Discard() {
	if m.verbose && m.logf != nil {
		m.logf("mut: DISCARD %d rows", len(m.rows))
	}
	m.rows = nil
	m.index = make(map[stagedKey]*Batch)
	m.err = nil
}

// Dump formats all staged rows for logs and tests.
func (m *Mutator) Dump() string {
	var buf strings.Builder
	for _, r := range m.rows {
		fmt.Fprintf(&buf, "=== %s/%s (%d entries)\n", r.Family, hexstr(r.Key), r.Batch.Len())
		buf.WriteString(r.Batch.Dump())
	}
	return buf.String()
}
