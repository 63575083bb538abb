package rowmut

import (
	"fmt"
	"iter"
	"strings"
)

// Batch is the ordered list of entries staged for one row. Builders append
// to it; nothing ever reorders or rewrites appended entries (the tracked
// deletion predicate grows in place, but the entry holding it stays put).
//
// A batch is single-producer: one goroutine builds it, then Seal makes it
// immutable and safe to hand off.
type Batch struct {
	entries []Entry
	err     error
	sealed  bool
}

func NewBatch() *Batch {
	return &Batch{}
}

func (b *Batch) Len() int {
	return len(b.entries)
}

func (b *Batch) Entry(i int) Entry {
	return b.entries[i]
}

// Entries returns a copy of the entry list. The entries still share column,
// counter and deletion values with the batch.
func (b *Batch) Entries() []Entry {
	return append([]Entry(nil), b.entries...)
}

func (b *Batch) All() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range b.entries {
			if !yield(i, e) {
				break
			}
		}
	}
}

// Err returns the first serialization failure recorded against this batch,
// or nil. Failed calls append nothing; calls after a failure still apply.
func (b *Batch) Err() error {
	return b.err
}

// Seal makes the batch immutable. Any builder operation that would append
// an entry or grow the tracked predicate afterwards panics.
func (b *Batch) Seal() {
	b.sealed = true
}

func (b *Batch) Sealed() bool {
	return b.sealed
}

func (b *Batch) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Batch) ensureMutable() {
	if b.sealed {
		panic("rowmut: mutation of sealed batch")
	}
}

func (b *Batch) append(e Entry) {
	b.ensureMutable()
	b.entries = append(b.entries, e)
}

// Dump formats the batch for logs and tests, one line per entry.
func (b *Batch) Dump() string {
	var buf strings.Builder
	for i, e := range b.entries {
		fmt.Fprintf(&buf, "[%d] %s\n", i, e.String())
	}
	return buf.String()
}
