package rowmut

import (
	"fmt"

	"github.com/andreyvit/rowmut/wal"
)

// LogTo seals the staged rows, encodes them and appends the result to the
// write-ahead log, returning the record id. Remove the record once the
// store acknowledges the write.
//
// A mutator with a recorded serialization failure, or with nothing staged,
// refuses to log.
func (m *Mutator) LogTo(l *wal.Log) (uint64, error) {
	if err := m.Err(); err != nil {
		return 0, err
	}
	if m.IsEmpty() {
		return 0, fmt.Errorf("rowmut: nothing staged")
	}
	m.Seal()
	data, err := m.MarshalBinary()
	if err != nil {
		return 0, err
	}
	id, err := l.Append(data)
	if err != nil {
		return 0, err
	}
	if m.verbose && m.logf != nil {
		m.logf("mut: LOG %d rows as record %d", len(m.rows), id)
	}
	return id, nil
}

// ReplayWAL decodes each pending record into a Mutator and calls f in
// append order, stopping at the first error. Replayed mutators are sealed;
// use Rows to re-submit their batches, and remove the record once done.
func ReplayWAL(l *wal.Log, f func(id uint64, m *Mutator) error) error {
	return l.Replay(func(id uint64, payload []byte) error {
		m := new(Mutator)
		if err := m.UnmarshalBinary(payload); err != nil {
			return err
		}
		return f(id, m)
	})
}
