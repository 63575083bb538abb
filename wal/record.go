package wal

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

const recordHeaderSize = 8 + 4

// RecordError reports a record that cannot be decoded, typically after
// on-disk corruption.
type RecordError struct {
	ID  uint64
	Msg string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("wal: record %d: %s", e.ID, e.Msg)
}

func appendRecord(buf []byte, ts uint32, payload []byte) []byte {
	start := len(buf)
	buf = append(buf, 0, 0, 0, 0, 0, 0, 0, 0)
	buf = binary.BigEndian.AppendUint32(buf, ts)
	buf = append(buf, payload...)
	binary.BigEndian.PutUint64(buf[start:], xxhash.Sum64(buf[start+8:]))
	return buf
}

func decodeRecord(id uint64, rec []byte) (ts uint32, payload []byte, err error) {
	if len(rec) < recordHeaderSize {
		return 0, nil, &RecordError{id, fmt.Sprintf("truncated record: %d bytes", len(rec))}
	}
	sum := binary.BigEndian.Uint64(rec)
	if got := xxhash.Sum64(rec[8:]); got != sum {
		return 0, nil, &RecordError{id, fmt.Sprintf("checksum mismatch: got %016x, wanted %016x", got, sum)}
	}
	ts = binary.BigEndian.Uint32(rec[8:])
	return ts, rec[recordHeaderSize:], nil
}
