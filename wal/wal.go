// Package wal implements a write-ahead log for encoded mutation payloads.
//
// Callers append opaque payloads before sending them to the store, and
// remove them once the store acknowledges the write. After a crash, Replay
// returns the surviving payloads in append order so they can be retried.
//
// Records live in a Bolt database, keyed by a monotonic uint64 assigned at
// append time. Each record carries an xxhash checksum and a timestamp:
//
//   - key = id:64
//   - record = checksum:64 timestamp:32 payload
//
// The checksum covers timestamp and payload.
package wal

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.etcd.io/bbolt"
)

var ErrNotFound = fmt.Errorf("record not found")

var recordsBucket = []byte("records")

type Options struct {
	Context   context.Context
	DebugName string
	Now       func() time.Time
	Logger    *slog.Logger
	Verbose   bool
	IsTesting bool
}

// Log is a durable queue of pending payloads. Safe for concurrent use.
type Log struct {
	bdb       *bbolt.DB
	context   context.Context
	debugName string
	now       func() time.Time
	logger    *slog.Logger
	verbose   bool

	AppendCount atomic.Uint64
	RemoveCount atomic.Uint64
}

func Open(path string, o Options) (*Log, error) {
	if o.Context == nil {
		o.Context = context.Background()
	}
	if o.DebugName == "" {
		o.DebugName = "wal"
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	bopt := *bbolt.DefaultOptions
	bopt.Timeout = 10 * time.Second
	if o.IsTesting {
		bopt.NoSync = true
		bopt.NoFreelistSync = true
		bopt.InitialMmapSize = 1024 * 1024
	}

	bdb, err := bbolt.Open(path, 0666, &bopt)
	if err != nil {
		return nil, fmt.Errorf("wal: %w", err)
	}

	l := &Log{
		bdb:       bdb,
		context:   o.Context,
		debugName: o.DebugName,
		now:       o.Now,
		logger:    o.Logger,
		verbose:   o.Verbose,
	}

	err = bdb.Update(func(btx *bbolt.Tx) error {
		_, err := btx.CreateBucketIfNotExists(recordsBucket)
		return err
	})
	if err != nil {
		bdb.Close()
		return nil, fmt.Errorf("wal: %w", err)
	}
	return l, nil
}

func (l *Log) String() string {
	return l.debugName
}

// Bolt exposes the underlying Bolt database for tools and tests.
func (l *Log) Bolt() *bbolt.DB {
	return l.bdb
}

func (l *Log) Close() error {
	err := l.bdb.Close()
	if err != nil {
		return fmt.Errorf("wal: closing: %w", err)
	}
	return nil
}

// Append stores a payload and returns its id. Ids increase monotonically
// and are never reused, even across removals and reopens.
func (l *Log) Append(payload []byte) (uint64, error) {
	if len(payload) == 0 {
		return 0, fmt.Errorf("wal: empty payload")
	}
	ts := l.timestamp()
	var id uint64
	err := l.bdb.Update(func(btx *bbolt.Tx) error {
		buck := btx.Bucket(recordsBucket)
		var err error
		id, err = buck.NextSequence()
		if err != nil {
			return err
		}
		return buck.Put(recordKey(id), appendRecord(nil, ts, payload))
	})
	if err != nil {
		return 0, fmt.Errorf("wal: %w", err)
	}
	l.AppendCount.Add(1)
	if l.verbose {
		l.logger.LogAttrs(l.context, slog.LevelDebug, "wal: append", slog.String("wal", l.debugName), slog.Uint64("id", id), slog.Int("size", len(payload)))
	}
	return id, nil
}

// Remove deletes an acknowledged record. Returns ErrNotFound if the id is
// not in the log.
func (l *Log) Remove(id uint64) error {
	err := l.bdb.Update(func(btx *bbolt.Tx) error {
		buck := btx.Bucket(recordsBucket)
		k := recordKey(id)
		if buck.Get(k) == nil {
			return ErrNotFound
		}
		return buck.Delete(k)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("wal: %w", err)
	}
	l.RemoveCount.Add(1)
	if l.verbose {
		l.logger.LogAttrs(l.context, slog.LevelDebug, "wal: remove", slog.String("wal", l.debugName), slog.Uint64("id", id))
	}
	return nil
}

// Len returns the number of pending records.
func (l *Log) Len() (int, error) {
	var n int
	err := l.bdb.View(func(btx *bbolt.Tx) error {
		n = btx.Bucket(recordsBucket).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("wal: %w", err)
	}
	return n, nil
}

// Replay calls f for each pending record in ascending id order, stopping at
// the first error. The payload is only valid for the duration of the call;
// copy it to retain.
//
// A record that fails its checksum stops the replay with a RecordError.
func (l *Log) Replay(f func(id uint64, payload []byte) error) error {
	return l.bdb.View(func(btx *bbolt.Tx) error {
		c := btx.Bucket(recordsBucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			id := binary.BigEndian.Uint64(k)
			_, payload, err := decodeRecord(id, v)
			if err != nil {
				return err
			}
			if err := f(id, payload); err != nil {
				return err
			}
		}
		return nil
	})
}

func (l *Log) timestamp() uint32 {
	v := l.now().Unix()
	if v < 0 {
		panic("time travel disallowed")
	}
	u := uint64(v)
	if u&0xFFFF_FFFF_0000_0000 != 0 {
		panic("time travel disallowed both ways")
	}
	return uint32(u)
}

func recordKey(id uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, id)
}
