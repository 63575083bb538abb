package rowmut

import (
	"sync/atomic"
	"time"
)

// Clock supplies timestamps for absolute-value column writes. Timestamps
// order concurrent writes to the same column (larger wins), so the unit only
// has to be consistent across writers; microseconds are the wire convention.
//
// Counter increments never consult the clock.
type Clock interface {
	Now() int64
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() int64

func (f ClockFunc) Now() int64 {
	return f()
}

// ConstantClock returns the same timestamp forever. Handy in tests, and for
// pinning every write of a batch to a single timestamp.
type ConstantClock int64

func (c ConstantClock) Now() int64 {
	return int64(c)
}

// NewMillisClock returns a wall clock in milliseconds since the Unix epoch.
func NewMillisClock() Clock {
	return millisClock{time.Now}
}

type millisClock struct {
	now func() time.Time
}

func (c millisClock) Now() int64 {
	return c.now().UnixMilli()
}

// NewMicrosClock returns a wall clock in microseconds since the Unix epoch.
func NewMicrosClock() Clock {
	return microsClock{time.Now}
}

type microsClock struct {
	now func() time.Time
}

func (c microsClock) Now() int64 {
	return c.now().UnixMicro()
}

// NewUniqueMicrosClock returns a microsecond wall clock that never repeats
// or decreases: when the wall clock stalls or steps back, it keeps counting
// up from the last value. Safe for concurrent use.
func NewUniqueMicrosClock() Clock {
	return &uniqueMicrosClock{now: time.Now}
}

type uniqueMicrosClock struct {
	now  func() time.Time
	last atomic.Int64
}

func (c *uniqueMicrosClock) Now() int64 {
	t := c.now().UnixMicro()
	for {
		prev := c.last.Load()
		if t <= prev {
			t = prev + 1
		}
		if c.last.CompareAndSwap(prev, t) {
			return t
		}
		t = c.now().UnixMicro()
	}
}
