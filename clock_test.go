package rowmut

import (
	"sync"
	"testing"
	"time"
)

func TestConstantClock(t *testing.T) {
	deepEqual(t, ConstantClock(42).Now(), int64(42))
	deepEqual(t, ConstantClock(42).Now(), int64(42))
}

func TestClockFunc(t *testing.T) {
	var n int64
	c := ClockFunc(func() int64 { n++; return n })
	deepEqual(t, c.Now(), int64(1))
	deepEqual(t, c.Now(), int64(2))
}

func TestMillisClock(t *testing.T) {
	c := millisClock{func() time.Time { return time.UnixMilli(123456) }}
	deepEqual(t, c.Now(), int64(123456))
}

func TestMicrosClock(t *testing.T) {
	c := microsClock{func() time.Time { return time.UnixMicro(987654321) }}
	deepEqual(t, c.Now(), int64(987654321))
}

func TestUniqueMicrosClock(t *testing.T) {
	cur := int64(1000)
	c := &uniqueMicrosClock{now: func() time.Time { return time.UnixMicro(cur) }}

	deepEqual(t, c.Now(), int64(1000))
	deepEqual(t, c.Now(), int64(1001)) // wall clock stalled
	deepEqual(t, c.Now(), int64(1002))
	cur = 900 // wall clock stepped back
	deepEqual(t, c.Now(), int64(1003))
	cur = 2000
	deepEqual(t, c.Now(), int64(2000))
}

func TestUniqueMicrosClockConcurrent(t *testing.T) {
	c := &uniqueMicrosClock{now: func() time.Time { return time.UnixMicro(1) }}

	const goroutines = 8
	const perGoroutine = 1000
	values := make([][]int64, goroutines)

	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			vals := make([]int64, 0, perGoroutine)
			for range perGoroutine {
				vals = append(vals, c.Now())
			}
			values[g] = vals
		}()
	}
	wg.Wait()

	seen := make(map[int64]bool, goroutines*perGoroutine)
	for _, vals := range values {
		last := int64(0)
		for _, v := range vals {
			if v <= last {
				t.Fatalf("** timestamps not increasing: %d after %d", v, last)
			}
			last = v
			if seen[v] {
				t.Fatalf("** duplicate timestamp %d", v)
			}
			seen[v] = true
		}
	}
}
