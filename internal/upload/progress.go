package upload

import (
	"io"
	"sync"
)

// ProgressFunc receives the overall upload progress as a percentage.
type ProgressFunc func(percent int)

// reporter forwards only increases, so callers never see progress go backwards or repeat.
type reporter struct {
	fn   ProgressFunc
	mu   sync.Mutex
	last int
}

func newReporter(fn ProgressFunc) *reporter {
	return &reporter{fn: fn, last: -1}
}

func (r *reporter) report(percent int) {
	if r.fn == nil {
		return
	}
	percent = min(max(percent, 0), 100)

	// The transfer step reports from the transport's goroutine, so fn runs under the lock.
	r.mu.Lock()
	defer r.mu.Unlock()
	if percent <= r.last {
		return
	}
	r.last = percent
	r.fn(percent)
}

// countingReader calls onRead after every read with the bytes delivered so far.
type countingReader struct {
	r      io.Reader
	total  int64
	sent   int64
	onRead func(sent, total int64)
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.sent += int64(n)
		if c.onRead != nil && c.total > 0 {
			c.onRead(min(c.sent, c.total), c.total)
		}
	}
	return n, err
}
