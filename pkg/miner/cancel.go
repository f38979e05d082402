package miner

import "sync/atomic"

// Canceler is a single process-wide cooperative-cancellation flag. It is
// writable from a signal handler and polled at the head of the greedy
// miner's outer candidate loop and at the top of every PrefixSpan
// recursion frame. There is no preemption: an in-progress candidate or
// recursion frame always completes its current step before the flag is
// observed.
type Canceler struct {
	flag atomic.Bool
}

// NewCanceler returns a Canceler in the not-cancelled state.
func NewCanceler() *Canceler {
	return &Canceler{}
}

// Cancel sets the flag. Safe to call concurrently with Cancelled, typically
// from a signal handler goroutine.
func (c *Canceler) Cancel() {
	if c == nil {
		return
	}
	c.flag.Store(true)
}

// Cancelled reports whether Cancel has been called. A nil Canceler is
// treated as never cancelled, so callers that don't need cancellation can
// pass nil.
func (c *Canceler) Cancelled() bool {
	return c != nil && c.flag.Load()
}
