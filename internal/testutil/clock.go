// Package testutil holds deterministic stand-ins used by the scenario
// harness and by tests, so repeated runs produce byte-identical traces.
package testutil

// DeterministicClock numbers trace records 1, 2, 3, ... in the order they
// are written. It replaces wall-clock timestamps in traces.
//
// Not safe for concurrent use; the drive loop is single-threaded.
type DeterministicClock struct {
	seq int64
}

// NewDeterministicClock creates a clock whose first Next returns 1.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{}
}

// Next advances the clock and returns the new sequence number.
func (c *DeterministicClock) Next() int64 {
	c.seq++
	return c.seq
}
