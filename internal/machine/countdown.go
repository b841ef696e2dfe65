package machine

import "fmt"

// DefaultCountdown is used when a countdown is configured with limit 0.
const DefaultCountdown = 3

// Countdown stays pending for n advances and asks to stop on the next one.
// Once done it stays done. It never polls the event store.
type Countdown struct {
	n       int
	pending int
	done    bool
}

// NewCountdown returns a countdown over n pending advances
// (DefaultCountdown when n is 0).
func NewCountdown(n int) *Countdown {
	if n <= 0 {
		n = DefaultCountdown
	}
	return &Countdown{n: n}
}

func (c *Countdown) Initialize() {
	c.pending = 0
	c.done = false
}

func (c *Countdown) Advance() bool {
	if c.done {
		return true
	}
	if c.pending < c.n {
		c.pending++
		return false
	}
	c.done = true
	return true
}

// Report implements Reporter.
func (c *Countdown) Report() string {
	if c.done {
		return "countdown: done"
	}
	return fmt.Sprintf("countdown: pending %d/%d", c.pending, c.n)
}
