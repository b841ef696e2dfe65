package harness

import (
	"github.com/roach88/ciao/internal/drive"
)

// Trace event types.
const (
	TraceIteration = "iteration"
	TracePoll      = "poll"
)

// TraceEvent is one entry in a run's trace: either a poll the machine made
// or the completion of an iteration.
type TraceEvent struct {
	Type      string  `json:"type"`
	Seq       int64   `json:"seq"`
	Iteration int     `json:"iteration"`
	Token     *string `json:"token,omitempty"`
	Command   string  `json:"command,omitempty"`
	Stop      bool    `json:"stop,omitempty"`
	Event     string  `json:"event,omitempty"`
	Value     *bool   `json:"value,omitempty"`
}

// Outcome is how the loop ended.
type Outcome struct {
	Reason     drive.StopReason `json:"reason"`
	Iterations int              `json:"iterations"`
	SessionID  string           `json:"session_id"`

	// FailedAt is the iteration whose input could not be read, 0 otherwise.
	FailedAt int `json:"failed_at,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	Outcome Outcome `json:"outcome"`

	// Trace holds polls and iterations in seq order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains assertion failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddPollTrace appends a poll to the trace.
func (r *Result) AddPollTrace(seq int64, iteration int, event string, value bool) {
	v := value
	r.Trace = append(r.Trace, TraceEvent{
		Type:      TracePoll,
		Seq:       seq,
		Iteration: iteration,
		Event:     event,
		Value:     &v,
	})
}

// AddIterationTrace appends a completed iteration to the trace.
func (r *Result) AddIterationTrace(seq int64, step drive.Step) {
	ev := TraceEvent{
		Type:      TraceIteration,
		Seq:       seq,
		Iteration: step.Iteration,
		Command:   step.Command.String(),
		Stop:      step.Stop,
	}
	if step.HasToken {
		tok := step.Token
		ev.Token = &tok
	}
	r.Trace = append(r.Trace, ev)
}
