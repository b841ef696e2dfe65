package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/ciao/internal/drive"
	"github.com/roach88/ciao/internal/events"
	"github.com/roach88/ciao/internal/machine"
	"github.com/roach88/ciao/internal/store"
	"github.com/roach88/ciao/internal/testutil"
)

// Harness records one scenario run into its trace store.
type Harness struct {
	ctx    context.Context
	store  *store.Store
	clock  *testutil.DeterministicClock
	result *Result

	// iteration is the loop iteration currently inside Advance.
	iteration int

	// err is the first trace write failure; hooks cannot return errors.
	err error
}

// Run executes a scenario in a fresh in-memory trace store and evaluates
// its assertions. An error is returned only when the scenario could not be
// executed at all; failing assertions are reported on the Result.
func Run(scenario *Scenario) (*Result, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	st, err := store.OpenMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	h := &Harness{
		ctx:    ctx,
		store:  st,
		clock:  testutil.NewDeterministicClock(),
		result: NewResult(),
	}

	evs := events.NewStore()
	m, err := machine.New(scenario.Machine, &observingPoller{inner: evs, h: h})
	if err != nil {
		return nil, err
	}

	opts := []drive.Option{
		drive.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		drive.WithSessionIDs(testutil.NewFixedSessionGenerator(scenario.SessionID)),
		drive.WithBound(scenario.Bound),
		drive.BeforeAdvance(h.beforeAdvance),
		drive.AfterAdvance(h.afterAdvance),
	}
	if scenario.EffectiveMode() == ModeCommands {
		opts = append(opts, drive.WithInput(drive.NewScriptInput(scenario.Commands...)))
	}

	res, runErr := drive.New(m, evs, opts...).Run()
	h.result.Outcome = Outcome{
		Reason:     res.Reason,
		Iterations: res.Iterations,
		SessionID:  res.SessionID,
	}
	if runErr != nil {
		var ae *drive.AcquisitionError
		if !errors.As(runErr, &ae) {
			return nil, fmt.Errorf("drive loop: %w", runErr)
		}
		h.result.Outcome.FailedAt = ae.Iteration
	}
	if h.err != nil {
		return nil, fmt.Errorf("recording trace: %w", h.err)
	}

	actx := &AssertionContext{
		Store:   st,
		Ctx:     ctx,
		Outcome: h.result.Outcome,
	}
	for _, msg := range EvaluateAssertions(scenario.Assertions, actx) {
		h.result.AddError(msg)
	}

	return h.result, nil
}

func (h *Harness) beforeAdvance(step drive.Step) {
	h.iteration = step.Iteration
}

func (h *Harness) afterAdvance(step drive.Step) {
	seq := h.clock.Next()
	rec := store.Iteration{
		Iteration: step.Iteration,
		Seq:       seq,
		Command:   step.Command.String(),
		Stop:      step.Stop,
	}
	if step.HasToken {
		tok := step.Token
		rec.Token = &tok
	}
	h.record(h.store.WriteIteration(h.ctx, rec))
	h.result.AddIterationTrace(seq, step)
}

func (h *Harness) observe(event string, value bool) {
	seq := h.clock.Next()
	h.record(h.store.WriteObservation(h.ctx, store.Observation{
		Seq:       seq,
		Iteration: h.iteration,
		Event:     event,
		Value:     value,
	}))
	h.result.AddPollTrace(seq, h.iteration, event, value)
}

func (h *Harness) record(err error) {
	if err != nil && h.err == nil {
		h.err = err
	}
}

// observingPoller forwards polls to the real event store and records what
// the machine saw.
type observingPoller struct {
	inner events.Poller
	h     *Harness
}

func (p *observingPoller) PollMessage() bool {
	v := p.inner.PollMessage()
	p.h.observe(store.EventMessage, v)
	return v
}

func (p *observingPoller) PollButton() bool {
	v := p.inner.PollButton()
	p.h.observe(store.EventButton, v)
	return v
}
