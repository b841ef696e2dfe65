package drive

import (
	"log/slog"

	"github.com/roach88/ciao/internal/command"
	"github.com/roach88/ciao/internal/events"
)

// DefaultBound is the scripted-mode iteration bound used by the CLI.
const DefaultBound = 20

// Machine is the state machine under test. Both calls are synchronous and
// never overlap. Advance may poll the event store any number of times and
// returns true to ask the loop to stop.
type Machine interface {
	Initialize()
	Advance() bool
}

// StopReason says why a loop left the Running state.
type StopReason string

const (
	StopRequested StopReason = "stop_requested"
	BoundReached  StopReason = "bound_reached"
	InputFailed   StopReason = "input_failed"
)

// Mode is scripted (no input device) or interactive.
type Mode string

const (
	ModeScripted    Mode = "scripted"
	ModeInteractive Mode = "interactive"
)

// Step describes one iteration. Observers receive it once before Advance
// (Stop is always false) and once after.
type Step struct {
	Iteration int
	Bound     int // 0 when unbounded
	Token     string
	HasToken  bool
	Command   command.Kind
	Stop      bool
}

// Result summarises a finished Run.
type Result struct {
	// Iterations is the number of Advance calls made.
	Iterations int
	Reason     StopReason
	SessionID  string
}

// Loop drives a Machine against an event store.
type Loop struct {
	machine  Machine
	store    *events.Store
	input    Input
	bound    int
	logger   *slog.Logger
	sessions SessionIDGenerator

	beforeAdvance func(Step)
	afterAdvance  func(Step)

	ran bool
}

// Option configures a Loop.
type Option func(*Loop)

// WithInput switches the loop to interactive mode.
func WithInput(in Input) Option {
	return func(l *Loop) {
		l.input = in
	}
}

// WithBound caps the number of iterations. Zero or negative means no cap,
// which is only valid together with an Input.
func WithBound(n int) Option {
	return func(l *Loop) {
		l.bound = n
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithSessionIDs overrides the session id generator (UUIDv7 by default).
func WithSessionIDs(gen SessionIDGenerator) Option {
	return func(l *Loop) {
		l.sessions = gen
	}
}

// BeforeAdvance registers a hook that runs after input has been applied and
// immediately before Advance.
func BeforeAdvance(fn func(Step)) Option {
	return func(l *Loop) {
		l.beforeAdvance = fn
	}
}

// AfterAdvance registers a hook that runs after every Advance with Stop set
// to its return value.
func AfterAdvance(fn func(Step)) Option {
	return func(l *Loop) {
		l.afterAdvance = fn
	}
}

// New builds a loop for m over store. The store must be the same one the
// machine polls; it may be nil only for a scripted loop.
func New(m Machine, store *events.Store, opts ...Option) *Loop {
	l := &Loop{
		machine:  m,
		store:    store,
		logger:   slog.Default(),
		sessions: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Mode reports whether the loop reads input.
func (l *Loop) Mode() Mode {
	if l.input == nil {
		return ModeScripted
	}
	return ModeInteractive
}

// Run initializes the machine and drives it until it stops. A normal stop
// (machine request or bound) returns a nil error. Failing to read a token
// returns the partial Result together with an *AcquisitionError.
func (l *Loop) Run() (Result, error) {
	if l.ran {
		return Result{}, ErrAlreadyRan
	}
	if l.input == nil && l.bound <= 0 {
		return Result{}, ErrUnbounded
	}
	if l.input != nil && l.store == nil {
		return Result{}, ErrNoStore
	}
	l.ran = true

	res := Result{SessionID: l.sessions.Generate()}
	log := l.logger.With("session", res.SessionID)
	log.Info("drive loop starting", "mode", l.Mode(), "bound", l.bound)

	l.machine.Initialize()

	for i := 1; ; i++ {
		if l.bound > 0 && i > l.bound {
			res.Reason = BoundReached
			break
		}

		step := Step{Iteration: i, Bound: l.bound}
		if l.input != nil {
			token, err := l.input.ReadLine()
			if err != nil {
				res.Reason = InputFailed
				log.Error("input acquisition failed", "iteration", i, "error", err)
				return res, &AcquisitionError{Iteration: i, Err: err}
			}
			step.Token = token
			step.HasToken = true
			step.Command = command.Interpret(token, l.store)
		}

		if l.beforeAdvance != nil {
			l.beforeAdvance(step)
		}
		step.Stop = l.machine.Advance()
		res.Iterations = i

		log.Debug("iteration",
			"iteration", i,
			"token", step.Token,
			"command", step.Command.String(),
			"stop", step.Stop,
		)
		if l.afterAdvance != nil {
			l.afterAdvance(step)
		}

		if step.Stop {
			res.Reason = StopRequested
			break
		}
	}

	log.Info("drive loop stopped", "reason", res.Reason, "iterations", res.Iterations)
	return res, nil
}
