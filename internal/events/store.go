package events

// Poller is the capability handed to a state machine. It may be called any
// number of times per advance.
type Poller interface {
	// PollMessage reports whether a message is pending and clears it.
	PollMessage() bool

	// PollButton reports whether the button is currently held.
	PollButton() bool
}

// Mutator is the capability handed to the command interpreter.
type Mutator interface {
	SetMessagePending()
	SetButton(held bool)
}

// State is a read-only copy of the store used for logging and traces.
type State struct {
	MessagePending bool `json:"message_pending"`
	ButtonHeld     bool `json:"button_held"`
}

// Store is the single source of truth for pending and ongoing events.
// The zero value is ready to use: no message pending, button released.
type Store struct {
	messagePending bool // edge: consume-once
	buttonHeld     bool // level: persists until released
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// PollMessage implements Poller. It returns true exactly once per latched
// message.
func (s *Store) PollMessage() bool {
	pending := s.messagePending
	s.messagePending = false
	return pending
}

// PollButton implements Poller. It never mutates the store.
func (s *Store) PollButton() bool {
	return s.buttonHeld
}

// SetMessagePending implements Mutator. Latching an already pending message
// is a no-op; messages do not queue.
func (s *Store) SetMessagePending() {
	s.messagePending = true
}

// SetButton implements Mutator.
func (s *Store) SetButton(held bool) {
	s.buttonHeld = held
}

// Snapshot returns the current values without consuming a pending message.
func (s *Store) Snapshot() State {
	return State{
		MessagePending: s.messagePending,
		ButtonHeld:     s.buttonHeld,
	}
}

var (
	_ Poller  = (*Store)(nil)
	_ Mutator = (*Store)(nil)
)
