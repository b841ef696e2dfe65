package machine

import (
	"fmt"

	"github.com/roach88/ciao/internal/events"
)

// DefaultMessageLimit is used when a watcher is configured with limit 0.
const DefaultMessageLimit = 2

// observation is what a Watcher saw during one Advance.
type observation struct {
	button  bool
	message bool
}

// Watcher polls the button and the message exactly once per Advance and
// asks to stop once it has seen limit messages.
type Watcher struct {
	poller events.Poller
	limit  int

	advances int
	messages int
	last     observation
}

// NewWatcher returns a watcher over p (DefaultMessageLimit when limit is 0).
func NewWatcher(p events.Poller, limit int) *Watcher {
	if limit <= 0 {
		limit = DefaultMessageLimit
	}
	return &Watcher{poller: p, limit: limit}
}

func (w *Watcher) Initialize() {
	w.advances = 0
	w.messages = 0
	w.last = observation{}
}

func (w *Watcher) Advance() bool {
	w.last = observation{
		button:  w.poller.PollButton(),
		message: w.poller.PollMessage(),
	}
	w.advances++
	if w.last.message {
		w.messages++
	}
	return w.messages >= w.limit
}

// Report implements Reporter.
func (w *Watcher) Report() string {
	if w.advances == 0 {
		return "watcher: no observations"
	}
	button := "released"
	if w.last.button {
		button = "held"
	}
	msg := "none"
	if w.last.message {
		msg = "received"
	}
	return fmt.Sprintf("watcher: button %s, message %s (%d/%d)", button, msg, w.messages, w.limit)
}
