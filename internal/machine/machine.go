// Package machine provides state machines the harness can drive out of the
// box. Each satisfies drive.Machine; anything else that does can be driven
// the same way.
package machine

import (
	"fmt"
	"sort"

	"github.com/roach88/ciao/internal/drive"
	"github.com/roach88/ciao/internal/events"
)

const (
	NameIdle      = "idle"
	NameCountdown = "countdown"
	NameWatcher   = "watcher"
)

// Config selects a bundled machine. Limit means "pending advances" for
// countdown and "messages before stopping" for watcher; idle ignores it.
type Config struct {
	Name  string `yaml:"name" json:"name"`
	Limit int    `yaml:"limit,omitempty" json:"limit,omitempty"`
}

// Reporter is implemented by machines that can describe their last
// Advance in one line for interactive output.
type Reporter interface {
	Report() string
}

type constructor func(cfg Config, p events.Poller) drive.Machine

var registry = map[string]constructor{
	NameIdle: func(Config, events.Poller) drive.Machine {
		return &Idle{}
	},
	NameCountdown: func(cfg Config, _ events.Poller) drive.Machine {
		return NewCountdown(cfg.Limit)
	},
	NameWatcher: func(cfg Config, p events.Poller) drive.Machine {
		return NewWatcher(p, cfg.Limit)
	},
}

// New builds the machine named by cfg. p is the event store view the
// machine polls.
func New(cfg Config, p events.Poller) (drive.Machine, error) {
	ctor, ok := registry[cfg.Name]
	if !ok {
		return nil, fmt.Errorf("unknown machine %q: must be one of %v", cfg.Name, Names())
	}
	if cfg.Limit < 0 {
		return nil, fmt.Errorf("machine %s: limit must be non-negative, got %d", cfg.Name, cfg.Limit)
	}
	return ctor(cfg, p), nil
}

// Names lists the bundled machines in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Idle does nothing and never asks to stop. A scripted run against it always
// ends at the bound.
type Idle struct {
	advances int
}

func (m *Idle) Initialize() { m.advances = 0 }

func (m *Idle) Advance() bool {
	m.advances++
	return false
}

// Report implements Reporter.
func (m *Idle) Report() string {
	return fmt.Sprintf("idle: %d advance(s)", m.advances)
}
