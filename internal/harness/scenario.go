package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ciao/internal/drive"
	"github.com/roach88/ciao/internal/machine"
	"github.com/roach88/ciao/internal/store"
)

// Scenario modes.
const (
	ModeScripted = "scripted"
	ModeCommands = "commands"
)

// Scenario defines one scripted run and what must hold afterwards.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Machine selects the bundled state machine to drive.
	Machine machine.Config `yaml:"machine"`

	// Mode is ModeScripted or ModeCommands. Empty means commands when
	// Commands is non-empty, scripted otherwise.
	Mode string `yaml:"mode,omitempty"`

	// Bound caps iterations. Required for scripted mode.
	Bound int `yaml:"bound,omitempty"`

	// Commands are fed to the loop one per iteration in commands mode.
	Commands []string `yaml:"commands,omitempty"`

	// SessionID fixes the run's session id for golden comparison.
	SessionID string `yaml:"session_id,omitempty"`

	// Assertions validate the outcome and the recorded observations.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion checks one property of a finished run.
type Assertion struct {
	Type string `yaml:"type"`

	// Reason is the expected stop reason (stop_reason).
	Reason drive.StopReason `yaml:"reason,omitempty"`

	// Count is the expected number (iterations, observation_count).
	Count int `yaml:"count,omitempty"`

	// Iteration is the 1-based iteration to inspect (observed).
	Iteration int `yaml:"iteration,omitempty"`

	// Event is "message" or "button" (observed, observation_count).
	Event string `yaml:"event,omitempty"`

	// Value is the expected poll result (observed, observation_count).
	Value *bool `yaml:"value,omitempty"`
}

// Assertion type constants.
const (
	AssertStopReason       = "stop_reason"
	AssertIterations       = "iterations"
	AssertObserved         = "observed"
	AssertObservationCount = "observation_count"
)

// EffectiveMode resolves an empty Mode.
func (s *Scenario) EffectiveMode() string {
	if s.Mode != "" {
		return s.Mode
	}
	if len(s.Commands) > 0 {
		return ModeCommands
	}
	return ModeScripted
}

// LoadScenario reads, schema-checks and parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(path, data)
}

// ParseScenario parses a scenario document. filename is only used in error
// messages.
func ParseScenario(filename string, data []byte) (*Scenario, error) {
	if err := ValidateDocument(filename, data); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks the rules the schema cannot express and guards
// scenarios built in Go rather than loaded from YAML.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Machine.Name == "" {
		return fmt.Errorf("machine.name is required")
	}
	if s.Bound < 0 {
		return fmt.Errorf("bound must be non-negative")
	}

	switch s.EffectiveMode() {
	case ModeScripted:
		if s.Bound == 0 {
			return fmt.Errorf("scripted mode requires a positive bound")
		}
		if len(s.Commands) > 0 {
			return fmt.Errorf("scripted mode does not read commands")
		}
	case ModeCommands:
	default:
		return fmt.Errorf("unknown mode %q", s.Mode)
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertStopReason:
		switch a.Reason {
		case drive.StopRequested, drive.BoundReached, drive.InputFailed:
		default:
			return fmt.Errorf("assertions[%d]: unknown stop reason %q", index, a.Reason)
		}
	case AssertIterations:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertObserved:
		if a.Iteration < 1 {
			return fmt.Errorf("assertions[%d]: iteration must be >= 1 for observed", index)
		}
		if err := validateEvent(index, a); err != nil {
			return err
		}
	case AssertObservationCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
		if err := validateEvent(index, a); err != nil {
			return err
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

func validateEvent(index int, a *Assertion) error {
	if a.Event != store.EventMessage && a.Event != store.EventButton {
		return fmt.Errorf("assertions[%d]: event must be %q or %q, got %q",
			index, store.EventMessage, store.EventButton, a.Event)
	}
	if a.Value == nil {
		return fmt.Errorf("assertions[%d]: value is required for %s", index, a.Type)
	}
	return nil
}
