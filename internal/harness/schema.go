package harness

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

// scenarioSchema constrains scenario documents. Definitions are closed, so
// unknown fields anywhere are rejected.
const scenarioSchema = `
#Event: "message" | "button"

#Assertion: {
	type:   "stop_reason"
	reason: "stop_requested" | "bound_reached" | "input_failed"
} | {
	type:  "iterations"
	count: int & >=0
} | {
	type:      "observed"
	iteration: int & >=1
	event:     #Event
	value:     bool
} | {
	type:  "observation_count"
	event: #Event
	value: bool
	count: int & >=0
}

#Scenario: {
	name:        string & !=""
	description: string & !=""
	machine: {
		name:   "idle" | "countdown" | "watcher"
		limit?: int & >=0
	}
	mode?:       "scripted" | "commands"
	bound?:      int & >=0
	commands?: [...string]
	session_id?: string
	assertions: [#Assertion, ...#Assertion]
}
`

// ValidateDocument checks a YAML scenario document against the schema.
func ValidateDocument(filename string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(scenarioSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling scenario schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Scenario"))

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("building %s: %w", filename, err)
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return err
	}
	return nil
}
