// Package harness runs scripted scenarios against the drive loop and checks
// what the state machine observed.
//
// # Scenario Format
//
// Scenarios are YAML documents:
//
//	name: press_then_message
//	description: "button level persists, message is consumed once"
//	machine:
//	  name: watcher
//	  limit: 2
//	mode: commands          # or "scripted"; defaults from commands/bound
//	bound: 0                # required (> 0) for scripted mode
//	commands: [p, m, r, m]  # fed one per iteration; running out is end of input
//	session_id: test-session-001
//	assertions:
//	  - type: stop_reason
//	    reason: stop_requested
//	  - type: iterations
//	    count: 4
//	  - type: observed
//	    iteration: 2
//	    event: message
//	    value: true
//	  - type: observation_count
//	    event: message
//	    value: true
//	    count: 2
//
// Every document is checked against an embedded CUE schema before it is
// decoded, and decoding rejects unknown fields.
//
// # Assertion Types
//
//   - stop_reason: how the loop ended (stop_requested, bound_reached,
//     input_failed)
//   - iterations: number of Advance calls
//   - observed: every poll of event during iteration returned value (and
//     there was at least one)
//   - observation_count: number of polls of event that returned value
//
// # Determinism
//
// Each run uses a fresh in-memory trace store, a logical clock for sequence
// numbers and a fixed session id, so the same scenario always yields the
// same trace. Traces are compared against golden files.
package harness
