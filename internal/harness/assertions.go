package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/ciao/internal/store"
)

// AssertionContext carries what assertions may inspect: the run's trace
// store and how the loop ended.
type AssertionContext struct {
	Store   *store.Store
	Ctx     context.Context
	Outcome Outcome
}

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string

	// Iterations are the recorded iterations of the run, in order.
	Iterations []store.Iteration
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Iterations) > 0 {
		fmt.Fprintf(&buf, "\nIterations:\n")
		for _, it := range e.Iterations {
			token := "-"
			if it.Token != nil {
				token = fmt.Sprintf("%q", *it.Token)
			}
			fmt.Fprintf(&buf, "  [%d] token=%s command=%s stop=%t\n", it.Iteration, token, it.Command, it.Stop)
		}
	}

	return buf.String()
}

// EvaluateAssertions runs every assertion and returns the failure messages.
func EvaluateAssertions(assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for _, a := range assertions {
		if err := evaluateAssertion(a, actx); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluateAssertion(a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertStopReason:
		return assertStopReason(actx, a)
	case AssertIterations:
		return assertIterations(actx, a)
	case AssertObserved:
		return assertObserved(actx, a)
	case AssertObservationCount:
		return assertObservationCount(actx, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// fail builds an AssertionError listing the iterations in the store.
func (actx *AssertionContext) fail(typ, expected, actual string) error {
	its, err := actx.Store.ReadIterations(actx.Ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", typ, err)
	}
	return &AssertionError{
		Type:       typ,
		Expected:   expected,
		Actual:     actual,
		Iterations: its,
	}
}

func assertStopReason(actx *AssertionContext, a Assertion) error {
	out := actx.Outcome
	if out.Reason == a.Reason {
		return nil
	}
	actual := string(out.Reason)
	if out.FailedAt > 0 {
		actual = fmt.Sprintf("%s at iteration %d", out.Reason, out.FailedAt)
	}
	return actx.fail(AssertStopReason, string(a.Reason), actual)
}

// assertIterations counts the iterations recorded in the store. They must
// agree with what the loop reported before the count is compared.
func assertIterations(actx *AssertionContext, a Assertion) error {
	recorded, err := actx.Store.CountIterations(actx.Ctx)
	if err != nil {
		return err
	}
	out := actx.Outcome
	if recorded != out.Iterations {
		return actx.fail(AssertIterations,
			fmt.Sprintf("%d recorded iterations", out.Iterations),
			fmt.Sprintf("%d recorded iterations", recorded))
	}
	if recorded == a.Count {
		return nil
	}
	return actx.fail(AssertIterations,
		fmt.Sprintf("%d iterations", a.Count),
		fmt.Sprintf("%d iterations (%s)", recorded, out.Reason))
}

// assertObserved requires at least one poll of the event during the
// iteration, and every such poll to have returned the expected value.
func assertObserved(actx *AssertionContext, a Assertion) error {
	values, err := actx.Store.ObservationsAt(actx.Ctx, a.Iteration, a.Event)
	if err != nil {
		return err
	}
	want := *a.Value
	expected := fmt.Sprintf("%s=%t at iteration %d", a.Event, want, a.Iteration)

	if len(values) == 0 {
		return actx.fail(AssertObserved, expected, "event not polled during that iteration")
	}
	for _, v := range values {
		if v != want {
			return actx.fail(AssertObserved, expected, fmt.Sprintf("polls returned %v", values))
		}
	}
	return nil
}

func assertObservationCount(actx *AssertionContext, a Assertion) error {
	n, err := actx.Store.CountObservations(actx.Ctx, a.Event, *a.Value)
	if err != nil {
		return err
	}
	if n == a.Count {
		return nil
	}
	return actx.fail(AssertObservationCount,
		fmt.Sprintf("%d polls of %s returning %t", a.Count, a.Event, *a.Value),
		fmt.Sprintf("%d polls", n))
}
