package drive

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyRan is returned when Run is called twice on the same Loop.
	// Initialize must happen exactly once per loop.
	ErrAlreadyRan = errors.New("drive loop already ran")

	// ErrUnbounded is returned for a scripted loop without a positive bound.
	ErrUnbounded = errors.New("scripted mode requires a positive iteration bound")

	// ErrNoStore is returned for an interactive loop built without an event
	// store to apply commands to.
	ErrNoStore = errors.New("interactive mode requires an event store")
)

// AcquisitionError reports that no input token could be obtained. It is
// fatal for the loop; there are no retries.
type AcquisitionError struct {
	// Iteration is the iteration whose token could not be read. No Advance
	// call happened for it.
	Iteration int

	// Err is the error from the input device, io.EOF for end of stream.
	Err error
}

// Error implements the error interface.
func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("input acquisition failed at iteration %d: %v", e.Iteration, e.Err)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

// IsAcquisitionError reports whether err is or wraps an AcquisitionError.
func IsAcquisitionError(err error) bool {
	var ae *AcquisitionError
	return errors.As(err, &ae)
}
