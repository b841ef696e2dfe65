package drive

import (
	"github.com/google/uuid"
)

// SessionIDGenerator names a single Run for log correlation.
// Implemented by UUIDv7Generator (production) and testutil.FixedSessionGenerator
// (tests).
type SessionIDGenerator interface {
	Generate() string
}

// UUIDv7Generator produces time-sortable UUIDv7 session ids.
//
// Panics if UUID generation fails (should never happen in practice).
type UUIDv7Generator struct{}

// Generate returns a hyphenated UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
