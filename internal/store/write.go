package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Iteration is one Advance call.
type Iteration struct {
	Iteration int
	Seq       int64
	Token     *string // nil in scripted mode
	Command   string
	Stop      bool
}

// Observation is one poll made by the machine during an Advance.
type Observation struct {
	Seq       int64
	Iteration int
	Event     string // EventMessage or EventButton
	Value     bool
}

// WriteIteration appends an iteration row. Writing the same iteration twice
// is an error.
func (s *Store) WriteIteration(ctx context.Context, it Iteration) error {
	var token sql.NullString
	if it.Token != nil {
		token = sql.NullString{String: *it.Token, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO iterations (iteration, seq, token, command, stop)
		VALUES (?, ?, ?, ?, ?)
	`,
		it.Iteration,
		it.Seq,
		token,
		it.Command,
		boolToInt(it.Stop),
	)
	if err != nil {
		return fmt.Errorf("write iteration %d: %w", it.Iteration, err)
	}
	return nil
}

// WriteObservation appends an observation row.
func (s *Store) WriteObservation(ctx context.Context, obs Observation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO observations (seq, iteration, event, value)
		VALUES (?, ?, ?, ?)
	`,
		obs.Seq,
		obs.Iteration,
		obs.Event,
		boolToInt(obs.Value),
	)
	if err != nil {
		return fmt.Errorf("write observation seq=%d: %w", obs.Seq, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
