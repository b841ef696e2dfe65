package store

import (
	"context"
	"database/sql"
	"fmt"
)

// CountObservations returns how many polls of event returned value.
func (s *Store) CountObservations(ctx context.Context, event string, value bool) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM observations WHERE event = ? AND value = ?
	`, event, boolToInt(value)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count observations: %w", err)
	}
	return n, nil
}

// ObservationsAt returns the values of every poll of event made during
// iteration, in poll order. Empty (not nil) when the machine did not poll.
func (s *Store) ObservationsAt(ctx context.Context, iteration int, event string) ([]bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT value FROM observations
		WHERE iteration = ? AND event = ?
		ORDER BY seq ASC
	`, iteration, event)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	values := []bool{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		values = append(values, v != 0)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observations: %w", err)
	}
	return values, nil
}

// ReadIterations returns all iteration rows ordered by seq.
func (s *Store) ReadIterations(ctx context.Context) ([]Iteration, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT iteration, seq, token, command, stop
		FROM iterations
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query iterations: %w", err)
	}
	defer rows.Close()

	its := []Iteration{}
	for rows.Next() {
		var (
			it    Iteration
			token sql.NullString
			stop  int
		)
		if err := rows.Scan(&it.Iteration, &it.Seq, &token, &it.Command, &stop); err != nil {
			return nil, fmt.Errorf("scan iteration: %w", err)
		}
		if token.Valid {
			tok := token.String
			it.Token = &tok
		}
		it.Stop = stop != 0
		its = append(its, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate iterations: %w", err)
	}
	return its, nil
}

// CountIterations returns the number of Advance calls recorded.
func (s *Store) CountIterations(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM iterations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count iterations: %w", err)
	}
	return n, nil
}
