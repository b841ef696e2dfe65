// Package store records what happened during a scripted scenario run in an
// in-memory SQLite database so assertions can be written as queries.
//
// Two append-only tables:
//   - iterations: one row per Advance call (token, command, stop flag)
//   - observations: one row per event poll the machine made
//
// All ordering uses the seq column from a logical clock, never timestamps,
// so repeated runs of the same scenario produce identical rows.
//
// The database only ever lives in memory and is discarded on Close.
package store
