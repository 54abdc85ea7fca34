// Package mission records the outcome of each game.
package mission

import (
	"context"
	"fmt"
	"time"
)

// Outcome is how a mission ended.
type Outcome string

const (
	OutcomeWon     Outcome = "won"
	OutcomeLost    Outcome = "lost"
	OutcomeAborted Outcome = "aborted"
)

// Record describes one finished mission.
type Record struct {
	At        time.Time
	Outcome   Outcome
	Player    string
	Score     int
	Destroyed int
	Duration  time.Duration
	Source    string // Data source of the asteroid catalog (live or fallback)
	Impactor  string // Name of the asteroid that ended the mission, if any
}

// Log stores mission records.
type Log interface {
	Append(ctx context.Context, r Record) error
	// Recent returns up to n records, newest first.
	Recent(ctx context.Context, n int) ([]Record, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendText   = "text"
	BackendSQLite = "sqlite"
)

// Open opens the mission log of the given kind at path.
func Open(kind, path string) (Log, error) {
	switch kind {
	case "", BackendText:
		return OpenText(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("mission: unknown backend %q", kind)
	}
}

// Discard is a Log that drops every record.
type Discard struct{}

func (Discard) Append(context.Context, Record) error          { return nil }
func (Discard) Recent(context.Context, int) ([]Record, error) { return nil, nil }
func (Discard) Close() error                                  { return nil }
