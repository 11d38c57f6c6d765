// Package warehouse executes planned check queries against the event log and
// snapshots each pass into a destination table.
package warehouse

import (
	"context"

	"github.com/cm-analytics/eventcheck/internal/domain"
	"github.com/cm-analytics/eventcheck/internal/queryplan"
)

// Store runs a planned query and materializes its rows into destination,
// replacing any prior snapshot for that destination. The returned rows are
// the same rows that were written. Any failure comes back as a classified
// *domain.QueryError and is fatal to the invocation: a failed query means the
// check could not assert correctness either way, and no partial snapshot is
// left behind.
type Store interface {
	Execute(ctx context.Context, plan queryplan.Plan, destination string) ([]domain.CheckResult, error)
}
