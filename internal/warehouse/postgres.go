package warehouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/cm-analytics/eventcheck/internal/db"
	"github.com/cm-analytics/eventcheck/internal/domain"
	"github.com/cm-analytics/eventcheck/internal/queryplan"
)

// PostgresStore executes check queries against the local development schema.
// The SELECT and the snapshot replacement run inside one transaction, so a
// failed pass never leaves a partial snapshot behind.
type PostgresStore struct {
	conn *db.Connection
}

// NewPostgresStore wraps an established connection pool.
func NewPostgresStore(conn *db.Connection) *PostgresStore {
	return &PostgresStore{conn: conn}
}

// Execute runs the plan, deletes the prior snapshot for the destination, and
// copies the fresh rows in. Re-running with an unchanged event log leaves the
// destination with an identical row set.
func (s *PostgresStore) Execute(ctx context.Context, plan queryplan.Plan, destination string) ([]domain.CheckResult, error) {
	ident := pgx.Identifier(strings.Split(destination, "."))

	var results []domain.CheckResult
	err := s.conn.WithTx(ctx, func(tx pgx.Tx) error {
		var err error
		results, err = replaceSnapshot(ctx, tx, plan, ident)
		return err
	})
	if err != nil {
		return nil, classifyPostgres(plan.Category, err)
	}
	return results, nil
}

// replaceSnapshot runs the check query, deletes the prior snapshot, and
// copies the fresh rows in, all on the same transaction.
func replaceSnapshot(ctx context.Context, tx pgx.Tx, plan queryplan.Plan, ident pgx.Identifier) ([]domain.CheckResult, error) {
	args := make([]any, len(plan.Params))
	for i, param := range plan.Params {
		args[i] = param
	}

	results := make([]domain.CheckResult, 0, plan.ExpectedRows())
	rows, err := tx.Query(ctx, plan.SQL, args...)
	if err != nil {
		return nil, fmt.Errorf("run check query: %w", err)
	}
	for rows.Next() {
		var result domain.CheckResult
		if err := rows.Scan(&result.Name, &result.Platform, &result.Count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan check row: %w", err)
		}
		results = append(results, result)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read check rows: %w", err)
	}

	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s", ident.Sanitize())); err != nil {
		return nil, fmt.Errorf("clear snapshot %s: %w", ident.Sanitize(), err)
	}

	_, err = tx.CopyFrom(ctx, ident,
		[]string{"name", "platform", "occurrences"},
		pgx.CopyFromSlice(len(results), func(i int) ([]any, error) {
			return []any{results[i].Name, string(results[i].Platform), results[i].Count}, nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("write snapshot %s: %w", ident.Sanitize(), err)
	}
	return results, nil
}
