package warehouse

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"google.golang.org/api/googleapi"

	"github.com/cm-analytics/eventcheck/internal/domain"
)

// classifyBigQuery maps a BigQuery job failure onto the fault taxonomy.
// Malformed queries, missing tables, permission denials, overload, and retry
// exhaustion each land on their own kind; anything unrecognized is internal.
func classifyBigQuery(category domain.Category, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusBadRequest:
			return domain.NewQueryError(domain.FailureBadRequest, category, err)
		case http.StatusNotFound:
			return domain.NewQueryError(domain.FailureNotFound, category, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return domain.NewQueryError(domain.FailurePermission, category, err)
		case http.StatusTooManyRequests, http.StatusServiceUnavailable:
			return domain.NewQueryError(domain.FailureUnavailable, category, err)
		default:
			return domain.NewQueryError(domain.FailureInternal, category, err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewQueryError(domain.FailureRetryExhausted, category, err)
	}
	return domain.NewQueryError(domain.FailureInternal, category, err)
}

// classifyPostgres maps a pgx failure onto the same taxonomy using SQLSTATE
// classes: syntax/undefined objects, privileges, resource and connection
// faults.
func classifyPostgres(category domain.Category, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "42P01": // undefined_table
			return domain.NewQueryError(domain.FailureNotFound, category, err)
		case pgErr.Code == "42501": // insufficient_privilege
			return domain.NewQueryError(domain.FailurePermission, category, err)
		case strings.HasPrefix(pgErr.Code, "42"): // syntax or access rule violation
			return domain.NewQueryError(domain.FailureBadRequest, category, err)
		case strings.HasPrefix(pgErr.Code, "53"), // insufficient resources
			strings.HasPrefix(pgErr.Code, "57"), // operator intervention
			strings.HasPrefix(pgErr.Code, "08"): // connection exception
			return domain.NewQueryError(domain.FailureUnavailable, category, err)
		default:
			return domain.NewQueryError(domain.FailureInternal, category, err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewQueryError(domain.FailureRetryExhausted, category, err)
	}
	return domain.NewQueryError(domain.FailureInternal, category, err)
}
