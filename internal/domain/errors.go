package domain

import "fmt"

// FailureKind classifies a data-layer fault. Unlike whitelist or alert
// failures, every one of these is fatal to the invocation: a failed query
// means the check could not assert correctness either way.
type FailureKind string

const (
	FailureBadRequest     FailureKind = "bad_request"
	FailureNotFound       FailureKind = "not_found"
	FailurePermission     FailureKind = "permission_denied"
	FailureUnavailable    FailureKind = "unavailable"
	FailureRetryExhausted FailureKind = "retry_exhausted"
	FailureInternal       FailureKind = "internal"
)

// QueryError wraps a warehouse fault with its classification and the category
// that was being checked when it occurred.
type QueryError struct {
	Kind     FailureKind
	Category Category
	Err      error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failure (%s) checking %s: %v", e.Kind, e.Category.Name, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError builds a classified query failure.
func NewQueryError(kind FailureKind, category Category, err error) *QueryError {
	return &QueryError{Kind: kind, Category: category, Err: err}
}
