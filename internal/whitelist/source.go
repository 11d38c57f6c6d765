// Package whitelist supplies the externally curated lists of expected event
// and screen names. The spreadsheet is the single source of truth at call
// time: lists are re-fetched fresh on every run and never cached.
package whitelist

import (
	"context"
	"fmt"
	"strings"

	"github.com/cm-analytics/eventcheck/internal/domain"
)

// Source yields the ordered expected-name list for a category. Order is
// preserved exactly as supplied; names are case-sensitive and duplicates are
// kept. Fetch errors are absorbed by the orchestration layer, which treats a
// failed fetch as an empty whitelist.
type Source interface {
	Fetch(ctx context.Context, category domain.Category) ([]string, error)
}

// columnLetter converts a 1-based column index to its A1-notation letter.
// Whitelist columns sit well inside the single-letter range.
func columnLetter(index int) (string, error) {
	if index < 1 || index > 26 {
		return "", fmt.Errorf("whitelist column %d out of range", index)
	}
	return string(rune('A' + index - 1)), nil
}

// compactColumn drops empty cells while keeping the order and exact text of
// the remaining ones. Blank spreadsheet rows are not expected names.
func compactColumn(cells []string) []string {
	names := make([]string, 0, len(cells))
	for _, cell := range cells {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		names = append(names, cell)
	}
	return names
}
