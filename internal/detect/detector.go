// Package detect classifies check results into present and missing cells.
package detect

import "github.com/cm-analytics/eventcheck/internal/domain"

// Missing returns the zero-count subsequence of results in its original
// order. It is a single stable pass: an all-zero input comes back whole, an
// all-positive input comes back empty, through the same path.
func Missing(results []domain.CheckResult) []domain.CheckResult {
	missing := make([]domain.CheckResult, 0)
	for _, result := range results {
		if result.Missing() {
			missing = append(missing, result)
		}
	}
	return missing
}

// Report pairs a category with its missing cells.
func Report(category domain.Category, results []domain.CheckResult) domain.DiscrepancyReport {
	return domain.DiscrepancyReport{
		Category: category,
		Missing:  Missing(results),
	}
}
