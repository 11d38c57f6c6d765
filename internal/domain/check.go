package domain

import "fmt"

// CheckResult is one row of a completed check: an expected (name, platform)
// cell annotated with the number of matching raw events observed in the
// analyzed window. Count == 0 means the name never appeared on that platform.
type CheckResult struct {
	Name     string   `json:"name"`
	Platform Platform `json:"platform"`
	Count    int64    `json:"count"`
}

// Missing reports whether the expected cell was never observed.
func (r CheckResult) Missing() bool {
	return r.Count == 0
}

// Cell renders the (name, platform) pair for logs and alert messages.
func (r CheckResult) Cell() string {
	return fmt.Sprintf("(%s, %s)", r.Name, r.Platform)
}

// DiscrepancyReport holds, for one category, the zero-count subsequence of a
// check pass in its original row order. It is built and consumed within a
// single invocation.
type DiscrepancyReport struct {
	Category Category      `json:"category"`
	Missing  []CheckResult `json:"missing"`
}

// Empty reports whether the category had no missing cells.
func (d DiscrepancyReport) Empty() bool {
	return len(d.Missing) == 0
}
