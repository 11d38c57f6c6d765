// Package alert delivers discrepancy notifications. Delivery is best-effort:
// the check has already established its finding by the time an alert goes
// out, so a failed send is logged by the caller and never fails the run.
package alert

import (
	"context"
	"fmt"
	"strings"

	"github.com/cm-analytics/eventcheck/internal/domain"
)

// Dispatcher sends a notification for a category's missing cells. It is only
// invoked with a non-empty missing list.
type Dispatcher interface {
	Notify(ctx context.Context, category domain.Category, missing []domain.CheckResult) error
}

// FormatMessage renders the alert text listing every missing
// (name, platform) pair in report order.
func FormatMessage(category domain.Category, missing []domain.CheckResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Data quality check: %d expected %s name(s) never observed in the event log:\n",
		len(missing), category.Name)
	for _, result := range missing {
		fmt.Fprintf(&b, "• %s\n", result.Cell())
	}
	return strings.TrimRight(b.String(), "\n")
}
