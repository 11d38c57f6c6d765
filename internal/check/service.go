// Package check orchestrates one data-quality invocation: whitelist fetch,
// query planning and execution, discrepancy detection, and alerting, for each
// category in turn.
package check

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cm-analytics/eventcheck/internal/alert"
	"github.com/cm-analytics/eventcheck/internal/detect"
	"github.com/cm-analytics/eventcheck/internal/domain"
	"github.com/cm-analytics/eventcheck/internal/metrics"
	"github.com/cm-analytics/eventcheck/internal/queryplan"
	"github.com/cm-analytics/eventcheck/internal/runctx"
	"github.com/cm-analytics/eventcheck/internal/warehouse"
	"github.com/cm-analytics/eventcheck/internal/whitelist"
)

// Invocation statuses surfaced to callers.
const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusError   = "error"
)

// Outcome aggregates one invocation: a final status, a human-readable
// message, and the per-category discrepancy reports of every completed
// category.
type Outcome struct {
	Status  string
	Message string
	Reports []domain.DiscrepancyReport
}

// Service wires the check pipeline together. All collaborators are injected;
// the service owns none of their lifecycles.
type Service struct {
	source       whitelist.Source
	planner      *queryplan.Planner
	store        warehouse.Store
	alerts       alert.Dispatcher
	resultsTable string
}

// NewService creates a check service. alerts may be nil to disable delivery,
// in which case discrepancies are only reported in the response and logs.
func NewService(
	source whitelist.Source,
	planner *queryplan.Planner,
	store warehouse.Store,
	alerts alert.Dispatcher,
	resultsTable string,
) *Service {
	return &Service{
		source:       source,
		planner:      planner,
		store:        store,
		alerts:       alerts,
		resultsTable: resultsTable,
	}
}

// Run executes one full pass over every category, sequentially and in order.
// An empty (or unfetchable) whitelist short-circuits the invocation with a
// warning outcome; a warehouse failure aborts it with an error. Alert
// delivery failures are absorbed.
func (s *Service) Run(ctx context.Context) (Outcome, error) {
	start := time.Now()
	runID := runctx.RunIDString(ctx)

	outcome, err := s.run(ctx, runID)

	metrics.RunDuration.Observe(time.Since(start).Seconds())
	metrics.RunsTotal.WithLabelValues(outcome.Status).Inc()
	return outcome, err
}

func (s *Service) run(ctx context.Context, runID string) (Outcome, error) {
	reports := make([]domain.DiscrepancyReport, 0, len(domain.Categories()))
	totalMissing := 0

	for _, category := range domain.Categories() {
		names, err := s.source.Fetch(ctx, category)
		if err != nil {
			// The spreadsheet is not load-bearing for the run: a fetch
			// failure degrades to "nothing to check" for this category.
			log.Printf("[CHECK] run=%s whitelist fetch failed for %s, stopping pass: %v", runID, category.Name, err)
			metrics.WhitelistFetchFailures.WithLabelValues(category.Name).Inc()
			return Outcome{
				Status:  StatusWarning,
				Message: fmt.Sprintf("whitelist unavailable for %s", category.Name),
				Reports: reports,
			}, nil
		}
		if len(names) == 0 {
			log.Printf("[CHECK] run=%s whitelist for %s is empty, stopping pass", runID, category.Name)
			return Outcome{
				Status:  StatusWarning,
				Message: fmt.Sprintf("no whitelist entries found for %s", category.Name),
				Reports: reports,
			}, nil
		}
		log.Printf("[CHECK] run=%s checking %d %s name(s) across %d platform(s)",
			runID, len(names), category.Name, len(domain.Platforms()))

		plan, err := s.planner.Plan(category, names)
		if err != nil {
			return Outcome{Status: StatusError, Reports: reports},
				fmt.Errorf("plan %s check: %w", category.Name, err)
		}

		results, err := s.store.Execute(ctx, plan, s.resultsTable)
		if err != nil {
			log.Printf("[CHECK] run=%s query failed for %s: %v", runID, category.Name, err)
			return Outcome{Status: StatusError, Reports: reports}, err
		}

		report := detect.Report(category, results)
		reports = append(reports, report)
		totalMissing += len(report.Missing)
		metrics.MissingNames.WithLabelValues(category.Name).Set(float64(len(report.Missing)))

		if report.Empty() {
			log.Printf("[CHECK] run=%s no missing %s names detected", runID, category.Name)
			continue
		}

		log.Printf("[CHECK] run=%s found %d missing %s name(s)", runID, len(report.Missing), category.Name)

		if s.alerts == nil {
			continue
		}
		if err := s.alerts.Notify(ctx, category, report.Missing); err != nil {
			// The finding stands regardless of delivery.
			log.Printf("[ALERT] run=%s delivery failed for %s: %v", runID, category.Name, err)
			metrics.AlertFailures.Inc()
		}
	}

	message := "no missing names were found"
	if totalMissing > 0 {
		message = fmt.Sprintf("%d expected name(s) were never observed", totalMissing)
	}
	return Outcome{Status: StatusSuccess, Message: message, Reports: reports}, nil
}
