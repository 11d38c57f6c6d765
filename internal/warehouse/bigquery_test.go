package warehouse

import (
	"reflect"
	"strings"
	"testing"

	"cloud.google.com/go/bigquery"

	"github.com/cm-analytics/eventcheck/internal/domain"
	"github.com/cm-analytics/eventcheck/internal/queryplan"
)

func TestQueryConfig_TruncatesDestination(t *testing.T) {
	planner := queryplan.NewPlanner(queryplan.BigQuery{}, "proj.analytics.events")
	plan, err := planner.Plan(domain.Events, []string{"app_open", "booking_started"})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	dst := &bigquery.Table{ProjectID: "proj", DatasetID: "quality", TableID: "check_results"}
	cfg := queryConfig(plan, dst)

	if cfg.WriteDisposition != bigquery.WriteTruncate {
		t.Errorf("write disposition = %q, want %q", cfg.WriteDisposition, bigquery.WriteTruncate)
	}
	if cfg.CreateDisposition != bigquery.CreateIfNeeded {
		t.Errorf("create disposition = %q, want %q", cfg.CreateDisposition, bigquery.CreateIfNeeded)
	}
	if cfg.Dst != dst {
		t.Errorf("destination = %+v, want %+v", cfg.Dst, dst)
	}
	if cfg.Q != plan.SQL {
		t.Errorf("query text does not match the plan")
	}
}

func TestQueryConfig_OneParameterPerCell(t *testing.T) {
	planner := queryplan.NewPlanner(queryplan.BigQuery{}, "proj.analytics.events")
	plan, err := planner.Plan(domain.Screens, []string{"home", "search", "checkout"})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	cfg := queryConfig(plan, nil)
	if len(cfg.Parameters) != plan.ExpectedRows() {
		t.Fatalf("got %d parameters, want %d", len(cfg.Parameters), plan.ExpectedRows())
	}
	for i, param := range cfg.Parameters {
		if param.Name != "" {
			t.Errorf("parameter %d is named %q, want positional", i, param.Name)
		}
		if param.Value != plan.Params[i] {
			t.Errorf("parameter %d = %v, want %q", i, param.Value, plan.Params[i])
		}
	}
	// Names reach the job as bound values only.
	if strings.Contains(cfg.Q, "checkout") {
		t.Errorf("whitelist name leaked into query text")
	}
}

func TestQueryConfig_IdenticalInputsIdenticalJob(t *testing.T) {
	planner := queryplan.NewPlanner(queryplan.BigQuery{}, "proj.analytics.events")
	plan, err := planner.Plan(domain.Events, []string{"app_open"})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	dst := &bigquery.Table{ProjectID: "proj", DatasetID: "quality", TableID: "check_results"}
	first := queryConfig(plan, dst)
	second := queryConfig(plan, dst)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-running produced a different job configuration")
	}
}
