package detect

import (
	"testing"

	"github.com/cm-analytics/eventcheck/internal/domain"
)

func TestMissing_FiltersZeroCounts(t *testing.T) {
	results := []domain.CheckResult{
		{Name: "app_open", Platform: domain.PlatformIOS, Count: 1},
		{Name: "app_open", Platform: domain.PlatformAndroid, Count: 0},
		{Name: "booking_started", Platform: domain.PlatformIOS, Count: 12},
		{Name: "booking_started", Platform: domain.PlatformAndroid, Count: 7},
	}

	missing := Missing(results)
	if len(missing) != 1 {
		t.Fatalf("expected one missing cell, got %d", len(missing))
	}
	if missing[0].Name != "app_open" || missing[0].Platform != domain.PlatformAndroid {
		t.Fatalf("expected (app_open, ANDROID), got %s", missing[0].Cell())
	}
}

func TestMissing_PreservesInputOrder(t *testing.T) {
	results := []domain.CheckResult{
		{Name: "c", Platform: domain.PlatformIOS, Count: 0},
		{Name: "a", Platform: domain.PlatformAndroid, Count: 3},
		{Name: "b", Platform: domain.PlatformIOS, Count: 0},
		{Name: "a", Platform: domain.PlatformIOS, Count: 0},
	}

	missing := Missing(results)
	want := []string{"c", "b", "a"}
	if len(missing) != len(want) {
		t.Fatalf("expected %d missing cells, got %d", len(want), len(missing))
	}
	for i, name := range want {
		if missing[i].Name != name {
			t.Fatalf("position %d: expected %q, got %q (filter must be stable)", i, name, missing[i].Name)
		}
	}
}

func TestMissing_AllZero(t *testing.T) {
	results := []domain.CheckResult{
		{Name: "a", Platform: domain.PlatformIOS, Count: 0},
		{Name: "a", Platform: domain.PlatformAndroid, Count: 0},
	}

	missing := Missing(results)
	if len(missing) != len(results) {
		t.Fatalf("all-zero input must come back whole, got %d of %d", len(missing), len(results))
	}
}

func TestMissing_AllPositive(t *testing.T) {
	results := []domain.CheckResult{
		{Name: "a", Platform: domain.PlatformIOS, Count: 4},
		{Name: "a", Platform: domain.PlatformAndroid, Count: 9},
	}

	if missing := Missing(results); len(missing) != 0 {
		t.Fatalf("all-positive input must yield nothing, got %d", len(missing))
	}
}

func TestMissing_EmptyInput(t *testing.T) {
	if missing := Missing(nil); len(missing) != 0 {
		t.Fatalf("expected no missing cells for empty input, got %d", len(missing))
	}
}

func TestReport(t *testing.T) {
	report := Report(domain.Screens, []domain.CheckResult{
		{Name: "home_screen", Platform: domain.PlatformIOS, Count: 2},
		{Name: "home_screen", Platform: domain.PlatformAndroid, Count: 0},
	})

	if report.Category.Name != "Screens" {
		t.Fatalf("expected Screens category, got %s", report.Category.Name)
	}
	if report.Empty() {
		t.Fatalf("expected a non-empty report")
	}
	if report.Missing[0].Cell() != "(home_screen, ANDROID)" {
		t.Fatalf("unexpected missing cell: %s", report.Missing[0].Cell())
	}
}
