package check

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cm-analytics/eventcheck/internal/domain"
)

func doRequest(t *testing.T, service *Service, method string) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	req := httptest.NewRequest(method, "/check", nil)
	rec := httptest.NewRecorder()
	NewHTTPHandler(service).ServeHTTP(rec, req)

	var resp Response
	if rec.Code != http.StatusMethodNotAllowed {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response is not valid JSON: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, resp
}

func TestHandler_SuccessWithDiscrepancy(t *testing.T) {
	source := &fakeSource{lists: map[string][]string{
		"Events":  {"app_open"},
		"Screens": {"home_screen"},
	}}
	store := &fakeStore{counts: func(_ domain.Category, name string, platform domain.Platform) int64 {
		if name == "app_open" && platform == domain.PlatformAndroid {
			return 0
		}
		return 3
	}}

	rec, resp := doRequest(t, newTestService(source, store, nil), http.MethodPost)

	if rec.Code != http.StatusOK {
		t.Fatalf("a discrepancy is still a successful check: expected 200, got %d", rec.Code)
	}
	if resp.Status != StatusSuccess {
		t.Fatalf("expected success status, got %s", resp.Status)
	}
	if len(resp.MissingEvents) != 1 || resp.MissingEvents[0].Name != "app_open" {
		t.Fatalf("expected app_open in missing_events, got %v", resp.MissingEvents)
	}
	if resp.MissingEvents[0].Platform != domain.PlatformAndroid {
		t.Fatalf("expected the ANDROID cell, got %s", resp.MissingEvents[0].Platform)
	}
	if len(resp.MissingScreens) != 0 {
		t.Fatalf("expected no missing screens, got %v", resp.MissingScreens)
	}
	if resp.RunID == "" {
		t.Fatalf("expected a run id in the response")
	}
}

func TestHandler_EmptyWhitelistIs404(t *testing.T) {
	source := &fakeSource{lists: map[string][]string{}}
	store := &fakeStore{counts: func(domain.Category, string, domain.Platform) int64 { return 1 }}

	rec, resp := doRequest(t, newTestService(source, store, nil), http.MethodGet)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for the no-data warning, got %d", rec.Code)
	}
	if resp.Status != StatusWarning {
		t.Fatalf("expected warning status, got %s", resp.Status)
	}
	if len(store.executed) != 0 {
		t.Fatalf("expected no query execution, got %d", len(store.executed))
	}
}

func TestHandler_QueryFailureIs500(t *testing.T) {
	source := &fakeSource{lists: map[string][]string{
		"Events":  {"app_open"},
		"Screens": {"home_screen"},
	}}
	store := &fakeStore{
		counts: func(domain.Category, string, domain.Platform) int64 { return 1 },
		err:    domain.NewQueryError(domain.FailureUnavailable, domain.Events, errors.New("503")),
	}

	rec, resp := doRequest(t, newTestService(source, store, nil), http.MethodPost)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for a warehouse failure, got %d", rec.Code)
	}
	if resp.Status != StatusError {
		t.Fatalf("expected error status, got %s", resp.Status)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	source := &fakeSource{lists: map[string][]string{}}
	store := &fakeStore{counts: func(domain.Category, string, domain.Platform) int64 { return 1 }}

	rec, _ := doRequest(t, newTestService(source, store, nil), http.MethodDelete)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
