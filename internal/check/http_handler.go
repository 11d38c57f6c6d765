package check

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/cm-analytics/eventcheck/internal/domain"
	"github.com/cm-analytics/eventcheck/internal/runctx"
)

// Handler exposes the check as an HTTP endpoint.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the service with a trigger endpoint. No request body
// is required; GET and POST are both accepted so schedulers and humans can
// trigger a pass the same way.
func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service}
}

// Response is the invocation's JSON envelope.
type Response struct {
	Status         string               `json:"status"`
	Message        string               `json:"message"`
	RunID          string               `json:"run_id"`
	MissingEvents  []domain.CheckResult `json:"missing_events,omitempty"`
	MissingScreens []domain.CheckResult `json:"missing_screens,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	runID := uuid.New()
	ctx := runctx.WithRunID(r.Context(), runID)

	outcome, err := h.service.Run(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{
			Status:  StatusError,
			Message: fmt.Sprintf("an unexpected error occurred: %v", err),
			RunID:   runID.String(),
		})
		return
	}

	resp := Response{
		Status:  outcome.Status,
		Message: outcome.Message,
		RunID:   runID.String(),
	}
	for _, report := range outcome.Reports {
		switch report.Category.Name {
		case domain.Events.Name:
			resp.MissingEvents = report.Missing
		case domain.Screens.Name:
			resp.MissingScreens = report.Missing
		}
	}

	status := http.StatusOK
	if outcome.Status == StatusWarning {
		// Missing configuration rather than a data-quality finding.
		status = http.StatusNotFound
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
