package whitelist

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/cm-analytics/eventcheck/internal/domain"
)

// SheetsSource reads whitelist columns from the first sheet of a Google
// spreadsheet using a service-account credentials file.
type SheetsSource struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewSheetsSource builds a source for the spreadsheet behind the given URL.
func NewSheetsSource(ctx context.Context, credentialsFile, spreadsheetURL string) (*SheetsSource, error) {
	id, err := SpreadsheetIDFromURL(spreadsheetURL)
	if err != nil {
		return nil, err
	}

	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsSource{service: service, spreadsheetID: id}, nil
}

// Fetch reads the category's whitelist column top to bottom.
func (s *SheetsSource) Fetch(ctx context.Context, category domain.Category) ([]string, error) {
	letter, err := columnLetter(category.WhitelistColumn)
	if err != nil {
		return nil, err
	}

	resp, err := s.service.Spreadsheets.Values.
		Get(s.spreadsheetID, fmt.Sprintf("%s:%s", letter, letter)).
		MajorDimension("COLUMNS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read whitelist column %s for %s: %w", letter, category.Name, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}

	cells := make([]string, 0, len(resp.Values[0]))
	for _, value := range resp.Values[0] {
		cells = append(cells, fmt.Sprint(value))
	}
	return compactColumn(cells), nil
}

// SpreadsheetIDFromURL extracts the document ID from a standard
// docs.google.com/spreadsheets/d/<id>/... URL.
func SpreadsheetIDFromURL(url string) (string, error) {
	const marker = "/spreadsheets/d/"
	idx := strings.Index(url, marker)
	if idx == -1 {
		return "", fmt.Errorf("not a spreadsheet URL: %q", url)
	}
	rest := strings.TrimPrefix(url[idx:], marker)
	if end := strings.IndexAny(rest, "/?#"); end != -1 {
		rest = rest[:end]
	}
	if rest == "" {
		return "", fmt.Errorf("spreadsheet URL %q has no document id", url)
	}
	return rest, nil
}
