package whitelist

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cm-analytics/eventcheck/internal/domain"
)

// WorkbookSource reads whitelist columns from a local .xlsx file with the
// same column contract as the spreadsheet: one column per category on the
// first sheet. Intended for development and offline runs.
type WorkbookSource struct {
	path string
}

// NewWorkbookSource creates a source backed by the workbook at path. The file
// is opened per fetch so edits between runs are always picked up.
func NewWorkbookSource(path string) *WorkbookSource {
	return &WorkbookSource{path: path}
}

// Fetch reads the category's whitelist column from the first sheet.
func (w *WorkbookSource) Fetch(ctx context.Context, category domain.Category) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("open whitelist workbook: %w", err)
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("whitelist workbook %s has no sheets", w.path)
	}

	cols, err := file.GetCols(sheet)
	if err != nil {
		return nil, fmt.Errorf("read whitelist workbook columns: %w", err)
	}
	if category.WhitelistColumn > len(cols) {
		return nil, nil
	}
	return compactColumn(cols[category.WhitelistColumn-1]), nil
}
