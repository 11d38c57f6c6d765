package queryplan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cm-analytics/eventcheck/internal/domain"
)

// ErrEmptyWhitelist is returned when Plan is called without any expected
// names. Callers are expected to short-circuit before planning; this guards
// against generating a whitelist CTE with no rows.
var ErrEmptyWhitelist = errors.New("whitelist is empty")

// Plan is an executable query specification: the rendered SQL plus the
// ordered positional parameters it binds. Whitelist names are always bound as
// parameters, never interpolated, so quotes and backslashes in a name cannot
// break or alter the query.
type Plan struct {
	Category domain.Category
	SQL      string
	Params   []string
}

// ExpectedRows is the row cardinality the planned query must produce:
// one row per (name x platform) cell, duplicates included.
func (p Plan) ExpectedRows() int {
	return len(p.Params)
}

// Planner constructs one combined check query per category. It is pure
// construction logic; execution belongs to the warehouse store.
type Planner struct {
	dialect Dialect
	source  string
}

// NewPlanner creates a planner that reads from the given source table using
// the given SQL dialect.
func NewPlanner(dialect Dialect, sourceTable string) *Planner {
	return &Planner{dialect: dialect, source: sourceTable}
}

// Plan builds the check query for one category:
//
//  1. a base CTE extracting (name, platform) from the raw event log,
//  2. a whitelist CTE materializing the (name x platform) cross product as
//     parameterized literal rows, each tagged with its ordinal so duplicate
//     whitelist entries survive aggregation,
//  3. a LEFT JOIN driven from the whitelist side with a COUNT aggregate.
//
// The result set contains exactly len(names) * 2 rows in whitelist order;
// unmatched cells carry a count of zero.
func (p *Planner) Plan(category domain.Category, names []string) (Plan, error) {
	if len(names) == 0 {
		return Plan{}, ErrEmptyWhitelist
	}

	base := p.dialect.ExtractionClause(category, p.source)

	rows := make([]string, 0, len(names)*len(domain.Platforms()))
	params := make([]string, 0, cap(rows))
	for _, name := range names {
		for _, platform := range domain.Platforms() {
			rows = append(rows, fmt.Sprintf(
				"SELECT %s AS name, '%s' AS platform, %d AS ord",
				p.dialect.Placeholder(len(params)+1), platform, len(params),
			))
			params = append(params, name)
		}
	}

	sql := fmt.Sprintf(
		"WITH base AS (\n%s\n), whitelist AS (\n%s\n)\n"+
			"SELECT whitelist.name, whitelist.platform, COUNT(base.name) AS occurrences\n"+
			"FROM whitelist\n"+
			"LEFT JOIN base ON base.name = whitelist.name AND base.platform = whitelist.platform\n"+
			"GROUP BY whitelist.ord, whitelist.name, whitelist.platform\n"+
			"ORDER BY whitelist.ord",
		base,
		strings.Join(rows, " UNION ALL\n"),
	)

	return Plan{Category: category, SQL: sql, Params: params}, nil
}
