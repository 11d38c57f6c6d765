package queryplan

import (
	"fmt"
	"strings"

	"github.com/cm-analytics/eventcheck/internal/domain"
)

// Dialect abstracts the SQL differences between the supported warehouses:
// parameter placeholder style and how the per-category attribute is extracted
// from the raw event table.
type Dialect interface {
	// Name identifies the dialect in config and logs.
	Name() string

	// Placeholder renders the 1-based nth positional parameter.
	Placeholder(n int) string

	// ExtractionClause renders the base CTE body yielding one
	// (name, platform) row per matching record in the source table.
	ExtractionClause(category domain.Category, source string) string
}

// BigQuery renders standard-SQL for the production event log, where screen
// names live in the UNNEST-able event_params record collection.
type BigQuery struct{}

func (BigQuery) Name() string { return "bigquery" }

func (BigQuery) Placeholder(int) string { return "?" }

func (BigQuery) ExtractionClause(category domain.Category, source string) string {
	if category.Screen == nil {
		return fmt.Sprintf(
			"SELECT %s AS name, platform\nFROM `%s`\nWHERE %s IS NOT NULL\n  AND platform IN (%s)",
			category.Attribute, source, category.Attribute, platformList(),
		)
	}
	return fmt.Sprintf(
		"SELECT param.value.string_value AS name, platform\nFROM `%s`, UNNEST(event_params) AS param\n"+
			"WHERE event_name = '%s'\n  AND param.key = '%s'\n  AND platform IN (%s)",
		source, category.Screen.EventName, category.Screen.ParamKey, platformList(),
	)
}

// Postgres renders the same semantics against the local development schema,
// where event_params is a jsonb column.
type Postgres struct{}

func (Postgres) Name() string { return "postgres" }

func (Postgres) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (Postgres) ExtractionClause(category domain.Category, source string) string {
	if category.Screen == nil {
		return fmt.Sprintf(
			"SELECT %s AS name, platform\nFROM %s\nWHERE %s IS NOT NULL\n  AND platform IN (%s)",
			category.Attribute, source, category.Attribute, platformList(),
		)
	}
	return fmt.Sprintf(
		"SELECT event_params->>'%s' AS name, platform\nFROM %s\n"+
			"WHERE event_name = '%s'\n  AND event_params->>'%s' IS NOT NULL\n  AND platform IN (%s)",
		category.Screen.ParamKey, source, category.Screen.EventName, category.Screen.ParamKey, platformList(),
	)
}

// platformList renders the fixed platform set as a SQL IN list. Platform
// values come from the domain enum, never from external data, so literal
// rendering is safe here.
func platformList() string {
	quoted := make([]string, 0, len(domain.Platforms()))
	for _, platform := range domain.Platforms() {
		quoted = append(quoted, fmt.Sprintf("'%s'", platform))
	}
	return strings.Join(quoted, ", ")
}

// DialectByName resolves a configured dialect name.
func DialectByName(name string) (Dialect, error) {
	switch name {
	case "bigquery":
		return BigQuery{}, nil
	case "postgres":
		return Postgres{}, nil
	default:
		return nil, fmt.Errorf("unknown warehouse dialect %q", name)
	}
}
