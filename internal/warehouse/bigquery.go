package warehouse

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/cm-analytics/eventcheck/internal/domain"
	"github.com/cm-analytics/eventcheck/internal/queryplan"
)

// BigQueryStore executes check queries as BigQuery jobs. The snapshot is
// written by the job itself: the destination table with a truncating write
// disposition records the latest pass only.
type BigQueryStore struct {
	client *bigquery.Client
}

// NewBigQueryStore connects to BigQuery with a service-account credentials
// file. The caller owns the store's lifecycle and should Close it after the
// invocation.
func NewBigQueryStore(ctx context.Context, projectID, credentialsFile string) (*BigQueryStore, error) {
	opts := []option.ClientOption{}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := bigquery.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create bigquery client: %w", err)
	}
	return &BigQueryStore{client: client}, nil
}

// Close releases the underlying client.
func (s *BigQueryStore) Close() error {
	return s.client.Close()
}

// Execute runs the plan with its names bound as positional query parameters
// and streams the aggregated rows back in job output order.
func (s *BigQueryStore) Execute(ctx context.Context, plan queryplan.Plan, destination string) ([]domain.CheckResult, error) {
	dst, err := s.tableRef(destination)
	if err != nil {
		return nil, domain.NewQueryError(domain.FailureBadRequest, plan.Category, err)
	}

	query := s.client.Query(plan.SQL)
	query.QueryConfig = queryConfig(plan, dst)

	it, err := query.Read(ctx)
	if err != nil {
		return nil, classifyBigQuery(plan.Category, err)
	}

	results := make([]domain.CheckResult, 0, plan.ExpectedRows())
	for {
		var row struct {
			Name        string `bigquery:"name"`
			Platform    string `bigquery:"platform"`
			Occurrences int64  `bigquery:"occurrences"`
		}
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classifyBigQuery(plan.Category, err)
		}
		results = append(results, domain.CheckResult{
			Name:     row.Name,
			Platform: domain.Platform(row.Platform),
			Count:    row.Occurrences,
		})
	}
	return results, nil
}

// queryConfig builds the job configuration for a plan: one positional query
// parameter per whitelist cell and a truncating write into dst, so the
// destination holds the latest pass only.
func queryConfig(plan queryplan.Plan, dst *bigquery.Table) bigquery.QueryConfig {
	cfg := bigquery.QueryConfig{
		Q:                 plan.SQL,
		Dst:               dst,
		WriteDisposition:  bigquery.WriteTruncate,
		CreateDisposition: bigquery.CreateIfNeeded,
	}
	cfg.Parameters = make([]bigquery.QueryParameter, len(plan.Params))
	for i, param := range plan.Params {
		cfg.Parameters[i] = bigquery.QueryParameter{Value: param}
	}
	return cfg
}

// tableRef resolves a "project.dataset.table" or "dataset.table" destination
// against the client's project.
func (s *BigQueryStore) tableRef(destination string) (*bigquery.Table, error) {
	parts := strings.Split(destination, ".")
	switch len(parts) {
	case 3:
		return s.client.DatasetInProject(parts[0], parts[1]).Table(parts[2]), nil
	case 2:
		return s.client.Dataset(parts[0]).Table(parts[1]), nil
	default:
		return nil, fmt.Errorf("destination %q is not a dataset.table path", destination)
	}
}
