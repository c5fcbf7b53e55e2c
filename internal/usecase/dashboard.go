package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"TenderBoard/internal/domain"
	"TenderBoard/internal/filter"
	"TenderBoard/internal/metrics"
	"TenderBoard/internal/ports"
)

// DashboardDeps wires the driven adapters into the query pipeline.
type DashboardDeps struct {
	Source ports.DatasetSource
	TopN   int
	Logger *slog.Logger
}

// Dashboard runs the recomputation pass behind every user interaction:
// cached load -> filter -> aggregate -> chart data. Each stage is a pure
// function of its input; the loaded table is never mutated.
type Dashboard struct {
	source ports.DatasetSource
	topN   int
	logger *slog.Logger
}

// View is everything the presentation layer needs for one interaction.
type View struct {
	Records []domain.Record
	Summary metrics.Summary

	NoticesOverTime metrics.Chart
	TopWinners      metrics.Chart
	TopBuyers       metrics.Chart

	// Filters echoes the active (normalized) filter values.
	Filters filter.Input

	// MinDate and MaxDate are the full dataset's date bounds for the
	// range-picker defaults, independent of the filtered subset.
	MinDate time.Time
	MaxDate time.Time
}

// NewDashboard constructs the query pipeline.
func NewDashboard(deps DashboardDeps) *Dashboard {
	topN := deps.TopN
	if topN <= 0 {
		topN = 10
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dashboard{source: deps.Source, topN: topN, logger: logger}
}

// Query applies the supplied filters over the cached table and aggregates
// the result. An empty filtered set is not an error: metrics and charts come
// back in their defined zero state.
func (d *Dashboard) Query(ctx context.Context, in filter.Input) (*View, error) {
	table, err := d.source.GetOrLoad(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	in = in.Normalize(table.MinDate, table.MaxDate)
	filtered := filter.Apply(table.Records, in)

	d.logger.Debug("filters applied",
		"total", len(table.Records),
		"matched", len(filtered),
		"date_active", in.DateActive())

	return &View{
		Records:         filtered,
		Summary:         metrics.Compute(filtered),
		NoticesOverTime: metrics.NoticesOverTime(filtered),
		TopWinners:      metrics.TopWinners(filtered, d.topN),
		TopBuyers:       metrics.TopBuyers(filtered, d.topN),
		Filters:         in,
		MinDate:         table.MinDate,
		MaxDate:         table.MaxDate,
	}, nil
}
