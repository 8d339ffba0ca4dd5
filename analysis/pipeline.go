package analysis

import (
	"log/slog"

	"hermannm.dev/datadash/normalize"
	"hermannm.dev/datadash/table"
	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

// Everything needed to turn one source table into a dashboard. Defined once at startup and never
// modified.
type Dataset struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Source string `json:"source"`

	Normalization normalize.Rules `json:"-"`

	Dimensions []Dimension   `json:"dimensions"`
	Metrics    []Aggregation `json:"metrics"`
	Charts     []Aggregation `json:"charts"`
}

// A dataset bound to its loaded, normalized table, with filter options derived once up front.
// Safe for concurrent use, since nothing is modified after creation.
type Pipeline struct {
	dataset    Dataset
	normalized *table.Table
	table      *table.Table
	options    Domains
}

type Dashboard struct {
	Title       string   `json:"title"`
	TotalRows   int      `json:"totalRows"`
	MatchedRows int      `json:"matchedRows"`
	Metrics     []Result `json:"metrics"`
	Charts      []Result `json:"charts"`
}

func NewPipeline(dataset Dataset, raw *table.Table) (*Pipeline, error) {
	normalized, err := normalize.Normalize(raw, dataset.Normalization)
	if err != nil {
		return nil, wrap.Errorf(err, "failed to normalize dataset '%s'", dataset.ID)
	}

	derived, err := DeriveColumns(normalized, dataset.Dimensions)
	if err != nil {
		return nil, wrap.Errorf(err, "failed to derive filter columns for dataset '%s'", dataset.ID)
	}

	options, err := DeriveOptions(derived, dataset.Dimensions)
	if err != nil {
		return nil, wrap.Errorf(err, "failed to derive filter options for dataset '%s'", dataset.ID)
	}

	return &Pipeline{
		dataset:    dataset,
		normalized: normalized,
		table:      derived,
		options:    options,
	}, nil
}

func (pipeline *Pipeline) Dataset() Dataset {
	return pipeline.dataset
}

func (pipeline *Pipeline) Table() *table.Table {
	return pipeline.table
}

// The source table after normalization, without the columns derived for filtering.
func (pipeline *Pipeline) NormalizedTable() *table.Table {
	return pipeline.normalized
}

func (pipeline *Pipeline) Options() Domains {
	return pipeline.options
}

// Filters the table by the selection and computes every metric and chart of the dataset over the
// result. An aggregation that fails is reported as a failed result, without affecting the others.
func (pipeline *Pipeline) Render(selection Selection) (Dashboard, error) {
	view, err := ApplyFilters(pipeline.table, pipeline.dataset.Dimensions, selection)
	if err != nil {
		return Dashboard{}, wrap.Error(err, "failed to apply filters")
	}

	log.Debug(
		"applied filters",
		slog.String("dataset", pipeline.dataset.ID),
		slog.Int("matchedRows", view.Len()),
		slog.Int("totalRows", pipeline.table.RowCount()),
	)

	return Dashboard{
		Title:       pipeline.dataset.Title,
		TotalRows:   pipeline.table.RowCount(),
		MatchedRows: view.Len(),
		Metrics:     pipeline.aggregateAll(view, pipeline.dataset.Metrics),
		Charts:      pipeline.aggregateAll(view, pipeline.dataset.Charts),
	}, nil
}

func (pipeline *Pipeline) aggregateAll(view table.View, aggregations []Aggregation) []Result {
	results := make([]Result, len(aggregations))

	for i, aggregation := range aggregations {
		result, err := Aggregate(view, aggregation)
		if err != nil {
			log.ErrorCause(
				err,
				"aggregation failed",
				slog.String("dataset", pipeline.dataset.ID),
				slog.String("aggregation", aggregation.Name),
			)

			result = Result{
				Name:    aggregation.Name,
				Title:   aggregation.Title,
				Kind:    aggregation.Kind,
				Status:  StatusFailed,
				Message: err.Error(),
			}
		}
		results[i] = result
	}

	return results
}
