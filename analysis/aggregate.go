package analysis

import (
	"errors"
	"fmt"

	"hermannm.dev/datadash/table"
	"hermannm.dev/wrap"
)

// Describes one metric or chart of a dataset. Which fields are used depends on Kind:
//   - AggregationScalarSum, AggregationScalarMean: Column
//   - AggregationGroupSum, AggregationGroupMean, AggregationGroupQuartiles: GroupBy, Column
//   - AggregationGroupCount, AggregationCountOverTime: GroupBy
//   - AggregationColumnSum: Columns
//   - AggregationPivotSum: GroupBy (rows), SplitBy (series), Column, TimeSeries
//   - AggregationRowNormalizedCrosstab: GroupBy (rows), SplitBy (columns)
//   - AggregationDistribution: Column, Bins, optionally GroupBy for one histogram per group
//   - AggregationDurationDerived: Start, End, Bins
//   - AggregationScatter: Column (x), Y, optionally GroupBy
type Aggregation struct {
	Name  string          `json:"name"`
	Title string          `json:"title"`
	Kind  AggregationKind `json:"kind"`
	Chart ChartType       `json:"chart,omitempty"`

	Column  string          `json:"column,omitempty"`
	Columns []LabeledColumn `json:"columns,omitempty"`
	GroupBy string          `json:"groupBy,omitempty"`
	SplitBy string          `json:"splitBy,omitempty"`
	Y       string          `json:"y,omitempty"`
	Start   string          `json:"start,omitempty"`
	End     string          `json:"end,omitempty"`
	Bins    int             `json:"bins,omitempty"`

	// Restricts the view before aggregating, e.g. to one parameter of a long-format table.
	Where []Condition `json:"where,omitempty"`

	// For AggregationPivotSum: GroupBy is a time bucket, so the pivot collapses to a scalar sum
	// when only one bucket is in view.
	TimeSeries bool `json:"timeSeries,omitempty"`
	// Format for the label of a series collapsed to one bucket, with the bucket as its argument.
	SingleBucketLabel string `json:"singleBucketLabel,omitempty"`
	// Replaces the default placeholder message when there is nothing to show.
	EmptyMessage string `json:"emptyMessage,omitempty"`

	Decimals    int    `json:"decimals,omitempty"`
	XLabel      string `json:"xLabel,omitempty"`
	YLabel      string `json:"yLabel,omitempty"`
	LegendLabel string `json:"legendLabel,omitempty"`
}

type LabeledColumn struct {
	Column string `json:"column"`
	Label  string `json:"label"`
}

type Result struct {
	Name   string          `json:"name"`
	Title  string          `json:"title"`
	Kind   AggregationKind `json:"kind"`
	Status ResultStatus    `json:"status"`

	Scalar      *float64 `json:"scalar,omitempty"`
	Formatted   string   `json:"formatted,omitempty"`
	ScalarLabel string   `json:"scalarLabel,omitempty"`

	Chart   *ChartRequest `json:"chart,omitempty"`
	Message string        `json:"message,omitempty"`

	// Rows left out because a value the aggregation needed was missing.
	DroppedRows int `json:"droppedRows"`
}

// What the rendering adapter needs to draw a chart. Only the data field matching the aggregation
// kind is set.
type ChartRequest struct {
	Type        ChartType `json:"type"`
	XLabel      string    `json:"xLabel,omitempty"`
	YLabel      string    `json:"yLabel,omitempty"`
	LegendLabel string    `json:"legendLabel,omitempty"`

	Points     []Point        `json:"points,omitempty"`
	Triples    []Triple       `json:"triples,omitempty"`
	Pivot      *Pivot         `json:"pivot,omitempty"`
	Histograms []Histogram    `json:"histograms,omitempty"`
	Boxes      []Box          `json:"boxes,omitempty"`
	Scatter    []ScatterPoint `json:"scatter,omitempty"`
}

type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// One cell of a long-format table.
type Triple struct {
	Key   string  `json:"key"`
	Group string  `json:"group"`
	Value float64 `json:"value"`
}

type Pivot struct {
	RowKeys    []string    `json:"rowKeys"`
	ColumnKeys []string    `json:"columnKeys"`
	Values     [][]float64 `json:"values"`
}

type Histogram struct {
	Group string `json:"group,omitempty"`
	Bins  []Bin  `json:"bins"`
}

type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

type Box struct {
	Group  string  `json:"group"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

type ScatterPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Group string  `json:"group,omitempty"`
}

const (
	defaultHistogramBins = 20

	messageNoData     = "No data for the selected filters."
	messageUndefined  = "Undefined for the selected filters."
	messageSelectMore = "Select more values to see a trend."
)

// Computes the given aggregation over the view. Returns an error only if the aggregate does not
// fit the table, e.g. by naming an unknown or non-numeric column. Empty input never causes an
// error, but a placeholder result.
func Aggregate(view table.View, aggregation Aggregation) (Result, error) {
	result := Result{Name: aggregation.Name, Title: aggregation.Title, Kind: aggregation.Kind}

	if len(aggregation.Where) != 0 {
		conditions, err := bindConditions(view.Table(), aggregation.Where)
		if err != nil {
			return Result{}, err
		}
		view = view.Where(func(row int) bool {
			return matchesAll(conditions, row)
		})
	}

	columns := columnLookup{source: view.Table()}

	var aggregator func(*Result, table.View, Aggregation, columnLookup) error
	switch aggregation.Kind {
	case AggregationScalarSum:
		aggregator = scalarSum
	case AggregationScalarMean:
		aggregator = scalarMean
	case AggregationRowCount:
		aggregator = rowCount
	case AggregationGroupSum, AggregationGroupMean:
		aggregator = groupSumOrMean
	case AggregationGroupCount:
		aggregator = groupCount
	case AggregationColumnSum:
		aggregator = columnSum
	case AggregationCountOverTime:
		aggregator = countOverTime
	case AggregationPivotSum:
		aggregator = pivotSum
	case AggregationRowNormalizedCrosstab:
		aggregator = rowNormalizedCrosstab
	case AggregationDistribution:
		aggregator = distribution
	case AggregationDurationDerived:
		aggregator = durationDerived
	case AggregationGroupQuartiles:
		aggregator = groupQuartiles
	case AggregationScatter:
		aggregator = scatter
	default:
		return Result{}, fmt.Errorf("unsupported aggregation kind %v", aggregation.Kind)
	}

	if err := aggregator(&result, view, aggregation, columns); err != nil {
		return Result{}, wrap.Errorf(
			err,
			"%v aggregation '%s' failed",
			aggregation.Kind,
			aggregation.Name,
		)
	}
	return result, nil
}

func (result *Result) setPlaceholder(aggregation Aggregation, defaultMessage string) {
	result.Status = StatusPlaceholder
	if aggregation.EmptyMessage != "" {
		result.Message = aggregation.EmptyMessage
	} else {
		result.Message = defaultMessage
	}
}

func (result *Result) setScalar(value float64, decimals int) {
	result.Status = StatusScalar
	result.Scalar = &value
	result.Formatted = FormatNumber(value, decimals)
}

func (result *Result) setChart(aggregation Aggregation, defaultType ChartType) *ChartRequest {
	chartType := aggregation.Chart
	if !chartType.IsValid() {
		chartType = defaultType
	}

	result.Status = StatusReady
	result.Chart = &ChartRequest{
		Type:        chartType,
		XLabel:      aggregation.XLabel,
		YLabel:      aggregation.YLabel,
		LegendLabel: aggregation.LegendLabel,
	}
	return result.Chart
}

type columnLookup struct {
	source *table.Table
}

func (lookup columnLookup) column(name string) (*table.Column, error) {
	if name == "" {
		return nil, errors.New("missing column name")
	}
	column, ok := lookup.source.Column(name)
	if !ok {
		return nil, fmt.Errorf("unknown column '%s'", name)
	}
	return column, nil
}

func (lookup columnLookup) numeric(name string) (*table.Column, error) {
	column, err := lookup.column(name)
	if err != nil {
		return nil, err
	}
	if !column.DataType.IsNumeric() {
		return nil, fmt.Errorf(
			"column '%s' is %v, expected a numeric column",
			name,
			column.DataType,
		)
	}
	return column, nil
}

func (lookup columnLookup) date(name string) (*table.Column, error) {
	column, err := lookup.column(name)
	if err != nil {
		return nil, err
	}
	if column.DataType != table.DataTypeDate {
		return nil, fmt.Errorf("column '%s' is %v, expected a date column", name, column.DataType)
	}
	return column, nil
}
