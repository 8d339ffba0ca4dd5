package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hermannm.dev/datadash/analysis"
	"hermannm.dev/datadash/table"
)

func aggregate(t *testing.T, view table.View, aggregation analysis.Aggregation) analysis.Result {
	t.Helper()

	result, err := analysis.Aggregate(view, aggregation)
	require.NoError(t, err)
	return result
}

func emptyView(derived *table.Table) table.View {
	return table.NewView(derived, []int{})
}

func TestGroupSumRanksDescending(t *testing.T) {
	genres, err := table.New(
		table.ParseColumn("genre", []string{"Action", "Sports", "Action"}),
		table.ParseColumn("global_sales", []string{"5", "3", "2"}),
	)
	require.NoError(t, err)

	result := aggregate(t, genres.All(), analysis.Aggregation{
		Name:    "genre_sales",
		Kind:    analysis.AggregationGroupSum,
		GroupBy: "genre",
		Column:  "global_sales",
	})

	require.Equal(t, analysis.StatusReady, result.Status)
	assert.Equal(t, analysis.ChartBar, result.Chart.Type)
	assert.Equal(t, []analysis.Point{
		{Label: "Action", Value: 7},
		{Label: "Sports", Value: 3},
	}, result.Chart.Points)
}

func TestGroupMeanSkipsMissingValues(t *testing.T) {
	games := newGamesTable(t)

	result := aggregate(t, games.All(), analysis.Aggregation{
		Kind:    analysis.AggregationGroupMean,
		GroupBy: "genre",
		Column:  "eu_sales",
	})

	require.Equal(t, analysis.StatusReady, result.Status)
	expected := []analysis.Point{
		{Label: "Sports", Value: 2},
		{Label: "Action", Value: 4.25 / 3},
		{Label: "Puzzle", Value: 0.5},
	}
	require.Len(t, result.Chart.Points, len(expected))
	for i, point := range result.Chart.Points {
		assert.Equal(t, expected[i].Label, point.Label)
		assert.InDelta(t, expected[i].Value, point.Value, 1e-9)
	}
	assert.Equal(t, 1, result.DroppedRows)
}

func TestScalarMetrics(t *testing.T) {
	games := newGamesTable(t)
	view := filter(t, games, gameDimensions, analysis.Selection{})

	sum := aggregate(t, view, analysis.Aggregation{
		Kind:     analysis.AggregationScalarSum,
		Column:   "global_sales",
		Decimals: 2,
	})
	require.Equal(t, analysis.StatusScalar, sum.Status)
	assert.InDelta(t, 10.75, *sum.Scalar, 1e-9)
	assert.Equal(t, "10.75", sum.Formatted)

	mean := aggregate(t, view, analysis.Aggregation{
		Kind:     analysis.AggregationScalarMean,
		Column:   "global_sales",
		Decimals: 2,
	})
	assert.InDelta(t, 2.15, *mean.Scalar, 1e-9)

	count := aggregate(t, view, analysis.Aggregation{Kind: analysis.AggregationRowCount})
	assert.Equal(t, 5.0, *count.Scalar)
}

func TestAggregationsOverEmptyViewArePlaceholders(t *testing.T) {
	games := newGamesTable(t)
	taxpayers := newTaxTable(t)

	testCases := []struct {
		derived     *table.Table
		aggregation analysis.Aggregation
	}{
		{games, analysis.Aggregation{Kind: analysis.AggregationScalarSum, Column: "global_sales"}},
		{games, analysis.Aggregation{Kind: analysis.AggregationScalarMean, Column: "global_sales"}},
		{games, analysis.Aggregation{
			Kind: analysis.AggregationGroupSum, GroupBy: "genre", Column: "global_sales",
		}},
		{games, analysis.Aggregation{
			Kind: analysis.AggregationGroupMean, GroupBy: "genre", Column: "global_sales",
		}},
		{games, analysis.Aggregation{Kind: analysis.AggregationGroupCount, GroupBy: "genre"}},
		{games, analysis.Aggregation{
			Kind:    analysis.AggregationColumnSum,
			Columns: []analysis.LabeledColumn{{Column: "na_sales", Label: "NA"}},
		}},
		{games, analysis.Aggregation{Kind: analysis.AggregationCountOverTime, GroupBy: "year"}},
		{games, analysis.Aggregation{
			Kind:    analysis.AggregationPivotSum,
			GroupBy: "year",
			SplitBy: "genre",
			Column:  "global_sales",
		}},
		{games, analysis.Aggregation{
			Kind:       analysis.AggregationPivotSum,
			GroupBy:    "year",
			SplitBy:    "genre",
			Column:     "global_sales",
			TimeSeries: true,
		}},
		{games, analysis.Aggregation{
			Kind: analysis.AggregationRowNormalizedCrosstab, GroupBy: "genre", SplitBy: "year",
		}},
		{games, analysis.Aggregation{
			Kind: analysis.AggregationDistribution, Column: "global_sales",
		}},
		{taxpayers, analysis.Aggregation{
			Kind: analysis.AggregationDurationDerived, Start: "registrets", End: "izslegts",
		}},
		{games, analysis.Aggregation{
			Kind: analysis.AggregationGroupQuartiles, GroupBy: "genre", Column: "global_sales",
		}},
		{games, analysis.Aggregation{
			Kind: analysis.AggregationScatter, Column: "na_sales", Y: "eu_sales",
		}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.aggregation.Kind.String(), func(t *testing.T) {
			result := aggregate(t, emptyView(testCase.derived), testCase.aggregation)

			assert.Equal(t, analysis.StatusPlaceholder, result.Status)
			assert.NotEmpty(t, result.Message)
			assert.Nil(t, result.Chart)
			assert.Nil(t, result.Scalar)
		})
	}
}

func TestRowCountOverEmptyViewIsZero(t *testing.T) {
	result := aggregate(
		t,
		emptyView(newGamesTable(t)),
		analysis.Aggregation{Kind: analysis.AggregationRowCount},
	)

	require.Equal(t, analysis.StatusScalar, result.Status)
	assert.Equal(t, 0.0, *result.Scalar)
	assert.Equal(t, "0", result.Formatted)
}

func TestCountOverTimeBranches(t *testing.T) {
	games := newGamesTable(t)
	countOverTime := analysis.Aggregation{
		Kind:              analysis.AggregationCountOverTime,
		GroupBy:           "year",
		SingleBucketLabel: "Games released in %s",
	}

	t.Run("series", func(t *testing.T) {
		view := filter(t, games, gameDimensions, analysis.Selection{})
		result := aggregate(t, view, countOverTime)

		require.Equal(t, analysis.StatusReady, result.Status)
		assert.Equal(t, analysis.ChartLine, result.Chart.Type)
		assert.Equal(t, []analysis.Point{
			{Label: "2006", Value: 2},
			{Label: "2007", Value: 2},
			{Label: "2008", Value: 1},
		}, result.Chart.Points)
	})

	t.Run("single year", func(t *testing.T) {
		view := filter(t, games, gameDimensions, analysis.Selection{"year": {"2006"}})
		result := aggregate(t, view, countOverTime)

		require.Equal(t, analysis.StatusScalar, result.Status)
		assert.Equal(t, float64(view.Len()), *result.Scalar)
		assert.Equal(t, "Games released in 2006", result.ScalarLabel)
	})

	t.Run("no years", func(t *testing.T) {
		view := filter(t, games, gameDimensions, analysis.Selection{"year": {"1970"}})
		result := aggregate(t, view, countOverTime)

		require.Equal(t, analysis.StatusPlaceholder, result.Status)
		assert.Contains(t, result.Message, "Select more")
	})
}

func TestCountOverTimeWithCondition(t *testing.T) {
	taxpayers := newTaxTable(t)
	view := filter(t, taxpayers, taxDimensions, analysis.Selection{})

	result := aggregate(t, view, analysis.Aggregation{
		Kind:    analysis.AggregationCountOverTime,
		GroupBy: "deregistration_year",
		Where:   []analysis.Condition{{Column: "aktivs", Equals: "inactive"}},
	})

	require.Equal(t, analysis.StatusReady, result.Status)
	assert.Equal(t, []analysis.Point{
		{Label: "2020", Value: 1},
		{Label: "2021", Value: 1},
	}, result.Chart.Points)
}

func TestCrosstabRowsSumToHundred(t *testing.T) {
	couples, err := table.New(
		table.ParseColumn(
			"q24_met_online",
			[]string{"online", "online", "online", "offline", "offline"},
		),
		table.ParseColumn(
			"relationship_quality",
			[]string{"excellent", "good", "excellent", "fair", "excellent"},
		),
	)
	require.NoError(t, err)

	result := aggregate(t, couples.All(), analysis.Aggregation{
		Kind:    analysis.AggregationRowNormalizedCrosstab,
		GroupBy: "q24_met_online",
		SplitBy: "relationship_quality",
	})

	require.Equal(t, analysis.StatusReady, result.Status)
	assert.Equal(t, analysis.ChartGroupedBar, result.Chart.Type)
	require.Len(t, result.Chart.Triples, 6, "2 meeting methods x 3 qualities, zeros included")

	totals := make(map[string]float64)
	for _, triple := range result.Chart.Triples {
		totals[triple.Key] += triple.Value
	}
	assert.InDelta(t, 100, totals["online"], 1e-9)
	assert.InDelta(t, 100, totals["offline"], 1e-9)

	assert.Contains(t, result.Chart.Triples, analysis.Triple{
		Key: "offline", Group: "good", Value: 0,
	})
	assert.Contains(t, result.Chart.Triples, analysis.Triple{
		Key: "offline", Group: "fair", Value: 50,
	})
}

func TestPivotSumFillsZeros(t *testing.T) {
	stock, err := table.New(
		table.ParseColumn("year", []string{"2020", "2020", "2021"}),
		table.ParseColumn("powertrain", []string{"BEV", "PHEV", "BEV"}),
		table.ParseColumn("value", []string{"100", "50", "200"}),
	)
	require.NoError(t, err)

	pivot := analysis.Aggregation{
		Kind:              analysis.AggregationPivotSum,
		GroupBy:           "year",
		SplitBy:           "powertrain",
		Column:            "value",
		TimeSeries:        true,
		SingleBucketLabel: "EV stock in %s",
	}

	result := aggregate(t, stock.All(), pivot)
	require.Equal(t, analysis.StatusReady, result.Status)
	assert.Equal(t, analysis.ChartStackedBar, result.Chart.Type)
	assert.Equal(t, &analysis.Pivot{
		RowKeys:    []string{"2020", "2021"},
		ColumnKeys: []string{"BEV", "PHEV"},
		Values:     [][]float64{{100, 50}, {200, 0}},
	}, result.Chart.Pivot)

	yearColumn, _ := stock.Column("year")
	single := stock.All().Where(func(row int) bool {
		year, _ := yearColumn.Key(row)
		return year == "2020"
	})
	result = aggregate(t, single, pivot)
	require.Equal(t, analysis.StatusScalar, result.Status)
	assert.Equal(t, 150.0, *result.Scalar)
	assert.Equal(t, "EV stock in 2020", result.ScalarLabel)
}

func TestDurationDerived(t *testing.T) {
	taxpayers := newTaxTable(t)
	view := filter(t, taxpayers, taxDimensions, analysis.Selection{})

	duration := analysis.Aggregation{
		Kind:  analysis.AggregationDurationDerived,
		Start: "registrets",
		End:   "izslegts",
		Bins:  15,
		Where: []analysis.Condition{{Column: "aktivs", Equals: "inactive"}},
	}

	result := aggregate(t, view, duration)
	require.Equal(t, analysis.StatusReady, result.Status)
	require.Len(t, result.Chart.Histograms, 1)

	bins := result.Chart.Histograms[0].Bins
	require.Len(t, bins, 15)
	total := 0
	for _, bin := range bins {
		total += bin.Count
	}
	assert.Equal(t, 2, total)
	assert.InDelta(t, 873/365.25, bins[0].Lower, 1e-9, "2018-01-10 to 2020-06-01 is 873 days")

	activeOnly := filter(t, taxpayers, taxDimensions, analysis.Selection{"status": {"active"}})
	result = aggregate(t, activeOnly, duration)
	assert.Equal(t, analysis.StatusPlaceholder, result.Status)
}

func TestDistributionPerGroup(t *testing.T) {
	couples, err := table.New(
		table.ParseColumn("method", []string{"online", "offline", "online", "offline", "online"}),
		table.ParseColumn("age_difference", []string{"1", "3", "5", "NA", "9"}),
	)
	require.NoError(t, err)

	result := aggregate(t, couples.All(), analysis.Aggregation{
		Kind:    analysis.AggregationDistribution,
		Column:  "age_difference",
		GroupBy: "method",
		Bins:    4,
	})

	require.Equal(t, analysis.StatusReady, result.Status)
	assert.Equal(t, 1, result.DroppedRows)
	require.Len(t, result.Chart.Histograms, 2)

	online := result.Chart.Histograms[0]
	assert.Equal(t, "online", online.Group)
	assert.Equal(t, []analysis.Bin{
		{Lower: 1, Upper: 3, Count: 1},
		{Lower: 3, Upper: 5, Count: 0},
		{Lower: 5, Upper: 7, Count: 1},
		{Lower: 7, Upper: 9, Count: 1},
	}, online.Bins)

	offline := result.Chart.Histograms[1]
	assert.Equal(t, "offline", offline.Group)
	total := 0
	for _, bin := range offline.Bins {
		total += bin.Count
	}
	assert.Equal(t, 1, total)
}

func TestGroupQuartiles(t *testing.T) {
	pollution, err := table.New(
		table.ParseColumn("country", []string{"A", "A", "A", "B", "B"}),
		table.ParseColumn("aqi_value", []string{"10", "30", "20", "5", "7"}),
	)
	require.NoError(t, err)

	result := aggregate(t, pollution.All(), analysis.Aggregation{
		Kind:    analysis.AggregationGroupQuartiles,
		GroupBy: "country",
		Column:  "aqi_value",
	})

	require.Equal(t, analysis.StatusReady, result.Status)
	require.Len(t, result.Chart.Boxes, 2)

	box := result.Chart.Boxes[0]
	assert.Equal(t, "A", box.Group)
	assert.Equal(t, 3, box.Count)
	assert.Equal(t, 10.0, box.Min)
	assert.Equal(t, 30.0, box.Max)
	assert.InDelta(t, 20, box.Median, 1e-9)
	assert.LessOrEqual(t, box.Q1, box.Median)
	assert.LessOrEqual(t, box.Median, box.Q3)
}

func TestColumnSumKeepsDeclaredOrder(t *testing.T) {
	games := newGamesTable(t)

	result := aggregate(t, games.All(), analysis.Aggregation{
		Kind: analysis.AggregationColumnSum,
		Columns: []analysis.LabeledColumn{
			{Column: "na_sales", Label: "NA"},
			{Column: "eu_sales", Label: "EU"},
		},
	})

	require.Equal(t, analysis.StatusReady, result.Status)
	assert.Equal(t, []analysis.Point{
		{Label: "NA", Value: 5},
		{Label: "EU", Value: 6.75},
	}, result.Chart.Points)
	assert.Equal(t, 1, result.DroppedRows)
}

func TestMisconfiguredAggregationFails(t *testing.T) {
	games := newGamesTable(t)

	_, err := analysis.Aggregate(games.All(), analysis.Aggregation{
		Name:   "broken",
		Kind:   analysis.AggregationScalarSum,
		Column: "genre",
	})
	assert.ErrorContains(t, err, "expected a numeric column")

	_, err = analysis.Aggregate(games.All(), analysis.Aggregation{
		Kind:   analysis.AggregationScalarMean,
		Column: "platform",
	})
	assert.ErrorContains(t, err, "unknown column 'platform'")
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1,234.50", analysis.FormatNumber(1234.5, 2))
	assert.Equal(t, "1,234,568", analysis.FormatNumber(1234567.8, 0))
	assert.Equal(t, "12.3", analysis.FormatNumber(12.34, 1))
}
