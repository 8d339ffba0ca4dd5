package analysis

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/aclements/go-moremath/stats"
	"hermannm.dev/datadash/table"
)

const daysPerYear = 365.25

func scalarSum(
	result *Result,
	view table.View,
	aggregation Aggregation,
	columns columnLookup,
) error {
	column, err := columns.numeric(aggregation.Column)
	if err != nil {
		return err
	}

	values, dropped := numbers(view, column)
	result.DroppedRows = dropped
	if view.Len() == 0 {
		result.setPlaceholder(aggregation, messageNoData)
		return nil
	}

	result.setScalar(stats.Sample{Xs: values}.Sum(), aggregation.Decimals)
	return nil
}

func scalarMean(
	result *Result,
	view table.View,
	aggregation Aggregation,
	columns columnLookup,
) error {
	column, err := columns.numeric(aggregation.Column)
	if err != nil {
		return err
	}

	values, dropped := numbers(view, column)
	result.DroppedRows = dropped
	if len(values) == 0 {
		result.setPlaceholder(aggregation, messageUndefined)
		return nil
	}

	result.setScalar(stats.Mean(values), aggregation.Decimals)
	return nil
}

// An empty view counts as zero rather than a placeholder.
func rowCount(result *Result, view table.View, aggregation Aggregation, _ columnLookup) error {
	result.setScalar(float64(view.Len()), aggregation.Decimals)
	return nil
}

func groupSumOrMean(
	result *Result,
	view table.View,
	aggregation Aggregation,
	columns columnLookup,
) error {
	groupColumn, err := columns.column(aggregation.GroupBy)
	if err != nil {
		return err
	}
	valueColumn, err := columns.numeric(aggregation.Column)
	if err != nil {
		return err
	}

	groups, dropped := view.GroupBy(groupColumn)
	result.DroppedRows = dropped

	points := make([]Point, 0, len(groups))
	for _, group := range groups {
		values, dropped := numbers(group.View, valueColumn)
		result.DroppedRows += dropped

		if aggregation.Kind == AggregationGroupMean {
			if len(values) == 0 {
				continue
			}
			points = append(points, Point{Label: group.Key, Value: stats.Mean(values)})
		} else {
			points = append(points, Point{Label: group.Key, Value: stats.Sample{Xs: values}.Sum()})
		}
	}

	if len(points) == 0 {
		result.setPlaceholder(aggregation, messageNoData)
		return nil
	}

	sortPointsDescending(points)
	result.setChart(aggregation, ChartBar).Points = points
	return nil
}

func groupCount(
	result *Result,
	view table.View,
	aggregation Aggregation,
	columns columnLookup,
) error {
	groupColumn, err := columns.column(aggregation.GroupBy)
	if err != nil {
		return err
	}

	counts, dropped := countByKey(view, groupColumn)
	result.DroppedRows = dropped
	if len(counts) == 0 {
		result.setPlaceholder(aggregation, messageNoData)
		return nil
	}

	points := make([]Point, 0, len(counts))
	for group, count := range counts {
		points = append(points, Point{Label: group, Value: float64(count)})
	}

	sortPointsDescending(points)
	result.setChart(aggregation, ChartBar).Points = points
	return nil
}

func columnSum(
	result *Result,
	view table.View,
	aggregation Aggregation,
	columns columnLookup,
) error {
	if len(aggregation.Columns) == 0 {
		return fmt.Errorf("no columns to sum")
	}

	points := make([]Point, len(aggregation.Columns))
	for i, labeled := range aggregation.Columns {
		column, err := columns.numeric(labeled.Column)
		if err != nil {
			return err
		}

		values, dropped := numbers(view, column)
		result.DroppedRows += dropped

		sum := stats.Sample{Xs: values}.Sum()

		label := labeled.Label
		if label == "" {
			label = labeled.Column
		}
		points[i] = Point{Label: label, Value: sum}
	}

	if view.Len() == 0 {
		result.setPlaceholder(aggregation, messageNoData)
		return nil
	}

	result.setChart(aggregation, ChartBar).Points = points
	return nil
}

// Counts per time bucket in ascending bucket order. With a single bucket in view, the result is
// the count for that bucket as a scalar, and with no buckets it is a placeholder asking for a
// wider selection.
func countOverTime(
	result *Result,
	view table.View,
	aggregation Aggregation,
	columns columnLookup,
) error {
	timeColumn, err := columns.column(aggregation.GroupBy)
	if err != nil {
		return err
	}

	counts, dropped := countByKey(view, timeColumn)
	result.DroppedRows = dropped
	buckets := distinctSortedKeys(timeColumn, view.RowIndices())

	switch len(buckets) {
	case 0:
		result.setPlaceholder(aggregation, messageSelectMore)
	case 1:
		result.setScalar(float64(counts[buckets[0]]), aggregation.Decimals)
		result.ScalarLabel = singleBucketLabel(aggregation, buckets[0])
	default:
		points := make([]Point, len(buckets))
		for i, bucket := range buckets {
			points[i] = Point{Label: bucket, Value: float64(counts[bucket])}
		}
		result.setChart(aggregation, ChartLine).Points = points
	}

	return nil
}

// Sums Column per (GroupBy, SplitBy) pair into a zero-filled grid with sorted keys.
func pivotSum(
	result *Result,
	view table.View,
	aggregation Aggregation,
	columns columnLookup,
) error {
	rowColumn, err := columns.column(aggregation.GroupBy)
	if err != nil {
		return err
	}
	seriesColumn, err := columns.column(aggregation.SplitBy)
	if err != nil {
		return err
	}
	valueColumn, err := columns.numeric(aggregation.Column)
	if err != nil {
		return err
	}

	rows := view.Where(func(row int) bool {
		_, rowPresent := rowColumn.Key(row)
		_, seriesPresent := seriesColumn.Key(row)
		_, valuePresent := valueColumn.Number(row)
		return rowPresent && seriesPresent && valuePresent
	})
	result.DroppedRows = view.Len() - rows.Len()

	rowKeys := distinctSortedKeys(rowColumn, rows.RowIndices())
	columnKeys := distinctSortedKeys(seriesColumn, rows.RowIndices())

	if aggregation.TimeSeries {
		switch len(rowKeys) {
		case 0:
			result.setPlaceholder(aggregation, messageSelectMore)
			return nil
		case 1:
			values, _ := numbers(rows, valueColumn)
			result.setScalar(stats.Sample{Xs: values}.Sum(), aggregation.Decimals)
			result.ScalarLabel = singleBucketLabel(aggregation, rowKeys[0])
			return nil
		}
	} else if len(rowKeys) == 0 {
		result.setPlaceholder(aggregation, messageNoData)
		return nil
	}

	rowIndices := indexOf(rowKeys)
	columnIndices := indexOf(columnKeys)

	values := make([][]float64, len(rowKeys))
	for i := range values {
		values[i] = make([]float64, len(columnKeys))
	}

	for _, row := range rows.RowIndices() {
		rowKey, _ := rowColumn.Key(row)
		columnKey, _ := seriesColumn.Key(row)
		value, _ := valueColumn.Number(row)
		values[rowIndices[rowKey]][columnIndices[columnKey]] += value
	}

	result.setChart(aggregation, ChartStackedBar).Pivot = &Pivot{
		RowKeys:    rowKeys,
		ColumnKeys: columnKeys,
		Values:     values,
	}
	return nil
}

// Percentage of each SplitBy value within each GroupBy value, as long-format triples including
// zero cells. The percentages of every GroupBy value sum to 100.
func rowNormalizedCrosstab(
	result *Result,
	view table.View,
	aggregation Aggregation,
	columns columnLookup,
) error {
	rowColumn, err := columns.column(aggregation.GroupBy)
	if err != nil {
		return err
	}
	splitColumn, err := columns.column(aggregation.SplitBy)
	if err != nil {
		return err
	}

	rows := view.Where(func(row int) bool {
		_, rowPresent := rowColumn.Key(row)
		_, splitPresent := splitColumn.Key(row)
		return rowPresent && splitPresent
	})
	result.DroppedRows = view.Len() - rows.Len()

	if rows.Len() == 0 {
		result.setPlaceholder(aggregation, messageNoData)
		return nil
	}

	rowKeys := distinctSortedKeys(rowColumn, rows.RowIndices())
	splitKeys := distinctSortedKeys(splitColumn, rows.RowIndices())

	counts := make(map[[2]string]int)
	totals := make(map[string]int)
	for _, row := range rows.RowIndices() {
		rowKey, _ := rowColumn.Key(row)
		splitKey, _ := splitColumn.Key(row)
		counts[[2]string{rowKey, splitKey}]++
		totals[rowKey]++
	}

	triples := make([]Triple, 0, len(rowKeys)*len(splitKeys))
	for _, splitKey := range splitKeys {
		for _, rowKey := range rowKeys {
			count := counts[[2]string{rowKey, splitKey}]
			percentage := float64(count) / float64(totals[rowKey]) * 100
			triples = append(triples, Triple{Key: rowKey, Group: splitKey, Value: percentage})
		}
	}

	result.setChart(aggregation, ChartGroupedBar).Triples = triples
	return nil
}

func distribution(
	result *Result,
	view table.View,
	aggregation Aggregation,
	columns columnLookup,
) error {
	valueColumn, err := columns.numeric(aggregation.Column)
	if err != nil {
		return err
	}

	var groupColumn *table.Column
	if aggregation.GroupBy != "" {
		if groupColumn, err = columns.column(aggregation.GroupBy); err != nil {
			return err
		}
	}

	valued := view.Where(func(row int) bool {
		_, ok := valueColumn.Number(row)
		return ok
	})
	result.DroppedRows = view.Len() - valued.Len()

	groups := []table.Group{{View: valued}}
	if groupColumn != nil {
		var dropped int
		groups, dropped = valued.GroupBy(groupColumn)
		result.DroppedRows += dropped
	}

	if len(groups) == 0 || groups[0].View.Len() == 0 {
		result.setPlaceholder(aggregation, messageNoData)
		return nil
	}

	histograms := make([]Histogram, len(groups))
	for i, group := range groups {
		values, _ := numbers(group.View, valueColumn)
		histograms[i] = Histogram{Group: group.Key, Bins: histogramBins(values, aggregation.Bins)}
	}

	result.setChart(aggregation, ChartHistogram).Histograms = histograms
	return nil
}

// Histogram of End - Start in fractional years, counting whole elapsed days.
func durationDerived(
	result *Result,
	view table.View,
	aggregation Aggregation,
	columns columnLookup,
) error {
	startColumn, err := columns.date(aggregation.Start)
	if err != nil {
		return err
	}
	endColumn, err := columns.date(aggregation.End)
	if err != nil {
		return err
	}

	durations := make([]float64, 0, view.Len())
	for _, row := range view.RowIndices() {
		start, end := startColumn.Value(row), endColumn.Value(row)
		if !start.Present || !end.Present {
			result.DroppedRows++
			continue
		}

		days := math.Floor(end.Date.Sub(start.Date).Hours() / 24)
		durations = append(durations, days/daysPerYear)
	}

	if len(durations) == 0 {
		result.setPlaceholder(aggregation, messageNoData)
		return nil
	}

	result.setChart(aggregation, ChartHistogram).Histograms = []Histogram{
		{Bins: histogramBins(durations, aggregation.Bins)},
	}
	return nil
}

func groupQuartiles(
	result *Result,
	view table.View,
	aggregation Aggregation,
	columns columnLookup,
) error {
	groupColumn, err := columns.column(aggregation.GroupBy)
	if err != nil {
		return err
	}
	valueColumn, err := columns.numeric(aggregation.Column)
	if err != nil {
		return err
	}

	groups, dropped := view.GroupBy(groupColumn)
	result.DroppedRows = dropped

	boxes := make([]Box, 0, len(groups))
	for _, group := range groups {
		values, dropped := numbers(group.View, valueColumn)
		result.DroppedRows += dropped
		if len(values) == 0 {
			continue
		}

		slices.Sort(values)
		sample := stats.Sample{Xs: values, Sorted: true}
		low, high := stats.Bounds(values)

		boxes = append(boxes, Box{
			Group:  group.Key,
			Count:  len(values),
			Min:    low,
			Q1:     sample.Quantile(0.25),
			Median: sample.Quantile(0.5),
			Q3:     sample.Quantile(0.75),
			Max:    high,
		})
	}
	if len(boxes) == 0 {
		result.setPlaceholder(aggregation, messageNoData)
		return nil
	}

	slices.SortFunc(boxes, func(a, b Box) int {
		return cmp.Compare(a.Group, b.Group)
	})

	result.setChart(aggregation, ChartBoxplot).Boxes = boxes
	return nil
}

func scatter(result *Result, view table.View, aggregation Aggregation, columns columnLookup) error {
	xColumn, err := columns.numeric(aggregation.Column)
	if err != nil {
		return err
	}
	yColumn, err := columns.numeric(aggregation.Y)
	if err != nil {
		return err
	}

	var groupColumn *table.Column
	if aggregation.GroupBy != "" {
		if groupColumn, err = columns.column(aggregation.GroupBy); err != nil {
			return err
		}
	}

	points := make([]ScatterPoint, 0, view.Len())
	for _, row := range view.RowIndices() {
		x, xOK := xColumn.Number(row)
		y, yOK := yColumn.Number(row)
		if !xOK || !yOK {
			result.DroppedRows++
			continue
		}

		point := ScatterPoint{X: x, Y: y}
		if groupColumn != nil {
			point.Group, _ = groupColumn.Key(row)
		}
		points = append(points, point)
	}

	if len(points) == 0 {
		result.setPlaceholder(aggregation, messageNoData)
		return nil
	}

	result.setChart(aggregation, ChartScatter).Scatter = points
	return nil
}

func numbers(view table.View, column *table.Column) (values []float64, dropped int) {
	values = make([]float64, 0, view.Len())
	for _, row := range view.RowIndices() {
		if value, ok := column.Number(row); ok {
			values = append(values, value)
		} else {
			dropped++
		}
	}
	return values, dropped
}

func countByKey(view table.View, column *table.Column) (counts map[string]int, dropped int) {
	groups, dropped := view.GroupBy(column)
	counts = make(map[string]int, len(groups))
	for _, group := range groups {
		counts[group.Key] = group.View.Len()
	}
	return counts, dropped
}

// Largest value first. Equal values keep the lexical order of their labels.
func sortPointsDescending(points []Point) {
	slices.SortFunc(points, func(a, b Point) int {
		return cmp.Compare(a.Label, b.Label)
	})
	slices.SortStableFunc(points, func(a, b Point) int {
		return cmp.Compare(b.Value, a.Value)
	})
}

func singleBucketLabel(aggregation Aggregation, bucket string) string {
	if aggregation.SingleBucketLabel == "" {
		return bucket
	}
	return fmt.Sprintf(aggregation.SingleBucketLabel, bucket)
}

func indexOf(keys []string) map[string]int {
	indices := make(map[string]int, len(keys))
	for i, key := range keys {
		indices[key] = i
	}
	return indices
}
