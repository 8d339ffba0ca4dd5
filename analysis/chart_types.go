package analysis

import "hermannm.dev/enumnames"

// The kind of chart the rendering adapter should draw for a result.
type ChartType uint8

const (
	ChartBar ChartType = iota + 1
	ChartStackedBar
	ChartGroupedBar
	ChartLine
	ChartPie
	ChartHistogram
	ChartBoxplot
	ChartScatter
)

var chartTypeNames = enumnames.NewMap(map[ChartType]string{
	ChartBar:        "BAR",
	ChartStackedBar: "STACKED_BAR",
	ChartGroupedBar: "GROUPED_BAR",
	ChartLine:       "LINE",
	ChartPie:        "PIE",
	ChartHistogram:  "HISTOGRAM",
	ChartBoxplot:    "BOXPLOT",
	ChartScatter:    "SCATTER",
})

func (chartType ChartType) IsValid() bool {
	return chartTypeNames.ContainsEnumValue(chartType)
}

func (chartType ChartType) String() string {
	return chartTypeNames.GetNameOrFallback(chartType, "INVALID_CHART_TYPE")
}

func (chartType ChartType) MarshalJSON() ([]byte, error) {
	return chartTypeNames.MarshalToNameJSON(chartType)
}

func (chartType *ChartType) UnmarshalJSON(bytes []byte) error {
	return chartTypeNames.UnmarshalFromNameJSON(bytes, chartType)
}
