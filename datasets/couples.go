package datasets

import (
	"hermannm.dev/datadash/analysis"
)

var couples = analysis.Dataset{
	ID:     "hcmst",
	Title:  "How Couples Meet and Stay Together Dashboard",
	Source: "HCMST_ver_3.04.csv",
	Dimensions: []analysis.Dimension{
		{
			Name:   "meeting_method",
			Label:  "Meeting Method",
			Kind:   analysis.DimensionCategorical,
			Column: "q24_met_online",
		},
	},
	Metrics: []analysis.Aggregation{
		{Name: "total_couples", Title: "Total Couples", Kind: analysis.AggregationRowCount},
		{
			Name:     "average_duration",
			Title:    "Avg. Relationship Duration (Years)",
			Kind:     analysis.AggregationScalarMean,
			Column:   "how_long_relationship",
			Decimals: 1,
		},
	},
	Charts: []analysis.Aggregation{
		{
			Name:    "meeting_methods",
			Title:   "Distribution of Meeting Methods",
			Kind:    analysis.AggregationGroupCount,
			Chart:   analysis.ChartBar,
			GroupBy: "q24_met_online",
			XLabel:  "Meeting Method",
			YLabel:  "Count",
		},
		{
			Name:        "quality_by_method",
			Title:       "Relationship Quality by Meeting Method",
			Kind:        analysis.AggregationRowNormalizedCrosstab,
			Chart:       analysis.ChartGroupedBar,
			GroupBy:     "q24_met_online",
			SplitBy:     "relationship_quality",
			XLabel:      "Meeting Method",
			YLabel:      "Percentage (%)",
			LegendLabel: "Relationship Quality",
		},
		{
			Name:        "age_difference_by_method",
			Title:       "Age Difference Distribution by Meeting Method",
			Kind:        analysis.AggregationDistribution,
			Chart:       analysis.ChartHistogram,
			Column:      "age_difference",
			GroupBy:     "q24_met_online",
			Bins:        20,
			XLabel:      "Age Difference (Years)",
			YLabel:      "Frequency",
			LegendLabel: "Meeting Method",
		},
	},
}
