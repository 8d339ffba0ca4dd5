package datasets

import (
	"hermannm.dev/datadash/analysis"
)

var datingAppBehavior = analysis.Dataset{
	ID:     "dating-app",
	Title:  "Dating App Behavior Dashboard",
	Source: "dating_app_behavior_dataset.csv",
	Dimensions: []analysis.Dimension{
		{Name: "gender", Label: "Gender", Kind: analysis.DimensionCategorical, Column: "gender"},
		{
			Name:   "location_type",
			Label:  "Location Type",
			Kind:   analysis.DimensionCategorical,
			Column: "location_type",
		},
		{
			Name:   "income_bracket",
			Label:  "Income Bracket",
			Kind:   analysis.DimensionCategorical,
			Column: "income_bracket",
		},
	},
	Metrics: []analysis.Aggregation{
		{Name: "total_users", Title: "Total Users", Kind: analysis.AggregationRowCount},
		{
			Name:     "average_matches",
			Title:    "Avg. Mutual Matches",
			Kind:     analysis.AggregationScalarMean,
			Column:   "mutual_matches",
			Decimals: 1,
		},
		{
			Name:     "average_usage",
			Title:    "Avg. App Usage (Minutes)",
			Kind:     analysis.AggregationScalarMean,
			Column:   "app_usage_time_min",
			Decimals: 1,
		},
	},
	Charts: []analysis.Aggregation{
		{
			Name:    "match_outcomes",
			Title:   "Match Outcomes",
			Kind:    analysis.AggregationGroupCount,
			Chart:   analysis.ChartBar,
			GroupBy: "match_outcome",
			XLabel:  "Match Outcome",
			YLabel:  "Count",
		},
		{
			Name:        "outcome_by_gender",
			Title:       "Match Outcome by Gender",
			Kind:        analysis.AggregationRowNormalizedCrosstab,
			Chart:       analysis.ChartGroupedBar,
			GroupBy:     "gender",
			SplitBy:     "match_outcome",
			XLabel:      "Gender",
			YLabel:      "Percentage (%)",
			LegendLabel: "Match Outcome",
		},
		{
			Name:   "likes_by_usage",
			Title:  "Likes Received vs App Usage",
			Kind:   analysis.AggregationScatter,
			Chart:  analysis.ChartScatter,
			Column: "app_usage_time_min",
			Y:      "likes_received",
			XLabel: "App Usage (Minutes)",
			YLabel: "Likes Received",
		},
		{
			Name:    "matches_by_income",
			Title:   "Mutual Matches by Income Bracket",
			Kind:    analysis.AggregationGroupQuartiles,
			Chart:   analysis.ChartBoxplot,
			GroupBy: "income_bracket",
			Column:  "mutual_matches",
			XLabel:  "Income Bracket",
			YLabel:  "Mutual Matches",
		},
	},
}
