package datasets

import (
	"hermannm.dev/datadash/analysis"
	"hermannm.dev/datadash/normalize"
)

var cybersecurityThreats = analysis.Dataset{
	ID:     "cybersecurity",
	Title:  "Global Cybersecurity Threats Dashboard",
	Source: "Global_Cybersecurity_Threats_2015-2024.csv",
	Normalization: normalize.Rules{
		Renames: map[string]string{
			"financial_loss_(in_million_$)":       "financial_loss",
			"incident_resolution_time_(in_hours)": "resolution_hours",
		},
	},
	Dimensions: []analysis.Dimension{
		{Name: "year", Label: "Year", Kind: analysis.DimensionYear, Column: "year"},
		{
			Name:   "attack_type",
			Label:  "Attack Type",
			Kind:   analysis.DimensionCategorical,
			Column: "attack_type",
		},
		{
			Name:   "target_industry",
			Label:  "Target Industry",
			Kind:   analysis.DimensionCategorical,
			Column: "target_industry",
		},
		{
			Name:   "country_filtered",
			Label:  "Country",
			Kind:   analysis.DimensionTopN,
			Column: "country",
			RankBy: "financial_loss",
			Limit:  5,
		},
	},
	Metrics: []analysis.Aggregation{
		{Name: "total_incidents", Title: "Total Incidents", Kind: analysis.AggregationRowCount},
		{
			Name:     "total_loss",
			Title:    "Total Financial Loss (M$)",
			Kind:     analysis.AggregationScalarSum,
			Column:   "financial_loss",
			Decimals: 2,
		},
		{
			Name:   "affected_users",
			Title:  "Affected Users",
			Kind:   analysis.AggregationScalarSum,
			Column: "number_of_affected_users",
		},
		{
			Name:     "average_resolution",
			Title:    "Avg. Resolution Time (Hours)",
			Kind:     analysis.AggregationScalarMean,
			Column:   "resolution_hours",
			Decimals: 1,
		},
	},
	Charts: []analysis.Aggregation{
		{
			Name:    "loss_by_attack_type",
			Title:   "Financial Loss by Attack Type",
			Kind:    analysis.AggregationGroupSum,
			Chart:   analysis.ChartBar,
			GroupBy: "attack_type",
			Column:  "financial_loss",
			XLabel:  "Financial Loss (Million $)",
			YLabel:  "Attack Type",
		},
		{
			Name:              "incidents_per_year",
			Title:             "Incidents Over Time",
			Kind:              analysis.AggregationCountOverTime,
			Chart:             analysis.ChartLine,
			GroupBy:           "year",
			SingleBucketLabel: "Incidents in %s",
			XLabel:            "Year",
			YLabel:            "Number of Incidents",
		},
		{
			Name:        "loss_by_industry",
			Title:       "Financial Loss by Country and Industry",
			Kind:        analysis.AggregationPivotSum,
			Chart:       analysis.ChartStackedBar,
			GroupBy:     "country_filtered",
			SplitBy:     "target_industry",
			Column:      "financial_loss",
			XLabel:      "Country",
			YLabel:      "Financial Loss (Million $)",
			LegendLabel: "Target Industry",
		},
		{
			Name:    "resolution_by_defense",
			Title:   "Resolution Time by Defense Mechanism",
			Kind:    analysis.AggregationGroupQuartiles,
			Chart:   analysis.ChartBoxplot,
			GroupBy: "defense_mechanism_used",
			Column:  "resolution_hours",
			XLabel:  "Defense Mechanism",
			YLabel:  "Resolution Time (Hours)",
		},
	},
}
