package datasets

import (
	"hermannm.dev/datadash/analysis"
)

func evParameter(parameter string, unit string) []analysis.Condition {
	return []analysis.Condition{
		{Column: "parameter", Equals: parameter},
		{Column: "unit", Equals: unit},
	}
}

var electricVehicles = analysis.Dataset{
	ID:     "ev",
	Title:  "Global EV Data Explorer Dashboard",
	Source: "IEA-EV-dataEV salesHistoricalCars.csv",
	Dimensions: []analysis.Dimension{
		{Name: "region", Label: "Region", Kind: analysis.DimensionCategorical, Column: "region"},
		{Name: "year", Label: "Year", Kind: analysis.DimensionYear, Column: "year"},
		{
			Name:   "powertrain",
			Label:  "Powertrain",
			Kind:   analysis.DimensionCategorical,
			Column: "powertrain",
		},
		{
			Name:   "parameter",
			Label:  "Parameter",
			Kind:   analysis.DimensionCategorical,
			Column: "parameter",
		},
	},
	Metrics: []analysis.Aggregation{
		{
			Name:   "total_sales",
			Title:  "Total EV Sales (Vehicles)",
			Kind:   analysis.AggregationScalarSum,
			Column: "value",
			Where:  evParameter("EV sales", "Vehicles"),
		},
		{
			Name:     "average_sales_share",
			Title:    "Avg. EV Sales Share (%)",
			Kind:     analysis.AggregationScalarMean,
			Column:   "value",
			Where:    evParameter("EV sales share", "percent"),
			Decimals: 2,
		},
		{
			Name:     "average_stock_share",
			Title:    "Avg. EV Stock Share (%)",
			Kind:     analysis.AggregationScalarMean,
			Column:   "value",
			Where:    evParameter("EV stock share", "percent"),
			Decimals: 2,
		},
	},
	Charts: []analysis.Aggregation{
		{
			Name:              "sales_by_powertrain",
			Title:             "EV Sales Over Time by Powertrain",
			Kind:              analysis.AggregationPivotSum,
			Chart:             analysis.ChartLine,
			GroupBy:           "year",
			SplitBy:           "powertrain",
			Column:            "value",
			Where:             evParameter("EV sales", "Vehicles"),
			TimeSeries:        true,
			SingleBucketLabel: "EV Sales in %s",
			EmptyMessage:      "Select multiple years to see trend.",
			XLabel:            "Year",
			YLabel:            "EV Sales (Vehicles)",
			LegendLabel:       "Powertrain",
		},
		{
			Name:         "sales_share_by_region",
			Title:        "EV Sales Share by Region",
			Kind:         analysis.AggregationGroupMean,
			Chart:        analysis.ChartBar,
			GroupBy:      "region",
			Column:       "value",
			Where:        evParameter("EV sales share", "percent"),
			EmptyMessage: "No EV sales share data available for the selected filters.",
			XLabel:       "Average EV Sales Share (%)",
			YLabel:       "Region",
		},
		{
			Name:         "stock_share_distribution",
			Title:        "EV Stock Share Distribution",
			Kind:         analysis.AggregationDistribution,
			Chart:        analysis.ChartHistogram,
			Column:       "value",
			Where:        evParameter("EV stock share", "percent"),
			Bins:         20,
			EmptyMessage: "No EV stock share data available for the selected filters.",
			XLabel:       "EV Stock Share (%)",
			YLabel:       "Frequency",
		},
		{
			Name:              "stock_by_powertrain",
			Title:             "EV Stock by Powertrain",
			Kind:              analysis.AggregationPivotSum,
			Chart:             analysis.ChartStackedBar,
			GroupBy:           "year",
			SplitBy:           "powertrain",
			Column:            "value",
			Where:             evParameter("EV stock", "Vehicles"),
			TimeSeries:        true,
			SingleBucketLabel: "EV Stock in %s",
			EmptyMessage:      "Select multiple years to see trend.",
			XLabel:            "Year",
			YLabel:            "EV Stock (Vehicles)",
			LegendLabel:       "Powertrain",
		},
	},
}
