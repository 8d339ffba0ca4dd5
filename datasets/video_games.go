package datasets

import (
	"hermannm.dev/datadash/analysis"
)

var videoGameSales = analysis.Dataset{
	ID:     "vgsales",
	Title:  "Video Game Sales Dashboard",
	Source: "vgsales.csv",
	Dimensions: []analysis.Dimension{
		{Name: "year", Label: "Year", Kind: analysis.DimensionYear, Column: "year"},
		{Name: "genre", Label: "Genre", Kind: analysis.DimensionCategorical, Column: "genre"},
		{
			Name:   "publisher_filtered",
			Label:  "Publisher",
			Kind:   analysis.DimensionTopN,
			Column: "publisher",
			RankBy: "global_sales",
			Limit:  10,
		},
	},
	Metrics: []analysis.Aggregation{
		{
			Name:     "total_sales",
			Title:    "Total Global Sales (M)",
			Kind:     analysis.AggregationScalarSum,
			Column:   "global_sales",
			Decimals: 2,
		},
		{
			Name:     "average_sales",
			Title:    "Avg. Sales per Game (M)",
			Kind:     analysis.AggregationScalarMean,
			Column:   "global_sales",
			Decimals: 2,
		},
		{Name: "total_games", Title: "Total Games", Kind: analysis.AggregationRowCount},
	},
	Charts: []analysis.Aggregation{
		{
			Name:    "sales_by_genre",
			Title:   "Top Genres by Sales",
			Kind:    analysis.AggregationGroupSum,
			Chart:   analysis.ChartBar,
			GroupBy: "genre",
			Column:  "global_sales",
			XLabel:  "Total Global Sales (Million $)",
			YLabel:  "Genre",
		},
		{
			Name:  "sales_by_region",
			Title: "Sales by Region",
			Kind:  analysis.AggregationColumnSum,
			Chart: analysis.ChartBar,
			Columns: []analysis.LabeledColumn{
				{Column: "na_sales", Label: "NA"},
				{Column: "eu_sales", Label: "EU"},
				{Column: "jp_sales", Label: "JP"},
				{Column: "other_sales", Label: "Other"},
			},
			XLabel: "Total Sales (Million $)",
			YLabel: "Region",
		},
		{
			Name:              "games_per_year",
			Title:             "Games Released Over Time",
			Kind:              analysis.AggregationCountOverTime,
			Chart:             analysis.ChartLine,
			GroupBy:           "year",
			SingleBucketLabel: "Games Released in %s",
			EmptyMessage:      "Select multiple years to see trend.",
			XLabel:            "Year",
			YLabel:            "Number of Games Released",
		},
		{
			Name:    "sales_by_publisher",
			Title:   "Top Publishers by Sales",
			Kind:    analysis.AggregationGroupSum,
			Chart:   analysis.ChartBar,
			GroupBy: "publisher_filtered",
			Column:  "global_sales",
			XLabel:  "Total Global Sales (Million $)",
			YLabel:  "Publisher",
		},
	},
}
