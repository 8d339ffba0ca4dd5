package datasets

import (
	"hermannm.dev/datadash/analysis"
	"hermannm.dev/datadash/normalize"
)

var airPollution = analysis.Dataset{
	ID:     "air-pollution",
	Title:  "Global Air Pollution Dashboard",
	Source: "global air pollution dataset.csv",
	Normalization: normalize.Rules{
		Renames: map[string]string{"pm2.5_aqi_value": "pm25_aqi_value"},
	},
	Dimensions: []analysis.Dimension{
		{
			Name:   "aqi_category",
			Label:  "AQI Category",
			Kind:   analysis.DimensionCategorical,
			Column: "aqi_category",
		},
		{
			Name:   "country_filtered",
			Label:  "Country",
			Kind:   analysis.DimensionTopN,
			Column: "country",
			RankBy: "aqi_value",
			Limit:  15,
		},
	},
	Metrics: []analysis.Aggregation{
		{Name: "total_cities", Title: "Cities", Kind: analysis.AggregationRowCount},
		{
			Name:     "average_aqi",
			Title:    "Avg. AQI",
			Kind:     analysis.AggregationScalarMean,
			Column:   "aqi_value",
			Decimals: 1,
		},
		{
			Name:     "average_pm25",
			Title:    "Avg. PM2.5 AQI",
			Kind:     analysis.AggregationScalarMean,
			Column:   "pm25_aqi_value",
			Decimals: 1,
		},
	},
	Charts: []analysis.Aggregation{
		{
			Name:    "aqi_by_country",
			Title:   "Average AQI by Country",
			Kind:    analysis.AggregationGroupMean,
			Chart:   analysis.ChartBar,
			GroupBy: "country_filtered",
			Column:  "aqi_value",
			XLabel:  "Average AQI",
			YLabel:  "Country",
		},
		{
			Name:    "aqi_categories",
			Title:   "Cities by AQI Category",
			Kind:    analysis.AggregationGroupCount,
			Chart:   analysis.ChartPie,
			GroupBy: "aqi_category",
		},
		{
			Name:   "aqi_distribution",
			Title:  "AQI Distribution",
			Kind:   analysis.AggregationDistribution,
			Chart:  analysis.ChartHistogram,
			Column: "aqi_value",
			Bins:   30,
			XLabel: "AQI",
			YLabel: "Frequency",
		},
		{
			Name:        "pm25_vs_ozone",
			Title:       "PM2.5 vs Ozone AQI",
			Kind:        analysis.AggregationScatter,
			Chart:       analysis.ChartScatter,
			Column:      "pm25_aqi_value",
			Y:           "ozone_aqi_value",
			GroupBy:     "aqi_category",
			XLabel:      "PM2.5 AQI",
			YLabel:      "Ozone AQI",
			LegendLabel: "AQI Category",
		},
	},
}
