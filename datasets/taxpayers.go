package datasets

import (
	"hermannm.dev/datadash/analysis"
	"hermannm.dev/datadash/normalize"
)

const (
	statusActive   = "active"
	statusInactive = "inactive"
)

const noDeregistrationsMessage = "Select multiple deregistration years to see trend, " +
	"or ensure inactive taxpayers are included."

var isInactive = analysis.Condition{Column: "aktivs", Equals: statusInactive}

var microenterpriseTaxpayers = analysis.Dataset{
	ID:     "microenterprise-taxpayers",
	Title:  "Mikrouzņēmumu Nodokļa Maksātāju Dashboard",
	Source: "pdb_munmaksataji_odata.csv",
	Normalization: normalize.Rules{
		Recodes: map[string]map[string]string{
			"aktivs": {
				"ir":  statusActive,
				"jā":  statusActive,
				"nav": statusInactive,
				"nē":  statusInactive,
			},
		},
		Dates: map[string]string{
			"registrets": "02.01.2006",
			"izslegts":   "02.01.2006",
		},
	},
	Dimensions: []analysis.Dimension{
		{Name: "status", Label: "Status", Kind: analysis.DimensionCategorical, Column: "aktivs"},
		{
			Name:   "registration_year",
			Label:  "Registration Year",
			Kind:   analysis.DimensionYear,
			Column: "registrets",
		},
		{
			Name:             "deregistration_year",
			Label:            "Deregistration Year",
			Kind:             analysis.DimensionYear,
			Column:           "izslegts",
			AppliesOnlyWhere: &isInactive,
		},
	},
	Metrics: []analysis.Aggregation{
		{Name: "total_taxpayers", Title: "Total Taxpayers", Kind: analysis.AggregationRowCount},
		{
			Name:  "active_taxpayers",
			Title: "Active Taxpayers",
			Kind:  analysis.AggregationRowCount,
			Where: []analysis.Condition{{Column: "aktivs", Equals: statusActive}},
		},
		{
			Name:  "inactive_taxpayers",
			Title: "Inactive Taxpayers",
			Kind:  analysis.AggregationRowCount,
			Where: []analysis.Condition{isInactive},
		},
	},
	Charts: []analysis.Aggregation{
		{
			Name:    "status_distribution",
			Title:   "Distribution of Active vs Inactive Taxpayers",
			Kind:    analysis.AggregationGroupCount,
			Chart:   analysis.ChartPie,
			GroupBy: "aktivs",
		},
		{
			Name:              "registrations_per_year",
			Title:             "Registrations Over Time",
			Kind:              analysis.AggregationCountOverTime,
			Chart:             analysis.ChartLine,
			GroupBy:           "registration_year",
			SingleBucketLabel: "Registrations in %s",
			EmptyMessage:      "Select multiple registration years to see trend.",
			XLabel:            "Registration Year",
			YLabel:            "Number of Registrations",
		},
		{
			Name:              "deregistrations_per_year",
			Title:             "Deregistrations Over Time",
			Kind:              analysis.AggregationCountOverTime,
			Chart:             analysis.ChartLine,
			GroupBy:           "deregistration_year",
			Where:             []analysis.Condition{isInactive},
			SingleBucketLabel: "Deregistrations in %s",
			EmptyMessage:      noDeregistrationsMessage,
			XLabel:            "Deregistration Year",
			YLabel:            "Number of Deregistrations",
		},
		{
			Name:         "activity_duration",
			Title:        "Duration of Activity (Inactive Taxpayers)",
			Kind:         analysis.AggregationDurationDerived,
			Chart:        analysis.ChartHistogram,
			Start:        "registrets",
			End:          "izslegts",
			Bins:         15,
			Where:        []analysis.Condition{isInactive},
			EmptyMessage: "No inactive taxpayers in the filtered data to show duration.",
			XLabel:       "Duration of Activity (Years)",
			YLabel:       "Frequency",
		},
	},
}
