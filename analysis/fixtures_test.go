package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"hermannm.dev/datadash/analysis"
	"hermannm.dev/datadash/table"
)

var gameDimensions = []analysis.Dimension{
	{Name: "year", Label: "Year", Kind: analysis.DimensionYear, Column: "year"},
	{Name: "genre", Label: "Genre", Kind: analysis.DimensionCategorical, Column: "genre"},
	{
		Name:   "publisher_filtered",
		Label:  "Publisher",
		Kind:   analysis.DimensionTopN,
		Column: "publisher",
		RankBy: "global_sales",
		Limit:  2,
	},
}

func newGamesTable(t *testing.T) *table.Table {
	t.Helper()

	games, err := table.New(
		table.ParseColumn("name", []string{"A", "B", "C", "D", "E", "F"}),
		table.ParseColumn("year", []string{"2006", "2006", "2007", "N/A", "2007", "2008"}),
		table.ParseColumn(
			"genre",
			[]string{"Action", "Sports", "Action", "Puzzle", "Action", "Sports"},
		),
		table.ParseColumn(
			"publisher",
			[]string{"Nintendo", "EA", "Nintendo", "Ubisoft", "", "Sega"},
		),
		table.ParseColumn("global_sales", []string{"5", "3", "2", "1", "0.5", "0.25"}),
		table.ParseColumn("na_sales", []string{"2", "1", "1", "0.5", "0.25", "0.25"}),
		table.ParseColumn("eu_sales", []string{"3", "2", "1", "0.5", "0.25", ""}),
	)
	require.NoError(t, err)

	derived, err := analysis.DeriveColumns(games, gameDimensions)
	require.NoError(t, err)
	return derived
}

var taxDimensions = []analysis.Dimension{
	{Name: "status", Label: "Status", Kind: analysis.DimensionCategorical, Column: "aktivs"},
	{
		Name:   "registration_year",
		Label:  "Registration year",
		Kind:   analysis.DimensionYear,
		Column: "registrets",
	},
	{
		Name:             "deregistration_year",
		Label:            "Deregistration year",
		Kind:             analysis.DimensionYear,
		Column:           "izslegts",
		AppliesOnlyWhere: &analysis.Condition{Column: "aktivs", Equals: "inactive"},
	},
}

func newTaxTable(t *testing.T) *table.Table {
	t.Helper()

	taxpayers, err := table.New(
		table.ParseColumn(
			"aktivs",
			[]string{"active", "inactive", "inactive", "inactive", "active"},
		),
		table.ParseColumn(
			"registrets",
			[]string{"2019-05-01", "2018-01-10", "2018-03-03", "2017-07-07", "2016-02-02"},
		),
		table.ParseColumn(
			"izslegts",
			[]string{"", "2020-06-01", "2021-01-01", "", ""},
		),
	)
	require.NoError(t, err)

	derived, err := analysis.DeriveColumns(taxpayers, taxDimensions)
	require.NoError(t, err)
	return derived
}

func filter(
	t *testing.T,
	derived *table.Table,
	dimensions []analysis.Dimension,
	selection analysis.Selection,
) table.View {
	t.Helper()

	view, err := analysis.ApplyFilters(derived, dimensions, selection)
	require.NoError(t, err)
	return view
}
