package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hermannm.dev/datadash/analysis"
	"hermannm.dev/datadash/api"
	"hermannm.dev/datadash/config"
	"hermannm.dev/datadash/datasets"
	"hermannm.dev/datadash/table"
)

type memoryLoader struct {
	tables map[string]*table.Table
	err    error
}

func (loader memoryLoader) SourceOf(dataset analysis.Dataset) string {
	return dataset.Source
}

func (loader memoryLoader) LoadTable(_ context.Context, source string) (*table.Table, error) {
	if loader.err != nil {
		return nil, loader.err
	}
	return loader.tables[source], nil
}

var catalog = []analysis.Dataset{
	{
		ID:     "games",
		Title:  "Video Game Sales",
		Source: "games.csv",
		Dimensions: []analysis.Dimension{
			{Name: "genre", Label: "Genre", Kind: analysis.DimensionCategorical, Column: "genre"},
			{Name: "year", Label: "Year", Kind: analysis.DimensionYear, Column: "year"},
		},
		Metrics: []analysis.Aggregation{
			{Name: "total_games", Title: "Total Games", Kind: analysis.AggregationRowCount},
			{
				Name:     "total_sales",
				Title:    "Total Sales",
				Kind:     analysis.AggregationScalarSum,
				Column:   "sales",
				Decimals: 2,
			},
		},
		Charts: []analysis.Aggregation{
			{
				Name:    "sales_by_genre",
				Title:   "Sales by Genre",
				Kind:    analysis.AggregationGroupSum,
				GroupBy: "genre",
				Column:  "sales",
			},
		},
	},
}

func newTestServer(t *testing.T, loader memoryLoader) *httptest.Server {
	t.Helper()

	registry, err := datasets.NewRegistry(context.Background(), catalog, loader)
	require.NoError(t, err)

	router := http.NewServeMux()
	api.NewDashboardAPI(registry, router, config.API{})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func newGamesLoader(t *testing.T) memoryLoader {
	t.Helper()

	games, err := table.New(
		table.ParseColumn("Genre", []string{"Action", "Sports", "Action", "Puzzle"}),
		table.ParseColumn("Year", []string{"2006", "2006", "2007", "2008"}),
		table.ParseColumn("Sales", []string{"1.25", "2", "1000", "0.5"}),
	)
	require.NoError(t, err)

	return memoryLoader{tables: map[string]*table.Table{"games.csv": games}}
}

type dashboardResponse struct {
	RenderID    string `json:"renderId"`
	Title       string `json:"title"`
	TotalRows   int    `json:"totalRows"`
	MatchedRows int    `json:"matchedRows"`
	Metrics     []struct {
		Name      string   `json:"name"`
		Status    string   `json:"status"`
		Scalar    *float64 `json:"scalar"`
		Formatted string   `json:"formatted"`
	} `json:"metrics"`
	Charts []struct {
		Name   string `json:"name"`
		Status string `json:"status"`
		Chart  struct {
			Type   string           `json:"type"`
			Points []analysis.Point `json:"points"`
		} `json:"chart"`
	} `json:"charts"`
	Table *api.TableData `json:"table"`
}

func postDashboard(
	t *testing.T,
	server *httptest.Server,
	dataset string,
	body string,
) *http.Response {
	t.Helper()

	res, err := http.Post(
		server.URL+"/datasets/"+dataset+"/dashboard",
		"application/json",
		strings.NewReader(body),
	)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func TestListDatasets(t *testing.T) {
	server := newTestServer(t, newGamesLoader(t))

	res, err := http.Get(server.URL + "/datasets")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var summaries []api.DatasetSummary
	require.NoError(t, json.NewDecoder(res.Body).Decode(&summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "games", summaries[0].ID)
	assert.Equal(t, "Video Game Sales", summaries[0].Title)
	assert.Len(t, summaries[0].Dimensions, 2)
}

func TestGetFilterOptions(t *testing.T) {
	server := newTestServer(t, newGamesLoader(t))

	res, err := http.Get(server.URL + "/datasets/games/options")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var options api.FilterOptions
	require.NoError(t, json.NewDecoder(res.Body).Decode(&options))
	assert.Equal(t, []string{"Action", "Puzzle", "Sports"}, options.Filters.Values("genre"))
	assert.Equal(t, []string{"2006", "2007", "2008"}, options.Filters.Values("year"))
}

func TestRenderDashboard(t *testing.T) {
	server := newTestServer(t, newGamesLoader(t))

	res := postDashboard(t, server, "games", `{"selection": {"genre": ["Action", "Sports"]}}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var dashboard dashboardResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&dashboard))

	_, err := uuid.Parse(dashboard.RenderID)
	assert.NoError(t, err)
	assert.Equal(t, 4, dashboard.TotalRows)
	assert.Equal(t, 3, dashboard.MatchedRows)
	assert.Nil(t, dashboard.Table)

	require.Len(t, dashboard.Metrics, 2)
	assert.Equal(t, "SCALAR", dashboard.Metrics[0].Status)
	assert.Equal(t, 3.0, *dashboard.Metrics[0].Scalar)
	assert.Equal(t, "1,003.25", dashboard.Metrics[1].Formatted)

	require.Len(t, dashboard.Charts, 1)
	assert.Equal(t, "READY", dashboard.Charts[0].Status)
	assert.Equal(t, []analysis.Point{
		{Label: "Action", Value: 1001.25},
		{Label: "Sports", Value: 2},
	}, dashboard.Charts[0].Chart.Points)
}

func TestRenderDashboardWithTable(t *testing.T) {
	server := newTestServer(t, newGamesLoader(t))

	res := postDashboard(t, server, "games", `{"selection": {"year": ["2008"]}, "showTable": true}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var dashboard dashboardResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&dashboard))

	assert.Equal(t, 1, dashboard.MatchedRows)
	require.Len(t, dashboard.Charts, 1)
	assert.Equal(
		t,
		[]analysis.Point{{Label: "Puzzle", Value: 0.5}},
		dashboard.Charts[0].Chart.Points,
	)

	require.NotNil(t, dashboard.Table)
	assert.Equal(t, []string{"genre", "year", "sales"}, dashboard.Table.Columns)
	assert.Equal(t, [][]string{
		{"Action", "2006", "1.25"},
		{"Sports", "2006", "2"},
		{"Action", "2007", "1000"},
		{"Puzzle", "2008", "0.5"},
	}, dashboard.Table.Rows)
}

func TestRenderDashboardWithoutBody(t *testing.T) {
	server := newTestServer(t, newGamesLoader(t))

	res := postDashboard(t, server, "games", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var dashboard dashboardResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&dashboard))
	assert.Equal(t, 4, dashboard.MatchedRows)
}

func TestRenderDashboardErrors(t *testing.T) {
	testCases := []struct {
		name           string
		loader         memoryLoader
		dataset        string
		body           string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "unknown dimension",
			loader:         newGamesLoader(t),
			dataset:        "games",
			body:           `{"selection": {"platform": ["Wii"]}}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "platform",
		},
		{
			name:           "malformed body",
			loader:         newGamesLoader(t),
			dataset:        "games",
			body:           `{"selection": [`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "failed to parse dashboard request",
		},
		{
			name:           "unknown dataset",
			loader:         newGamesLoader(t),
			dataset:        "movies",
			body:           `{}`,
			expectedStatus: http.StatusNotFound,
			expectedError:  "unknown dataset 'movies'",
		},
		{
			name:           "load failure",
			loader:         memoryLoader{err: errors.New("file not found")},
			dataset:        "games",
			body:           `{}`,
			expectedStatus: http.StatusServiceUnavailable,
			expectedError:  "file not found",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			server := newTestServer(t, testCase.loader)

			res := postDashboard(t, server, testCase.dataset, testCase.body)
			assert.Equal(t, testCase.expectedStatus, res.StatusCode)

			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), testCase.expectedError)
		})
	}
}

func TestOptionsForUnknownDataset(t *testing.T) {
	server := newTestServer(t, newGamesLoader(t))

	res, err := http.Get(server.URL + "/datasets/movies/options")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
