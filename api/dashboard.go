package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"hermannm.dev/datadash/analysis"
	"hermannm.dev/devlog/log"
)

type DatasetSummary struct {
	ID         string               `json:"id"`
	Title      string               `json:"title"`
	Dimensions []analysis.Dimension `json:"dimensions"`
}

type FilterOptions struct {
	DatasetID string           `json:"datasetId"`
	Title     string           `json:"title"`
	Filters   analysis.Domains `json:"filters"`
}

type DashboardRequest struct {
	Selection analysis.Selection `json:"selection"`
	ShowTable bool               `json:"showTable"`
}

type DashboardResponse struct {
	RenderID uuid.UUID `json:"renderId"`
	analysis.Dashboard
	Table *TableData `json:"table,omitempty"`
}

type TableData struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Returns:
//   - JSON-encoded []DatasetSummary, in menu order
func (api DashboardAPI) ListDatasets(res http.ResponseWriter, req *http.Request) {
	catalog := api.registry.Datasets()

	summaries := make([]DatasetSummary, len(catalog))
	for i, dataset := range catalog {
		summaries[i] = DatasetSummary{
			ID:         dataset.ID,
			Title:      dataset.Title,
			Dimensions: dataset.Dimensions,
		}
	}

	sendJSON(res, summaries)
}

// Expects:
//   - path parameter 'id': ID of the dataset to get filter options for
//
// Returns:
//   - JSON-encoded FilterOptions
func (api DashboardAPI) GetFilterOptions(res http.ResponseWriter, req *http.Request) {
	pipeline, err := api.registry.Pipeline(req.PathValue("id"))
	if err != nil {
		sendPipelineError(res, err)
		return
	}

	dataset := pipeline.Dataset()
	sendJSON(res, FilterOptions{
		DatasetID: dataset.ID,
		Title:     dataset.Title,
		Filters:   pipeline.Options(),
	})
}

// Expects:
//   - path parameter 'id': ID of the dataset to render
//   - body: JSON-encoded DashboardRequest. An empty body renders the unfiltered dashboard.
//
// Returns:
//   - JSON-encoded DashboardResponse
func (api DashboardAPI) RenderDashboard(res http.ResponseWriter, req *http.Request) {
	pipeline, err := api.registry.Pipeline(req.PathValue("id"))
	if err != nil {
		sendPipelineError(res, err)
		return
	}

	var request DashboardRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		sendClientError(res, err, "failed to parse dashboard request from body")
		return
	}

	if err := request.Selection.Validate(pipeline.Dataset().Dimensions); err != nil {
		sendClientError(res, err, "invalid filter selection")
		return
	}

	dashboard, err := pipeline.Render(request.Selection)
	if err != nil {
		sendServerError(res, err, "failed to render dashboard")
		return
	}

	response := DashboardResponse{RenderID: uuid.New(), Dashboard: dashboard}
	if request.ShowTable {
		normalized := pipeline.NormalizedTable()
		response.Table = &TableData{
			Columns: normalized.ColumnNames(),
			Rows:    normalized.All().Records(),
		}
	}

	log.Debug(
		"rendered dashboard",
		slog.String("dataset", pipeline.Dataset().ID),
		slog.String("renderId", response.RenderID.String()),
	)
	sendJSON(res, response)
}
