package api

import (
	"fmt"
	"net/http"

	"hermannm.dev/datadash/config"
	"hermannm.dev/datadash/datasets"
)

type DashboardAPI struct {
	registry *datasets.Registry
	router   *http.ServeMux
	config   config.API
}

func NewDashboardAPI(
	registry *datasets.Registry,
	router *http.ServeMux,
	config config.API,
) DashboardAPI {
	api := DashboardAPI{registry: registry, router: router, config: config}

	api.router.HandleFunc("GET /datasets", api.ListDatasets)
	api.router.HandleFunc("GET /datasets/{id}/options", api.GetFilterOptions)
	api.router.HandleFunc("POST /datasets/{id}/dashboard", api.RenderDashboard)

	return api
}

func (api DashboardAPI) ListenAndServe() error {
	return http.ListenAndServe(fmt.Sprintf(":%s", api.config.Port), api.router)
}
