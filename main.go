package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"hermannm.dev/datadash/api"
	"hermannm.dev/datadash/config"
	"hermannm.dev/datadash/datasets"
	"hermannm.dev/datadash/db"
	"hermannm.dev/datadash/db/clickhouse"
	"hermannm.dev/datadash/db/elasticsearch"
	"hermannm.dev/devlog"
	"hermannm.dev/devlog/log"
)

func main() {
	var logLevel slog.LevelVar
	logHandler := devlog.NewHandler(os.Stdout, &devlog.Options{Level: &logLevel})
	slog.SetDefault(slog.New(logHandler))

	conf, err := config.ReadFromEnv()
	if err != nil {
		log.ErrorCause(err, "failed to read config from env")
		os.Exit(1)
	}
	logLevel.Set(conf.LogLevel)

	ctx := context.Background()

	loader, err := initializeLoader(ctx, conf)
	if err != nil {
		log.ErrorCause(err, "failed to initialize data source")
		os.Exit(1)
	}

	registry, err := datasets.NewRegistry(ctx, datasets.Catalog, loader)
	if err != nil {
		log.ErrorCause(err, "failed to initialize dataset registry")
		os.Exit(1)
	}
	if conf.IsProduction {
		go registry.Preload()
	}

	dashboardAPI := api.NewDashboardAPI(registry, http.NewServeMux(), conf.API)

	log.Infof("listening on port %s", conf.API.Port)
	if err := dashboardAPI.ListenAndServe(); err != nil {
		log.ErrorCause(err, "server stopped")
		os.Exit(1)
	}
}

func initializeLoader(ctx context.Context, conf config.Config) (db.TableLoader, error) {
	switch conf.Source {
	case config.SourceClickHouse:
		log.Info("connecting to ClickHouse...")
		return clickhouse.NewClickHouseLoader(ctx, conf.ClickHouse)
	case config.SourceElasticsearch:
		log.Info("connecting to Elasticsearch...")
		return elasticsearch.NewElasticsearchLoader(conf.Elasticsearch)
	default:
		log.Info("reading datasets from CSV files", slog.String("dir", conf.DataDir))
		return db.NewFileLoader(conf.DataDir), nil
	}
}
