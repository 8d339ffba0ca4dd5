package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"hermannm.dev/wrap"
)

type Config struct {
	BaseConfig
	ClickHouse    ClickHouse
	Elasticsearch Elasticsearch
}

type BaseConfig struct {
	IsProduction bool            `env:"PRODUCTION"     envDefault:"false"`
	Source       SupportedSource `env:"DATA_SOURCE"    envDefault:"csv"`
	DataDir      string          `env:"DATA_DIR"       envDefault:"data"`
	LogLevel     slog.Level      `env:"LOG_LEVEL"      envDefault:"INFO"`
	API          API
}

type API struct {
	Port string `env:"API_PORT" envDefault:"8000"`
}

type ClickHouse struct {
	Address      string `env:"CLICKHOUSE_ADDRESS"`
	DatabaseName string `env:"CLICKHOUSE_DB_NAME"`
	Username     string `env:"CLICKHOUSE_USERNAME"`
	Password     string `env:"CLICKHOUSE_PASSWORD"`
	Debug        bool   `env:"CLICKHOUSE_DEBUG_ENABLED" envDefault:"false"`
	MaxRows      int    `env:"CLICKHOUSE_MAX_ROWS"      envDefault:"1000000"`
}

type Elasticsearch struct {
	Address      string `env:"ELASTICSEARCH_ADDRESS"`
	Debug        bool   `env:"ELASTICSEARCH_DEBUG_ENABLED" envDefault:"false"`
	MaxDocuments int    `env:"ELASTICSEARCH_MAX_DOCUMENTS" envDefault:"10000"`
}

// Where dataset tables are read from.
type SupportedSource string

const (
	SourceCSV           SupportedSource = "csv"
	SourceClickHouse    SupportedSource = "clickhouse"
	SourceElasticsearch SupportedSource = "elasticsearch"
)

func ReadFromEnv() (Config, error) {
	// The .env file is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, wrap.Error(err, "failed to load .env file")
	}

	parseOptions := env.Options{RequiredIfNoDef: true}

	var config Config

	if err := env.ParseWithOptions(&config.BaseConfig, parseOptions); err != nil {
		return Config{}, err
	}

	switch config.Source {
	case SourceCSV:
	case SourceClickHouse:
		if err := env.ParseWithOptions(&config.ClickHouse, parseOptions); err != nil {
			return Config{}, err
		}
	case SourceElasticsearch:
		if err := env.ParseWithOptions(&config.Elasticsearch, parseOptions); err != nil {
			return Config{}, err
		}
	default:
		err := fmt.Errorf(
			"must be one of: '%s', '%s', '%s'",
			SourceCSV, SourceClickHouse, SourceElasticsearch,
		)
		return Config{}, wrap.Errorf(
			err,
			"unsupported value '%s' for DATA_SOURCE in env",
			config.Source,
		)
	}

	return config, nil
}
