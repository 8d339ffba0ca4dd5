package datasets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"hermannm.dev/datadash/analysis"
	"hermannm.dev/datadash/cache"
	"hermannm.dev/datadash/db"
	"hermannm.dev/datadash/table"
	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

var ErrUnknownDataset = errors.New("unknown dataset")

// Hands out a pipeline per dataset, loading each source at most once for the lifetime of the
// registry. A source that fails to load stays failed.
type Registry struct {
	ctx       context.Context
	catalog   []analysis.Dataset
	byID      map[string]analysis.Dataset
	loader    db.TableLoader
	tables    *cache.Cache[*table.Table]
	pipelines *cache.Cache[*analysis.Pipeline]
}

// Sources are loaded with the given context, not the context of the request that needed them.
func NewRegistry(
	ctx context.Context,
	catalog []analysis.Dataset,
	loader db.TableLoader,
) (*Registry, error) {
	if err := ValidateCatalog(catalog); err != nil {
		return nil, err
	}

	byID := make(map[string]analysis.Dataset, len(catalog))
	for _, dataset := range catalog {
		byID[dataset.ID] = dataset
	}

	return &Registry{
		ctx:       ctx,
		catalog:   catalog,
		byID:      byID,
		loader:    loader,
		tables:    cache.New[*table.Table](),
		pipelines: cache.New[*analysis.Pipeline](),
	}, nil
}

func (registry *Registry) Datasets() []analysis.Dataset {
	return registry.catalog
}

func (registry *Registry) Dataset(id string) (analysis.Dataset, bool) {
	dataset, ok := registry.byID[id]
	return dataset, ok
}

// Returns the pipeline for the dataset with the given ID, loading its source on first use.
// Returns ErrUnknownDataset if no dataset has the ID.
func (registry *Registry) Pipeline(id string) (*analysis.Pipeline, error) {
	dataset, ok := registry.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrUnknownDataset, id)
	}

	return registry.pipelines.Get(id, func() (*analysis.Pipeline, error) {
		pipeline, err := registry.buildPipeline(dataset)
		if err != nil {
			log.ErrorCause(err, "failed to load dataset", slog.String("dataset", id))
			return nil, err
		}

		log.Info(
			"loaded dataset",
			slog.String("dataset", id),
			slog.Int("rows", pipeline.Table().RowCount()),
		)
		return pipeline, nil
	})
}

func (registry *Registry) buildPipeline(dataset analysis.Dataset) (*analysis.Pipeline, error) {
	source := registry.loader.SourceOf(dataset)

	raw, err := registry.tables.Get(source, func() (*table.Table, error) {
		return registry.loader.LoadTable(registry.ctx, source)
	})
	if err != nil {
		return nil, wrap.Errorf(err, "failed to load data from '%s'", source)
	}

	return analysis.NewPipeline(dataset, raw)
}

// Loads every dataset in parallel, so that the first request for each is served from the cache.
// Failures are logged and cached like on-demand loads.
func (registry *Registry) Preload() {
	var wg sync.WaitGroup
	for _, dataset := range registry.catalog {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = registry.Pipeline(dataset.ID)
		}()
	}
	wg.Wait()
}
