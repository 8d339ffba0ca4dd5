package elasticsearch

import (
	"context"

	"github.com/elastic/go-elasticsearch/v8"
	"hermannm.dev/datadash/analysis"
	"hermannm.dev/datadash/config"
	"hermannm.dev/datadash/db"
	"hermannm.dev/datadash/table"
	"hermannm.dev/wrap"
)

// Implements db.TableLoader for Elasticsearch, reading each dataset from the index named by its ID.
// Every document becomes a row, with a column for each field seen in any document.
type ElasticsearchLoader struct {
	client       *elasticsearch.TypedClient
	maxDocuments int
}

var _ db.TableLoader = ElasticsearchLoader{}

func NewElasticsearchLoader(config config.Elasticsearch) (ElasticsearchLoader, error) {
	client, err := elasticsearch.NewTypedClient(elasticsearch.Config{
		Addresses:         []string{config.Address},
		EnableDebugLogger: config.Debug,
	})
	if err != nil {
		return ElasticsearchLoader{}, wrap.Error(err, "failed to connect to Elasticsearch")
	}

	return ElasticsearchLoader{client: client, maxDocuments: config.MaxDocuments}, nil
}

func (loader ElasticsearchLoader) SourceOf(dataset analysis.Dataset) string {
	return dataset.ID
}

func (loader ElasticsearchLoader) LoadTable(
	ctx context.Context,
	index string,
) (*table.Table, error) {
	response, err := loader.client.Search().Index(index).Size(loader.maxDocuments).Do(ctx)
	if err != nil {
		if isIndexNotFound(err) {
			return nil, wrapElasticErrorf(err, "index '%s' does not exist", index)
		}
		return nil, wrapElasticErrorf(err, "search request for index '%s' failed", index)
	}

	var documents documentSet
	for i, hit := range response.Hits.Hits {
		if err := documents.add(hit.Source_); err != nil {
			return nil, wrap.Errorf(err, "failed to decode document %d in index '%s'", i+1, index)
		}
	}

	loaded, err := table.Load(documents.fieldNames, db.NewRowBuffer(documents.rows()))
	if err != nil {
		return nil, wrap.Errorf(err, "failed to load index '%s'", index)
	}

	return loaded, nil
}
