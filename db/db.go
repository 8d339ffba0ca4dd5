package db

import (
	"context"

	"hermannm.dev/datadash/analysis"
	"hermannm.dev/datadash/table"
)

// Reads the raw tables that datasets are built from.
type TableLoader interface {
	// Identifies where the loader reads the given dataset from, such as a file path or a table
	// name. Datasets with the same source share one loaded table.
	SourceOf(dataset analysis.Dataset) string

	LoadTable(ctx context.Context, source string) (*table.Table, error)
}
