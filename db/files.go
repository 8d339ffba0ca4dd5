package db

import (
	"context"
	"os"
	"path/filepath"

	"hermannm.dev/datadash/analysis"
	"hermannm.dev/datadash/csv"
	"hermannm.dev/datadash/table"
	"hermannm.dev/wrap"
)

// Loads datasets from CSV files in a directory.
type FileLoader struct {
	dir string
}

func NewFileLoader(dir string) FileLoader {
	return FileLoader{dir: dir}
}

func (loader FileLoader) SourceOf(dataset analysis.Dataset) string {
	return filepath.Join(loader.dir, dataset.Source)
}

func (loader FileLoader) LoadTable(ctx context.Context, path string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, wrap.Errorf(err, "failed to open '%s'", path)
	}
	defer file.Close()

	loaded, err := csv.ReadTable(file)
	if err != nil {
		return nil, wrap.Errorf(err, "failed to read CSV file '%s'", path)
	}

	return loaded, nil
}
