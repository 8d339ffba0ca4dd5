package clickhouse

import (
	"context"
	"fmt"
	"reflect"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"hermannm.dev/datadash/analysis"
	"hermannm.dev/datadash/config"
	"hermannm.dev/datadash/db"
	"hermannm.dev/datadash/table"
	"hermannm.dev/wrap"
)

// Implements db.TableLoader for ClickHouse, reading each dataset from the table named by its ID.
type ClickHouseLoader struct {
	conn    driver.Conn
	maxRows int
}

var _ db.TableLoader = ClickHouseLoader{}

func NewClickHouseLoader(ctx context.Context, config config.ClickHouse) (ClickHouseLoader, error) {
	// Options docs: https://clickhouse.com/docs/en/integrations/go#connection-settings
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{config.Address},
		Auth: clickhouse.Auth{
			Database: config.DatabaseName,
			Username: config.Username,
			Password: config.Password,
		},
		Debug: config.Debug,
		Debugf: func(format string, v ...any) {
			fmt.Printf(format+"\n", v...)
		},
		Compression: &clickhouse.Compression{Method: clickhouse.CompressionLZ4},
	})
	if err != nil {
		return ClickHouseLoader{}, wrap.Error(err, "failed to connect to ClickHouse")
	}

	if err := conn.Ping(ctx); err != nil {
		return ClickHouseLoader{}, wrap.Error(err, "failed to ping ClickHouse connection")
	}

	return ClickHouseLoader{conn: conn, maxRows: config.MaxRows}, nil
}

func (loader ClickHouseLoader) SourceOf(dataset analysis.Dataset) string {
	return dataset.ID
}

func (loader ClickHouseLoader) LoadTable(
	ctx context.Context,
	tableName string,
) (*table.Table, error) {
	query, err := selectAllQuery(tableName, loader.maxRows)
	if err != nil {
		return nil, err
	}

	rows, err := loader.conn.Query(ctx, query)
	if err != nil {
		return nil, wrap.Errorf(err, "ClickHouse query for table '%s' failed", tableName)
	}
	defer rows.Close()

	columnTypes := rows.ColumnTypes()
	scanTypes := make([]reflect.Type, len(columnTypes))
	for i, columnType := range columnTypes {
		scanTypes[i] = columnType.ScanType()
	}

	var fields [][]string
	for rows.Next() {
		row, err := scanRow(rows, scanTypes)
		if err != nil {
			return nil, wrap.Errorf(
				err,
				"failed to scan row %d of table '%s'",
				len(fields)+1,
				tableName,
			)
		}
		fields = append(fields, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap.Errorf(err, "failed to read rows of table '%s'", tableName)
	}

	loaded, err := table.Load(rows.Columns(), db.NewRowBuffer(fields))
	if err != nil {
		return nil, wrap.Errorf(err, "failed to load table '%s'", tableName)
	}

	return loaded, nil
}

func selectAllQuery(tableName string, maxRows int) (string, error) {
	if err := ValidateIdentifier(tableName); err != nil {
		return "", wrap.Error(err, "invalid table name")
	}

	var query QueryBuilder
	query.WriteString("SELECT * FROM ")
	query.WriteIdentifier(tableName)
	if maxRows > 0 {
		query.WriteString(" LIMIT ")
		query.WriteInt(maxRows)
	}

	return query.String(), nil
}

func scanRow(rows driver.Rows, scanTypes []reflect.Type) ([]string, error) {
	targets := make([]any, len(scanTypes))
	for i, scanType := range scanTypes {
		targets[i] = reflect.New(scanType).Interface()
	}

	if err := rows.Scan(targets...); err != nil {
		return nil, err
	}

	row := make([]string, len(targets))
	for i, target := range targets {
		row[i] = formatScanned(reflect.ValueOf(target).Elem())
	}
	return row, nil
}
