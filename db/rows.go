package db

import (
	"hermannm.dev/datadash/table"
)

// Rows already fetched from a database, read back as a table.DataSource.
type RowBuffer struct {
	rows    [][]string
	current int
}

func NewRowBuffer(rows [][]string) *RowBuffer {
	return &RowBuffer{rows: rows}
}

var _ table.DataSource = (*RowBuffer)(nil)

func (buffer *RowBuffer) ReadRow() (row []string, rowNumber int, done bool, err error) {
	if buffer.current >= len(buffer.rows) {
		return nil, buffer.current, true, nil
	}

	row = buffer.rows[buffer.current]
	buffer.current++
	return row, buffer.current, false, nil
}
