package csv

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"hermannm.dev/datadash/table"
	"hermannm.dev/wrap"
)

const maxRowsToCheckForDelimiter = 20

type Reader struct {
	inner      *csv.Reader
	file       io.ReadSeeker
	currentRow int
}

func NewReader(csvFile io.ReadSeeker) (*Reader, error) {
	delimiter, err := DeduceFieldDelimiter(
		csvFile,
		maxRowsToCheckForDelimiter,
		DefaultDelimitersToCheck,
	)
	if err != nil {
		return nil, err
	}

	return &Reader{inner: newInnerReader(csvFile, delimiter), file: csvFile, currentRow: 0}, nil
}

func newInnerReader(csvFile io.Reader, delimiter rune) *csv.Reader {
	reader := csv.NewReader(csvFile)
	reader.ReuseRecord = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.Comma = delimiter
	return reader
}

func (reader *Reader) Delimiter() rune {
	return reader.inner.Comma
}

// Implements table.DataSource
func (reader *Reader) ReadRow() (row []string, rowNumber int, done bool, err error) {
	reader.currentRow++

	row, err = reader.inner.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, true, nil
		} else {
			return nil, reader.currentRow, false, err
		}
	}

	return row, reader.currentRow, false, nil
}

// Reads the header row, with surrounding whitespace and any byte order mark stripped from the
// column names.
func (reader *Reader) ReadHeaderRow() (columnNames []string, err error) {
	row, rowNumber, done, err := reader.ReadRow()
	if rowNumber != 1 && !done {
		return nil, errors.New("tried to read header row after reading previous rows")
	}
	if done {
		return nil, errors.New("csv file ended before header row")
	}
	if err != nil {
		return nil, err
	}

	columnNames = make([]string, len(row))
	for i, name := range row {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		columnNames[i] = strings.TrimSpace(name)
	}
	return columnNames, nil
}

func (reader *Reader) ResetReadPosition() error {
	if _, err := reader.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	reader.currentRow = 0
	reader.inner = newInnerReader(reader.file, reader.inner.Comma)
	return nil
}

// Reads the whole file into a table, using the header row as column names.
func ReadTable(csvFile io.ReadSeeker) (*table.Table, error) {
	reader, err := NewReader(csvFile)
	if err != nil {
		return nil, wrap.Error(err, "failed to create CSV reader")
	}

	columnNames, err := reader.ReadHeaderRow()
	if err != nil {
		return nil, wrap.Error(err, "failed to read CSV column names from header row")
	}

	loaded, err := table.Load(columnNames, reader)
	if err != nil {
		return nil, wrap.Error(err, "failed to read CSV rows")
	}

	return loaded, nil
}
