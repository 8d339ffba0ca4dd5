package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"hermannm.dev/wrap"
)

type DataSource interface {
	ReadRow() (row []string, rowNumber int, done bool, err error)
}

// Field values treated as missing, matching the defaults of common dataframe CSV readers.
var missingTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {}, "-NaN": {},
	"-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {}, "NA": {}, "NULL": {},
	"NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

func IsMissingToken(field string) bool {
	_, missing := missingTokens[strings.TrimSpace(field)]
	return missing
}

var dateLayouts = []string{time.RFC3339, time.DateTime, DateLayout}

// Reads every row from the given source, deduces a data type per column from all of its fields,
// and converts the fields. Fields that are missing tokens become missing values, as do the trailing
// fields of rows that are shorter than the header.
func Load(columnNames []string, source DataSource) (*Table, error) {
	fields := make([][]string, len(columnNames))

	for {
		row, rowNumber, done, err := source.ReadRow()
		if done {
			break
		}
		if err != nil {
			return nil, wrap.Errorf(err, "failed to read row %d", rowNumber)
		}
		if len(row) > len(columnNames) {
			return nil, fmt.Errorf(
				"row %d has %d fields, but header has %d columns",
				rowNumber,
				len(row),
				len(columnNames),
			)
		}

		for i := range columnNames {
			field := ""
			if i < len(row) {
				field = row[i]
			}
			fields[i] = append(fields[i], field)
		}
	}

	columns := make([]*Column, len(columnNames))
	for i, name := range columnNames {
		columns[i] = ParseColumn(name, fields[i])
	}

	table, err := New(columns...)
	if err != nil {
		return nil, wrap.Error(err, "invalid table")
	}
	return table, nil
}

// Deduces the data type of the given raw fields, and converts them to values of that type.
func ParseColumn(name string, fields []string) *Column {
	var dataType DataType
	for _, field := range fields {
		trimmed := strings.TrimSpace(field)
		if IsMissingToken(trimmed) || isNonFiniteNumber(trimmed) {
			continue
		}
		dataType = widenDataType(dataType, deduceDataTypeFromField(trimmed))
	}
	if dataType == 0 {
		dataType = DataTypeText
	}

	values := make([]Value, len(fields))
	for i, field := range fields {
		values[i] = convertField(field, dataType)
	}

	return NewColumn(name, dataType, values)
}

func deduceDataTypeFromField(field string) DataType {
	if _, err := strconv.ParseInt(field, 10, 64); err == nil {
		return DataTypeInt
	}
	if _, err := strconv.ParseFloat(field, 64); err == nil {
		return DataTypeFloat
	}
	if _, ok := parseDate(field); ok {
		return DataTypeDate
	}
	if _, err := uuid.Parse(field); err == nil {
		return DataTypeUUID
	}
	return DataTypeText
}

// Infinities parse as floats, but have no JSON representation.
func isNonFiniteNumber(field string) bool {
	number, err := strconv.ParseFloat(field, 64)
	return err == nil && (math.IsInf(number, 0) || math.IsNaN(number))
}

// Integer and float columns combine to float, any other mix of types falls back to text.
func widenDataType(current DataType, next DataType) DataType {
	switch {
	case current == 0 || current == next:
		return next
	case current.IsNumeric() && next.IsNumeric():
		return DataTypeFloat
	default:
		return DataTypeText
	}
}

func convertField(field string, dataType DataType) Value {
	if IsMissingToken(field) {
		return Missing()
	}

	trimmed := strings.TrimSpace(field)

	switch dataType {
	case DataTypeInt, DataTypeFloat:
		number, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsInf(number, 0) || math.IsNaN(number) {
			return Missing()
		}
		return NumberValue(number)
	case DataTypeDate:
		date, ok := parseDate(trimmed)
		if !ok {
			return Missing()
		}
		return DateValue(date)
	default:
		return TextValue(field)
	}
}

func parseDate(field string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, field); err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}
