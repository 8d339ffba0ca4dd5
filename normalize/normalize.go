package normalize

import (
	"strings"
	"time"
	"unicode"

	"hermannm.dev/datadash/table"
	"hermannm.dev/wrap"
)

// Dataset-specific cleanup applied after the generic column name normalization. All keys refer to
// normalized column names.
type Rules struct {
	// Normalized column name -> final column name, e.g. to strip unit suffixes.
	Renames map[string]string `json:"renames,omitempty"`
	// Column -> raw token -> canonical value. Tokens are matched trimmed and case-insensitively.
	Recodes map[string]map[string]string `json:"recodes,omitempty"`
	// Column -> Go time layout of its text dates.
	Dates map[string]string `json:"dates,omitempty"`
}

// Returns a normalized copy of the given table. Normalizing an already normalized table returns an
// equal table.
func Normalize(raw *table.Table, rules Rules) (*table.Table, error) {
	columns := make([]*table.Column, 0, len(raw.Columns()))

	for _, column := range raw.Columns() {
		name := ColumnName(column.Name)
		if renamed, ok := rules.Renames[name]; ok {
			name = renamed
		}

		switch {
		case column.DataType == table.DataTypeText && rules.Dates[name] != "":
			columns = append(columns, parseDates(column, name, rules.Dates[name]))
		case column.DataType == table.DataTypeText:
			columns = append(columns, cleanText(column, name, rules.Recodes[name]))
		default:
			columns = append(columns, column.Renamed(name))
		}
	}

	normalized, err := table.New(columns...)
	if err != nil {
		return nil, wrap.Error(err, "normalized columns are invalid")
	}
	return normalized, nil
}

// Trims surrounding whitespace, lowercases, and replaces inner runs of whitespace with a single
// underscore.
func ColumnName(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), unicode.IsSpace)
	return strings.Join(fields, "_")
}

func cleanText(column *table.Column, name string, recodes map[string]string) *table.Column {
	lookup := make(map[string]string, len(recodes))
	for token, canonical := range recodes {
		lookup[strings.ToLower(strings.TrimSpace(token))] = canonical
	}

	return column.Map(name, table.DataTypeText, func(value table.Value) table.Value {
		if !value.Present {
			return value
		}

		text := strings.TrimSpace(value.Text)
		if text == "" {
			return table.Missing()
		}
		if canonical, ok := lookup[strings.ToLower(text)]; ok {
			text = canonical
		}
		return table.TextValue(text)
	})
}

// Values that fail to parse with the given layout become missing.
func parseDates(column *table.Column, name string, layout string) *table.Column {
	return column.Map(name, table.DataTypeDate, func(value table.Value) table.Value {
		if !value.Present {
			return value
		}

		date, err := time.Parse(layout, strings.TrimSpace(value.Text))
		if err != nil {
			return table.Missing()
		}
		return table.DateValue(date)
	})
}
