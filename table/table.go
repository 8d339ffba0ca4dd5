package table

import (
	"fmt"
	"maps"
	"slices"

	ggtable "github.com/aclements/go-gg/table"
)

// An immutable set of equally long, uniquely named columns. Transformations return new tables
// that share the columns they did not change.
type Table struct {
	frame     *ggtable.Table
	dataTypes map[string]DataType
}

func New(columns ...*Column) (*Table, error) {
	builder := new(ggtable.Builder)
	dataTypes := make(map[string]DataType, len(columns))

	for i, column := range columns {
		if i > 0 && column.Len() != columns[0].Len() {
			return nil, fmt.Errorf(
				"column '%s' has %d rows, expected %d",
				column.Name,
				column.Len(),
				columns[0].Len(),
			)
		}

		if _, duplicate := dataTypes[column.Name]; duplicate {
			return nil, fmt.Errorf("duplicate column name '%s'", column.Name)
		}

		dataTypes[column.Name] = column.DataType
		builder.Add(column.Name, frameValues(column))
	}

	return &Table{frame: builder.Done(), dataTypes: dataTypes}, nil
}

// The frame builder removes columns that are added as nil.
func frameValues(column *Column) []Value {
	if column.values == nil {
		return []Value{}
	}
	return column.values
}

func (table *Table) RowCount() int {
	return table.frame.Len()
}

func (table *Table) Columns() []*Column {
	names := table.frame.Columns()
	columns := make([]*Column, len(names))
	for i, name := range names {
		columns[i], _ = table.Column(name)
	}
	return columns
}

func (table *Table) ColumnNames() []string {
	return slices.Clone(table.frame.Columns())
}

func (table *Table) Column(name string) (column *Column, ok bool) {
	dataType, ok := table.dataTypes[name]
	if !ok {
		return nil, false
	}
	values, _ := table.frame.Column(name).([]Value)
	return NewColumn(name, dataType, values), true
}

// Returns a new table with the given column added, or replacing the existing column of the same
// name.
func (table *Table) WithColumn(column *Column) (*Table, error) {
	names := table.frame.Columns()
	replacesOnly := len(names) == 1 && names[0] == column.Name
	if len(names) > 0 && !replacesOnly && column.Len() != table.RowCount() {
		return nil, fmt.Errorf(
			"column '%s' has %d rows, expected %d",
			column.Name,
			column.Len(),
			table.RowCount(),
		)
	}

	dataTypes := maps.Clone(table.dataTypes)
	dataTypes[column.Name] = column.DataType

	frame := ggtable.NewBuilder(table.frame).Add(column.Name, frameValues(column)).Done()
	return &Table{frame: frame, dataTypes: dataTypes}, nil
}

// Returns a view over every row of the table.
func (table *Table) All() View {
	rows := make([]int, table.RowCount())
	for i := range rows {
		rows[i] = i
	}
	return View{table: table, rows: rows}
}
