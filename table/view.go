package table

import ggtable "github.com/aclements/go-gg/table"

const (
	rowColumn = "row"
	keyColumn = "key"
)

// An ordered subset of the rows of a table, referenced by row index. Views never copy column data,
// and operations on a view return a new view.
type View struct {
	table *Table
	rows  []int
}

func NewView(table *Table, rows []int) View {
	return View{table: table, rows: rows}
}

func (view View) Table() *Table {
	return view.table
}

func (view View) Len() int {
	return len(view.rows)
}

// Must not be modified by the caller.
func (view View) RowIndices() []int {
	return view.rows
}

func (view View) Where(predicate func(row int) bool) View {
	rows := make([]int, 0, len(view.rows))
	if len(view.rows) == 0 {
		return View{table: view.table, rows: rows}
	}

	frame := new(ggtable.Builder).Add(rowColumn, view.rows).Done()
	filtered := ggtable.Filter(frame, predicate, rowColumn)
	for _, gid := range filtered.Tables() {
		rows = append(rows, filtered.Table(gid).MustColumn(rowColumn).([]int)...)
	}

	return View{table: view.table, rows: rows}
}

// The rows of a view sharing one key of the grouped column.
type Group struct {
	Key  string
	View View
}

// Splits the view by the keys of the given column, with groups in order of first appearance and
// rows in view order within each group. Rows where the column is missing belong to no group, and
// are counted as dropped.
func (view View) GroupBy(column *Column) (groups []Group, dropped int) {
	keys := make([]string, 0, len(view.rows))
	rows := make([]int, 0, len(view.rows))
	for _, row := range view.rows {
		if key, present := column.Key(row); present {
			keys = append(keys, key)
			rows = append(rows, row)
		}
	}
	dropped = len(view.rows) - len(rows)
	if len(rows) == 0 {
		return nil, dropped
	}

	frame := new(ggtable.Builder).Add(keyColumn, keys).Add(rowColumn, rows).Done()
	grouped := ggtable.GroupBy(frame, keyColumn)

	groups = make([]Group, 0, len(grouped.Tables()))
	for _, gid := range grouped.Tables() {
		groups = append(groups, Group{
			Key: gid.Label().(string),
			View: View{
				table: view.table,
				rows:  grouped.Table(gid).MustColumn(rowColumn).([]int),
			},
		})
	}
	return groups, dropped
}

// Returns the rows of the view as string keys in table column order, with missing values as empty
// strings.
func (view View) Records() [][]string {
	columns := view.table.Columns()

	records := make([][]string, len(view.rows))
	for i, row := range view.rows {
		record := make([]string, len(columns))
		for j, column := range columns {
			record[j], _ = column.Key(row)
		}
		records[i] = record
	}

	return records
}
