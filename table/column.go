package table

import (
	"strconv"
	"time"
)

const DateLayout = "2006-01-02"

// A single cell. Which field is set depends on the data type of the column the value belongs to:
// Number for INTEGER and FLOAT, Date for DATE, Text otherwise.
type Value struct {
	Text    string
	Number  float64
	Date    time.Time
	Present bool
}

func Missing() Value {
	return Value{}
}

func TextValue(text string) Value {
	return Value{Text: text, Present: true}
}

func NumberValue(number float64) Value {
	return Value{Number: number, Present: true}
}

func DateValue(date time.Time) Value {
	return Value{Date: date, Present: true}
}

type Column struct {
	Name     string
	DataType DataType
	values   []Value
}

func NewColumn(name string, dataType DataType, values []Value) *Column {
	return &Column{Name: name, DataType: dataType, values: values}
}

func (column *Column) Len() int {
	return len(column.values)
}

func (column *Column) Value(row int) Value {
	return column.values[row]
}

func (column *Column) Number(row int) (number float64, ok bool) {
	value := column.values[row]
	if !value.Present || !column.DataType.IsNumeric() {
		return 0, false
	}
	return value.Number, true
}

// Returns the canonical string form of the value at the given row, used both for option lists and
// for matching selections. Missing values have no key.
func (column *Column) Key(row int) (key string, present bool) {
	value := column.values[row]
	if !value.Present {
		return "", false
	}
	return FormatKey(column.DataType, value), true
}

func FormatKey(dataType DataType, value Value) string {
	switch dataType {
	case DataTypeInt:
		return strconv.FormatInt(int64(value.Number), 10)
	case DataTypeFloat:
		return strconv.FormatFloat(value.Number, 'f', -1, 64)
	case DataTypeDate:
		return value.Date.Format(DateLayout)
	default:
		return value.Text
	}
}

// Maps every value through the given function into a new column of the given type. The receiver
// is left untouched.
func (column *Column) Map(name string, dataType DataType, mapper func(Value) Value) *Column {
	values := make([]Value, len(column.values))
	for i, value := range column.values {
		values[i] = mapper(value)
	}
	return NewColumn(name, dataType, values)
}

func (column *Column) Renamed(name string) *Column {
	return &Column{Name: name, DataType: column.DataType, values: column.values}
}
