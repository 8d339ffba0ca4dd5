package clickhouse

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"hermannm.dev/datadash/table"
)

// Formats a scanned ClickHouse value as a field that table.Load deduces back to the same type.
// Null values become blank fields.
func formatScanned(value reflect.Value) string {
	if !value.IsValid() {
		return ""
	}

	for value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return ""
		}
		value = value.Elem()
	}

	if !value.CanInterface() {
		return ""
	}

	switch scanned := value.Interface().(type) {
	case time.Time:
		if scanned.IsZero() {
			return ""
		}
		if isMidnight(scanned) {
			return scanned.Format(table.DateLayout)
		}
		return scanned.Format(time.RFC3339)
	case fmt.Stringer:
		return scanned.String()
	}

	switch value.Kind() {
	case reflect.String:
		return value.String()
	case reflect.Bool:
		return strconv.FormatBool(value.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(value.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(value.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(value.Float(), 'f', -1, 64)
	default:
		return fmt.Sprint(value.Interface())
	}
}

func isMidnight(timestamp time.Time) bool {
	hour, minute, second := timestamp.Clock()
	return hour == 0 && minute == 0 && second == 0 && timestamp.Nanosecond() == 0
}
