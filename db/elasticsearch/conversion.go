package elasticsearch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Flattens document sources into rows of fields, keeping field names in the order they were first
// seen. Fields missing from a document are left blank.
type documentSet struct {
	fieldNames   []string
	fieldIndices map[string]int
	documents    []map[int]string
}

func (set *documentSet) add(source json.RawMessage) error {
	decoder := json.NewDecoder(bytes.NewReader(source))

	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delimiter, ok := token.(json.Delim); !ok || delimiter != '{' {
		return errors.New("document source is not a JSON object")
	}

	document := make(map[int]string)
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}
		fieldName, ok := token.(string)
		if !ok {
			return fmt.Errorf("expected field name, got '%v'", token)
		}

		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return fmt.Errorf("invalid value for field '%s': %w", fieldName, err)
		}

		field, err := formatField(value)
		if err != nil {
			return fmt.Errorf("invalid value for field '%s': %w", fieldName, err)
		}

		document[set.fieldIndex(fieldName)] = field
	}

	set.documents = append(set.documents, document)
	return nil
}

func (set *documentSet) fieldIndex(fieldName string) int {
	if set.fieldIndices == nil {
		set.fieldIndices = make(map[string]int)
	}

	index, ok := set.fieldIndices[fieldName]
	if !ok {
		index = len(set.fieldNames)
		set.fieldIndices[fieldName] = index
		set.fieldNames = append(set.fieldNames, fieldName)
	}
	return index
}

func (set *documentSet) rows() [][]string {
	rows := make([][]string, len(set.documents))
	for i, document := range set.documents {
		row := make([]string, len(set.fieldNames))
		for index, field := range document {
			row[index] = field
		}
		rows[i] = row
	}
	return rows
}

// Strings are unquoted and nulls become blank. Numbers and booleans keep their JSON text, as do
// nested objects and arrays.
func formatField(value json.RawMessage) (string, error) {
	value = bytes.TrimSpace(value)

	switch {
	case len(value) == 0 || bytes.Equal(value, []byte("null")):
		return "", nil
	case value[0] == '"':
		var text string
		if err := json.Unmarshal(value, &text); err != nil {
			return "", err
		}
		return text, nil
	default:
		return string(value), nil
	}
}
