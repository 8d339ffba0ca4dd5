package analysis

import (
	"fmt"
	"slices"
	"strings"

	"hermannm.dev/datadash/table"
	"hermannm.dev/wrap"
)

const (
	OthersBucket = "Others"

	defaultTopNLimit = 10
)

type Dimension struct {
	Name   string        `json:"name"`
	Label  string        `json:"label"`
	Kind   DimensionKind `json:"kind"`
	Column string        `json:"column"`
	// Numeric column to rank categories by, for DimensionTopN.
	RankBy string `json:"rankBy,omitempty"`
	// Number of categories kept by DimensionTopN, defaulting to 10.
	Limit int `json:"limit,omitempty"`
	// If set, the dimension only restricts rows matching the condition, and all other rows are
	// exempt from it.
	AppliesOnlyWhere *Condition `json:"appliesOnlyWhere,omitempty"`
}

// The column the dimension filters on. Derived dimensions filter on a column named after the
// dimension itself, added by DeriveColumns.
func (dimension Dimension) FilterColumn() string {
	if dimension.Kind == DimensionCategorical {
		return dimension.Column
	}
	return dimension.Name
}

func (dimension Dimension) topNLimit() int {
	if dimension.Limit <= 0 {
		return defaultTopNLimit
	}
	return dimension.Limit
}

// Matches rows where the value key of Column equals Equals.
type Condition struct {
	Column string `json:"column"`
	Equals string `json:"equals"`
}

func (condition Condition) String() string {
	return fmt.Sprintf("%s = '%s'", condition.Column, condition.Equals)
}

type boundCondition struct {
	column *table.Column
	equals string
}

func bindConditions(source *table.Table, conditions []Condition) ([]boundCondition, error) {
	bound := make([]boundCondition, len(conditions))
	for i, condition := range conditions {
		column, ok := source.Column(condition.Column)
		if !ok {
			return nil, fmt.Errorf(
				"unknown column '%s' in condition %v",
				condition.Column,
				condition,
			)
		}
		bound[i] = boundCondition{column: column, equals: condition.Equals}
	}
	return bound, nil
}

func matchesAll(conditions []boundCondition, row int) bool {
	for _, condition := range conditions {
		key, present := condition.column.Key(row)
		if !present || key != condition.equals {
			return false
		}
	}
	return true
}

// Selected value keys per dimension name. A dimension that is absent or has no values selected is
// unrestricted.
type Selection map[string][]string

func (selection Selection) IsRestricted(dimension string) bool {
	return len(selection[dimension]) > 0
}

// Returns an error if the selection names dimensions that are not among the given ones.
func (selection Selection) Validate(dimensions []Dimension) error {
	var unknown []string
	for name := range selection {
		if !slices.ContainsFunc(dimensions, func(dimension Dimension) bool {
			return dimension.Name == name
		}) {
			unknown = append(unknown, name)
		}
	}

	if len(unknown) != 0 {
		slices.Sort(unknown)
		return fmt.Errorf("unknown filter dimensions: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// Checks that the dimension descriptors are well-formed and refer to existing columns of the given
// raw table.
func ValidateDimensions(source *table.Table, dimensions []Dimension) error {
	var errs []error
	names := make(map[string]struct{}, len(dimensions))

	for _, dimension := range dimensions {
		if _, duplicate := names[dimension.Name]; duplicate {
			errs = append(errs, fmt.Errorf("duplicate dimension name '%s'", dimension.Name))
		}
		names[dimension.Name] = struct{}{}

		if !dimension.Kind.IsValid() {
			errs = append(errs, fmt.Errorf("dimension '%s' has invalid kind", dimension.Name))
			continue
		}

		column, ok := source.Column(dimension.Column)
		if !ok {
			errs = append(
				errs,
				fmt.Errorf(
					"dimension '%s' refers to unknown column '%s'",
					dimension.Name,
					dimension.Column,
				),
			)
			continue
		}

		switch dimension.Kind {
		case DimensionYear:
			if column.DataType != table.DataTypeDate && !column.DataType.IsNumeric() {
				errs = append(errs, fmt.Errorf(
					"year dimension '%s' needs a date or numeric column, but '%s' is %v",
					dimension.Name,
					column.Name,
					column.DataType,
				))
			}
		case DimensionTopN:
			rankBy, ok := source.Column(dimension.RankBy)
			if !ok || !rankBy.DataType.IsNumeric() {
				errs = append(errs, fmt.Errorf(
					"top-N dimension '%s' needs a numeric column to rank by, got '%s'",
					dimension.Name,
					dimension.RankBy,
				))
			}
		}
	}

	if len(errs) != 0 {
		return wrap.Errors("invalid filter dimensions", errs...)
	}
	return nil
}
