package analysis

import (
	"fmt"

	"hermannm.dev/datadash/table"
	"hermannm.dev/wrap"
)

type dimensionFilter struct {
	name     string
	column   *table.Column
	selected map[string]struct{}
	// Empty unless the dimension only applies to a subset of rows.
	appliesOnlyWhere []boundCondition
}

// A row passes if its value is present and, when the dimension is restricted, among the selected
// values. Missing values never pass, so an unrestricted dimension behaves exactly like selecting
// every candidate value.
func (filter dimensionFilter) matches(row int) bool {
	key, present := filter.column.Key(row)
	if !present {
		return false
	}
	if filter.selected == nil {
		return true
	}
	_, ok := filter.selected[key]
	return ok
}

// Returns a view of the rows of the table that match every dimension of the selection, in table
// order. Dimensions with an AppliesOnlyWhere condition are applied after all other dimensions, and
// only restrict the rows matching their condition. Expects the table returned by DeriveColumns.
func ApplyFilters(derived *table.Table, dimensions []Dimension, selection Selection) (
	table.View,
	error,
) {
	if err := selection.Validate(dimensions); err != nil {
		return table.View{}, err
	}

	var primary, conditional []dimensionFilter

	for _, dimension := range dimensions {
		column, ok := derived.Column(dimension.FilterColumn())
		if !ok {
			return table.View{}, fmt.Errorf(
				"missing column '%s' for dimension '%s'",
				dimension.FilterColumn(),
				dimension.Name,
			)
		}

		filter := dimensionFilter{name: dimension.Name, column: column}
		if selection.IsRestricted(dimension.Name) {
			filter.selected = make(map[string]struct{}, len(selection[dimension.Name]))
			for _, value := range selection[dimension.Name] {
				filter.selected[value] = struct{}{}
			}
		}

		if dimension.AppliesOnlyWhere == nil {
			primary = append(primary, filter)
			continue
		}

		conditions, err := bindConditions(derived, []Condition{*dimension.AppliesOnlyWhere})
		if err != nil {
			return table.View{}, wrap.Errorf(
				err,
				"invalid condition on dimension '%s'",
				dimension.Name,
			)
		}
		filter.appliesOnlyWhere = conditions
		conditional = append(conditional, filter)
	}

	view := derived.All().Where(func(row int) bool {
		for _, filter := range primary {
			if !filter.matches(row) {
				return false
			}
		}
		return true
	})

	for _, filter := range conditional {
		view = view.Where(func(row int) bool {
			if !matchesAll(filter.appliesOnlyWhere, row) {
				return true
			}
			return filter.matches(row)
		})
	}

	return view, nil
}
