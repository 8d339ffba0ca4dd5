package analysis

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"hermannm.dev/datadash/table"
	"hermannm.dev/wrap"
)

// The candidate values of one filter dimension.
type Domain struct {
	Dimension string        `json:"dimension"`
	Label     string        `json:"label"`
	Kind      DimensionKind `json:"kind"`
	Values    []string      `json:"values"`
}

type Domains []Domain

func (domains Domains) Values(dimension string) []string {
	for _, domain := range domains {
		if domain.Dimension == dimension {
			return domain.Values
		}
	}
	return nil
}

// Adds the columns that YEAR and TOP_N dimensions filter on. Top-N rankings are computed over the
// whole given table, so they do not change with the selection.
func DeriveColumns(source *table.Table, dimensions []Dimension) (*table.Table, error) {
	if err := ValidateDimensions(source, dimensions); err != nil {
		return nil, err
	}

	derived := source
	for _, dimension := range dimensions {
		var column *table.Column
		switch dimension.Kind {
		case DimensionYear:
			sourceColumn, _ := source.Column(dimension.Column)
			column = yearColumn(dimension.Name, sourceColumn)
		case DimensionTopN:
			categories, _ := source.Column(dimension.Column)
			rankBy, _ := source.Column(dimension.RankBy)
			top := TopCategories(categories, rankBy, dimension.topNLimit())
			column = bucketColumn(dimension.Name, categories, top)
		default:
			continue
		}

		var err error
		derived, err = derived.WithColumn(column)
		if err != nil {
			return nil, wrap.Errorf(err, "failed to add column for dimension '%s'", dimension.Name)
		}
	}

	return derived, nil
}

func yearColumn(name string, source *table.Column) *table.Column {
	return source.Map(name, table.DataTypeInt, func(value table.Value) table.Value {
		if !value.Present {
			return value
		}
		if source.DataType == table.DataTypeDate {
			return table.NumberValue(float64(value.Date.Year()))
		}
		if math.IsNaN(value.Number) || math.IsInf(value.Number, 0) {
			return table.Missing()
		}
		return table.NumberValue(math.Trunc(value.Number))
	})
}

// Returns the names of the limit categories with the largest sums of rankBy, largest first.
// Categories with equal sums are ordered by name. Missing categories and missing rankBy values are
// left out of the ranking.
func TopCategories(categories *table.Column, rankBy *table.Column, limit int) []string {
	sums := make(map[string]float64)
	for row := 0; row < categories.Len(); row++ {
		category, present := categories.Key(row)
		if !present {
			continue
		}
		if _, seen := sums[category]; !seen {
			sums[category] = 0
		}
		if number, ok := rankBy.Number(row); ok {
			sums[category] += number
		}
	}

	names := make([]string, 0, len(sums))
	for name := range sums {
		names = append(names, name)
	}
	slices.Sort(names)
	slices.SortStableFunc(names, func(a, b string) int {
		return cmp.Compare(sums[b], sums[a])
	})

	if len(names) > limit {
		names = names[:limit]
	}
	return names
}

func bucketColumn(name string, categories *table.Column, top []string) *table.Column {
	inTop := make(map[string]struct{}, len(top))
	for _, category := range top {
		inTop[category] = struct{}{}
	}

	values := make([]table.Value, categories.Len())
	for row := range values {
		category, present := categories.Key(row)
		if _, ok := inTop[category]; present && ok {
			values[row] = table.TextValue(category)
		} else {
			values[row] = table.TextValue(OthersBucket)
		}
	}
	return table.NewColumn(name, table.DataTypeText, values)
}

// Returns the sorted, distinct, non-missing values of every dimension's filter column. Expects the
// table returned by DeriveColumns.
func DeriveOptions(derived *table.Table, dimensions []Dimension) (Domains, error) {
	domains := make(Domains, 0, len(dimensions))

	for _, dimension := range dimensions {
		column, ok := derived.Column(dimension.FilterColumn())
		if !ok {
			return nil, fmt.Errorf(
				"missing column '%s' for dimension '%s'",
				dimension.FilterColumn(),
				dimension.Name,
			)
		}

		values := distinctSortedKeys(column, derived.All().RowIndices())
		if dimension.Kind == DimensionTopN && !slices.Contains(values, OthersBucket) {
			values = append(values, OthersBucket)
			slices.Sort(values)
		}

		domains = append(domains, Domain{
			Dimension: dimension.Name,
			Label:     dimension.Label,
			Kind:      dimension.Kind,
			Values:    values,
		})
	}

	return domains, nil
}

// Distinct keys of the given rows of the column, ordered numerically for numeric and date columns
// and lexically otherwise.
func distinctSortedKeys(column *table.Column, rows []int) []string {
	type entry struct {
		key   string
		value table.Value
	}

	seen := make(map[string]struct{})
	var entries []entry

	for _, row := range rows {
		key, present := column.Key(row)
		if !present {
			continue
		}
		if _, duplicate := seen[key]; duplicate {
			continue
		}
		seen[key] = struct{}{}
		entries = append(entries, entry{key: key, value: column.Value(row)})
	}

	slices.SortFunc(entries, func(a, b entry) int {
		switch {
		case column.DataType.IsNumeric():
			return cmp.Compare(a.value.Number, b.value.Number)
		case column.DataType == table.DataTypeDate:
			return a.value.Date.Compare(b.value.Date)
		default:
			return cmp.Compare(a.key, b.key)
		}
	})

	keys := make([]string, len(entries))
	for i, entry := range entries {
		keys[i] = entry.key
	}
	return keys
}
