package analysis

import "hermannm.dev/enumnames"

type DimensionKind uint8

const (
	// Filters on the distinct values of a column as they are.
	DimensionCategorical DimensionKind = iota + 1
	// Filters on the year of a date column, or the truncated integer of a numeric column.
	DimensionYear
	// Filters on a bucket column holding the top categories by the sum of another column, with
	// every other category collapsed into OthersBucket.
	DimensionTopN
)

var dimensionKindNames = enumnames.NewMap(map[DimensionKind]string{
	DimensionCategorical: "CATEGORICAL",
	DimensionYear:        "YEAR",
	DimensionTopN:        "TOP_N",
})

func (kind DimensionKind) IsValid() bool {
	return dimensionKindNames.ContainsEnumValue(kind)
}

func (kind DimensionKind) String() string {
	return dimensionKindNames.GetNameOrFallback(kind, "INVALID_DIMENSION_KIND")
}

func (kind DimensionKind) MarshalJSON() ([]byte, error) {
	return dimensionKindNames.MarshalToNameJSON(kind)
}

func (kind *DimensionKind) UnmarshalJSON(bytes []byte) error {
	return dimensionKindNames.UnmarshalFromNameJSON(bytes, kind)
}
