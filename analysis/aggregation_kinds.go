package analysis

import "hermannm.dev/enumnames"

type AggregationKind uint8

const (
	AggregationScalarSum AggregationKind = iota + 1
	AggregationScalarMean
	AggregationRowCount
	AggregationGroupSum
	AggregationGroupMean
	AggregationGroupCount
	AggregationColumnSum
	AggregationCountOverTime
	AggregationPivotSum
	AggregationRowNormalizedCrosstab
	AggregationDistribution
	AggregationDurationDerived
	AggregationGroupQuartiles
	AggregationScatter
)

var aggregationKindNames = enumnames.NewMap(map[AggregationKind]string{
	AggregationScalarSum:             "SCALAR_SUM",
	AggregationScalarMean:            "SCALAR_MEAN",
	AggregationRowCount:              "ROW_COUNT",
	AggregationGroupSum:              "GROUP_SUM",
	AggregationGroupMean:             "GROUP_MEAN",
	AggregationGroupCount:            "GROUP_COUNT",
	AggregationColumnSum:             "COLUMN_SUM",
	AggregationCountOverTime:         "COUNT_OVER_TIME",
	AggregationPivotSum:              "PIVOT_SUM",
	AggregationRowNormalizedCrosstab: "ROW_NORMALIZED_CROSSTAB",
	AggregationDistribution:          "DISTRIBUTION",
	AggregationDurationDerived:       "DURATION_DERIVED",
	AggregationGroupQuartiles:        "GROUP_QUARTILES",
	AggregationScatter:               "SCATTER",
})

func (kind AggregationKind) IsValid() bool {
	return aggregationKindNames.ContainsEnumValue(kind)
}

func (kind AggregationKind) String() string {
	return aggregationKindNames.GetNameOrFallback(kind, "INVALID_AGGREGATION_KIND")
}

func (kind AggregationKind) MarshalJSON() ([]byte, error) {
	return aggregationKindNames.MarshalToNameJSON(kind)
}

func (kind *AggregationKind) UnmarshalJSON(bytes []byte) error {
	return aggregationKindNames.UnmarshalFromNameJSON(bytes, kind)
}
