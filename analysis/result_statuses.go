package analysis

import "hermannm.dev/enumnames"

type ResultStatus uint8

const (
	// The result carries a chart.
	StatusReady ResultStatus = iota + 1
	// The result carries a single number, either from a scalar aggregation or from a series
	// aggregation that collapsed to one bucket.
	StatusScalar
	// Nothing to show for the current selection. The result carries a message instead.
	StatusPlaceholder
	// The aggregation could not be computed for this dataset.
	StatusFailed
)

var resultStatusNames = enumnames.NewMap(map[ResultStatus]string{
	StatusReady:       "READY",
	StatusScalar:      "SCALAR",
	StatusPlaceholder: "PLACEHOLDER",
	StatusFailed:      "FAILED",
})

func (status ResultStatus) IsValid() bool {
	return resultStatusNames.ContainsEnumValue(status)
}

func (status ResultStatus) String() string {
	return resultStatusNames.GetNameOrFallback(status, "INVALID_RESULT_STATUS")
}

func (status ResultStatus) MarshalJSON() ([]byte, error) {
	return resultStatusNames.MarshalToNameJSON(status)
}

func (status *ResultStatus) UnmarshalJSON(bytes []byte) error {
	return resultStatusNames.UnmarshalFromNameJSON(bytes, status)
}
