package datasets

import (
	"fmt"
	"slices"

	"hermannm.dev/datadash/analysis"
	"hermannm.dev/wrap"
)

// Every dataset the dashboard can show, in menu order.
var Catalog = []analysis.Dataset{
	videoGameSales,
	microenterpriseTaxpayers,
	couples,
	electricVehicles,
	cybersecurityThreats,
	airPollution,
	datingAppBehavior,
}

// Checks that dataset IDs are unique and that every descriptor is complete. Column references are
// checked later, once each table is loaded.
func ValidateCatalog(catalog []analysis.Dataset) error {
	var errs []error
	seen := make(map[string]struct{}, len(catalog))

	for _, dataset := range catalog {
		if _, duplicate := seen[dataset.ID]; duplicate {
			errs = append(errs, fmt.Errorf("duplicate dataset ID '%s'", dataset.ID))
		}
		seen[dataset.ID] = struct{}{}

		if dataset.ID == "" || dataset.Title == "" || dataset.Source == "" {
			err := fmt.Errorf("dataset '%s' is missing ID, title or source", dataset.ID)
			errs = append(errs, err)
		}

		for _, aggregation := range slices.Concat(dataset.Metrics, dataset.Charts) {
			if !aggregation.Kind.IsValid() {
				errs = append(errs, fmt.Errorf(
					"aggregation '%s' in dataset '%s' has invalid kind",
					aggregation.Name, dataset.ID,
				))
			}
		}
	}

	if len(errs) != 0 {
		return wrap.Errors("invalid dataset catalog", errs...)
	}
	return nil
}
