package affectation

import (
	"strconv"
	"time"

	affectationDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/affectation"
	"github.com/frahmantamala/trackit/internal/core/listing"
)

const Collection = "affectations"

// NewSchema builds the list schema. now decides which affectations count as
// still running.
func NewSchema(now func() time.Time) listing.Schema[affectationDatamodel.Affectation] {
	return listing.Schema[affectationDatamodel.Affectation]{
		Filters: map[string]listing.Predicate[affectationDatamodel.Affectation]{
			"active": listing.Bool(func(a affectationDatamodel.Affectation) bool { return a.Active(now()) }),
			"matricule": listing.Equal(func(a affectationDatamodel.Affectation) string { return a.Matricule }),
			"position": func(a affectationDatamodel.Affectation, value string) bool {
				return a.PositionID != nil && strconv.FormatInt(*a.PositionID, 10) == value
			},
			"numero_serie": listing.Contains(func(a affectationDatamodel.Affectation) string { return a.NumeroSerie }),
		},
		Sorts: map[string]listing.Comparator[affectationDatamodel.Affectation]{
			"id":         listing.Ints(func(a affectationDatamodel.Affectation) int64 { return a.ID }),
			"date_debut": listing.Times(func(a affectationDatamodel.Affectation) time.Time { return a.DateDebut.Time }),
			"date_fin":   listing.Times(func(a affectationDatamodel.Affectation) time.Time { return a.DateFin.Time }),
		},
		DefaultSort: "date_debut",
		DefaultDir:  listing.Desc,
		Search: func(a affectationDatamodel.Affectation) []string {
			return []string{a.Matricule, a.NumeroSerie}
		},
	}
}
