package incident

import (
	"time"

	incidentDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/incident"
	"github.com/frahmantamala/trackit/internal/core/listing"
)

const Collection = "incidents"

func dateOf(i incidentDatamodel.Incident) time.Time { return i.Date.Time }

var Schema = listing.Schema[incidentDatamodel.Incident]{
	Filters: map[string]listing.Predicate[incidentDatamodel.Incident]{
		"type":         listing.Equal(func(i incidentDatamodel.Incident) string { return i.Type }),
		"statut":       listing.Equal(func(i incidentDatamodel.Incident) string { return string(i.Statut) }),
		"from":         listing.Since(dateOf),
		"to":           listing.Until(dateOf),
		"numero_serie": listing.Contains(func(i incidentDatamodel.Incident) string { return i.NumeroSerie }),
		"ouvert":       listing.Bool(func(i incidentDatamodel.Incident) bool { return i.Statut.Open() }),
	},
	Sorts: map[string]listing.Comparator[incidentDatamodel.Incident]{
		"date":   listing.Times(dateOf),
		"statut": byStatus,
		"type":   listing.Strings(func(i incidentDatamodel.Incident) string { return i.Type }),
	},
	DefaultSort: "date",
	DefaultDir:  listing.Desc,
	Search: func(i incidentDatamodel.Incident) []string {
		return []string{i.Type, i.Description, i.NumeroSerie, i.Matricule}
	},
}

// byStatus follows the workflow order rather than the alphabet.
func byStatus(a, b incidentDatamodel.Incident) int {
	rank := func(s incidentDatamodel.Status) int {
		for i, v := range incidentDatamodel.Statuses {
			if v == s {
				return i
			}
		}
		return len(incidentDatamodel.Statuses)
	}
	return rank(a.Statut) - rank(b.Statut)
}
