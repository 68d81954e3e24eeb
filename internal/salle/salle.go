package salle

import (
	"strconv"

	"github.com/frahmantamala/trackit/internal/core/listing"
	salleDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/salle"
)

const Collection = "salles"

var Schema = listing.Schema[salleDatamodel.Salle]{
	Filters: map[string]listing.Predicate[salleDatamodel.Salle]{
		"site": listing.Equal(func(s salleDatamodel.Salle) string { return s.Site }),
		"etage": func(s salleDatamodel.Salle, value string) bool {
			n, err := strconv.Atoi(value)
			return err == nil && s.Etage == n
		},
	},
	Sorts: map[string]listing.Comparator[salleDatamodel.Salle]{
		"nom":   listing.Strings(func(s salleDatamodel.Salle) string { return s.Nom }),
		"etage": listing.Ints(func(s salleDatamodel.Salle) int64 { return int64(s.Etage) }),
		"site":  listing.Strings(func(s salleDatamodel.Salle) string { return s.Site }),
	},
	DefaultSort: "nom",
	Search: func(s salleDatamodel.Salle) []string {
		return []string{s.Nom, s.Site}
	},
}
