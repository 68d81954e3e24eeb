package position

import (
	"strconv"

	"github.com/frahmantamala/trackit/internal/core/listing"
	positionDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/position"
)

const Collection = "positions"

var Schema = listing.Schema[positionDatamodel.Position]{
	Filters: map[string]listing.Predicate[positionDatamodel.Position]{
		"salle": func(p positionDatamodel.Position, value string) bool {
			id, err := strconv.ParseInt(value, 10, 64)
			return err == nil && p.SalleID == id
		},
		"occupe": listing.Bool(func(p positionDatamodel.Position) bool { return p.Occupe }),
	},
	Sorts: map[string]listing.Comparator[positionDatamodel.Position]{
		"libelle": listing.Strings(func(p positionDatamodel.Position) string { return p.Libelle }),
		"port":    listing.Strings(func(p positionDatamodel.Position) string { return p.Port }),
		"salle":   bySalle,
	},
	DefaultSort: "libelle",
	Search: func(p positionDatamodel.Position) []string {
		return []string{p.Libelle, p.Port, p.SalleNom}
	},
}

// bySalle orders by room name, falling back to the room id when the
// backend did not join the name.
func bySalle(a, b positionDatamodel.Position) int {
	if c := listing.Strings(func(p positionDatamodel.Position) string { return p.SalleNom })(a, b); c != 0 {
		return c
	}
	return listing.Ints(func(p positionDatamodel.Position) int64 { return p.SalleID })(a, b)
}
