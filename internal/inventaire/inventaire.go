package inventaire

import (
	"strconv"
	"time"

	inventaireDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/inventaire"
	"github.com/frahmantamala/trackit/internal/core/listing"
)

const Collection = "inventaires"

var Schema = listing.Schema[inventaireDatamodel.Inventaire]{
	Filters: map[string]listing.Predicate[inventaireDatamodel.Inventaire]{
		"salle": func(i inventaireDatamodel.Inventaire, value string) bool {
			return strconv.FormatInt(i.SalleID, 10) == value
		},
		"responsable": listing.Equal(func(i inventaireDatamodel.Inventaire) string { return i.Responsable }),
		"valide":      listing.Bool(func(i inventaireDatamodel.Inventaire) bool { return i.Valide }),
	},
	Sorts: map[string]listing.Comparator[inventaireDatamodel.Inventaire]{
		"date":  listing.Times(func(i inventaireDatamodel.Inventaire) time.Time { return i.Date.Time }),
		"salle": listing.Strings(salleLabel),
	},
	DefaultSort: "date",
	DefaultDir:  listing.Desc,
	Search: func(i inventaireDatamodel.Inventaire) []string {
		return []string{salleLabel(i), i.Responsable}
	},
}

// salleLabel falls back to the room id when the backend sent no name.
func salleLabel(i inventaireDatamodel.Inventaire) string {
	if i.SalleNom != "" {
		return i.SalleNom
	}
	return strconv.FormatInt(i.SalleID, 10)
}
