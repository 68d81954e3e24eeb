package personne

import (
	"github.com/frahmantamala/trackit/internal/core/listing"
	personneDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/personne"
)

const Collection = "personnes"

var Schema = listing.Schema[personneDatamodel.Personne]{
	Filters: map[string]listing.Predicate[personneDatamodel.Personne]{
		"projet": listing.Equal(func(p personneDatamodel.Personne) string { return p.Projet }),
		"poste":  listing.Equal(func(p personneDatamodel.Personne) string { return p.Poste }),
	},
	Sorts: map[string]listing.Comparator[personneDatamodel.Personne]{
		"matricule": listing.Strings(func(p personneDatamodel.Personne) string { return p.Matricule }),
		"nom":       listing.Strings(func(p personneDatamodel.Personne) string { return p.Nom + " " + p.Prenom }),
		"projet":    listing.Strings(func(p personneDatamodel.Personne) string { return p.Projet }),
	},
	DefaultSort: "nom",
	Search: func(p personneDatamodel.Personne) []string {
		return []string{p.Matricule, p.FullName(), p.Email, p.Poste, p.Projet}
	},
}
