// Package user is the admin page over console accounts (/utilisateurs).
package user

import (
	"github.com/frahmantamala/trackit/internal/core/datamodel/utilisateur"
	"github.com/frahmantamala/trackit/internal/core/listing"
)

const Collection = "utilisateurs"

var Schema = listing.Schema[utilisateur.Utilisateur]{
	Filters: map[string]listing.Predicate[utilisateur.Utilisateur]{
		"role": listing.Equal(func(u utilisateur.Utilisateur) string { return string(u.Role) }),
	},
	Sorts: map[string]listing.Comparator[utilisateur.Utilisateur]{
		"username": listing.Strings(func(u utilisateur.Utilisateur) string { return u.Username }),
		"role":     listing.Strings(func(u utilisateur.Utilisateur) string { return string(u.Role) }),
	},
	DefaultSort: "username",
	Search: func(u utilisateur.Utilisateur) []string {
		return []string{u.Username, u.Matricule, u.Nom, u.Prenom, u.Email}
	},
}
