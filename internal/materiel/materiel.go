package materiel

import (
	"time"

	materielDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/materiel"
	"github.com/frahmantamala/trackit/internal/core/listing"
	"github.com/frahmantamala/trackit/internal/export"
)

const Collection = "materiels"

func status(m materielDatamodel.Materiel) string { return string(m.Statut) }

var Schema = listing.Schema[materielDatamodel.Materiel]{
	Filters: map[string]listing.Predicate[materielDatamodel.Materiel]{
		"statut":    listing.Equal(status),
		"categorie": listing.Equal(func(m materielDatamodel.Materiel) string { return m.Categorie }),
		"marque":    listing.Equal(func(m materielDatamodel.Materiel) string { return m.Marque }),
		"assigned":  listing.Bool(materielDatamodel.Materiel.Assigned),
	},
	Sorts: map[string]listing.Comparator[materielDatamodel.Materiel]{
		"numero_serie": listing.Strings(materielDatamodel.Materiel.Key),
		"marque":       listing.Strings(func(m materielDatamodel.Materiel) string { return m.Marque }),
		"modele":       listing.Strings(func(m materielDatamodel.Materiel) string { return m.Modele }),
		"categorie":    listing.Strings(func(m materielDatamodel.Materiel) string { return m.Categorie }),
		"statut":       listing.Strings(status),
		"date_ajout":   listing.Times(func(m materielDatamodel.Materiel) time.Time { return m.DateAjout.Time }),
	},
	DefaultSort: "numero_serie",
	Search: func(m materielDatamodel.Materiel) []string {
		return []string{m.NumeroSerie, m.Marque, m.Modele, m.Categorie}
	},
}

// Columns is the spreadsheet layout shared by the equipment and inventory
// exports.
var Columns = []export.Column[materielDatamodel.Materiel]{
	{Header: "numero_serie", Width: 22, Value: func(m materielDatamodel.Materiel) interface{} { return m.NumeroSerie }},
	{Header: "marque", Width: 18, Value: func(m materielDatamodel.Materiel) interface{} { return m.Marque }},
	{Header: "modele", Width: 22, Value: func(m materielDatamodel.Materiel) interface{} { return m.Modele }},
	{Header: "categorie", Width: 18, Value: func(m materielDatamodel.Materiel) interface{} { return m.Categorie }},
	{Header: "statut", Width: 16, Enum: true, Value: func(m materielDatamodel.Materiel) interface{} { return string(m.Statut) }},
	{Header: "date_ajout", Width: 14, Value: func(m materielDatamodel.Materiel) interface{} { return m.DateAjout.String() }},
}
