package inventaire

import (
	"strconv"

	"github.com/frahmantamala/trackit/internal/core/datamodel"
	"github.com/frahmantamala/trackit/internal/core/datamodel/materiel"
)

// Inventaire is a physical stock-take of one room.
type Inventaire struct {
	ID          int64               `json:"id"`
	Date        datamodel.Date      `json:"date"`
	SalleID     int64               `json:"salle_id"`
	SalleNom    string              `json:"salle_nom,omitempty"`
	Responsable string              `json:"responsable"`
	Valide      bool                `json:"valide"`
	Materiels   []materiel.Materiel `json:"materiels,omitempty"`
}

func (i Inventaire) Key() string {
	return strconv.FormatInt(i.ID, 10)
}
