package inventaire

import (
	"time"

	materielDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/materiel"
)

type InventaireDTO struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	SalleID     int64  `json:"salle_id" validate:"required,gt=0"`
	Responsable string `json:"responsable" validate:"required"`
}

// StartDTO opens a stock-take of a room. An empty date means today.
type StartDTO struct {
	SalleID     int64  `json:"salle_id" validate:"required,gt=0"`
	Responsable string `json:"responsable" validate:"required"`
	Date        string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type ScanDTO struct {
	NumeroSerie string `json:"numero_serie" validate:"required"`
}

type ValidateDTO struct {
	Materiels []string `json:"materiels"`
}

// CountSheet is what one session has scanned so far for an inventory.
type CountSheet struct {
	InventaireID string                       `json:"inventaire_id"`
	Materiels    []materielDatamodel.Materiel `json:"materiels"`
	UpdatedAt    time.Time                    `json:"updated_at"`
}

func (c CountSheet) Serials() []string {
	out := make([]string, len(c.Materiels))
	for i, m := range c.Materiels {
		out[i] = m.NumeroSerie
	}
	return out
}

func (c CountSheet) index(serial string) int {
	for i, m := range c.Materiels {
		if m.NumeroSerie == serial {
			return i
		}
	}
	return -1
}
