package affectation

import (
	"strconv"
	"time"

	"github.com/frahmantamala/trackit/internal/core/datamodel"
)

// Affectation binds equipment or a position to a person for a period. An
// empty end date means it is still running.
type Affectation struct {
	ID          int64          `json:"id"`
	DateDebut   datamodel.Date `json:"date_debut"`
	DateFin     datamodel.Date `json:"date_fin"`
	Matricule   string         `json:"matricule,omitempty"`
	PositionID  *int64         `json:"position_id,omitempty"`
	NumeroSerie string         `json:"numero_serie,omitempty"`
}

func (a Affectation) Key() string {
	return strconv.FormatInt(a.ID, 10)
}

func (a Affectation) Active(now time.Time) bool {
	return a.DateFin.IsZero() || a.DateFin.After(now)
}
