package incident

import (
	"strconv"

	"github.com/frahmantamala/trackit/internal/core/datamodel"
)

type Status string

const (
	StatusOuvert  Status = "ouvert"
	StatusEnCours Status = "en_cours"
	StatusResolu  Status = "resolu"
	StatusFerme   Status = "ferme"
)

var Statuses = []Status{StatusOuvert, StatusEnCours, StatusResolu, StatusFerme}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Open reports whether the incident still needs work.
func (s Status) Open() bool {
	return s == StatusOuvert || s == StatusEnCours
}

type Incident struct {
	ID           int64          `json:"id"`
	Type         string         `json:"type"`
	Statut       Status         `json:"statut"`
	Description  string         `json:"description"`
	Date         datamodel.Date `json:"date"`
	NumeroSerie  string         `json:"numero_serie,omitempty"`
	InventaireID *int64         `json:"inventaire_id,omitempty"`
	Matricule    string         `json:"matricule,omitempty"`
}

func (i Incident) Key() string {
	return strconv.FormatInt(i.ID, 10)
}
