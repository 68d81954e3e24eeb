package materiel

import "github.com/frahmantamala/trackit/internal/core/datamodel"

type Status string

const (
	StatusDisponible  Status = "disponible"
	StatusAffecte     Status = "affecte"
	StatusEnPanne     Status = "en_panne"
	StatusHorsService Status = "hors_service"
)

var Statuses = []Status{StatusDisponible, StatusAffecte, StatusEnPanne, StatusHorsService}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Specs only exist for computers.
type Specs struct {
	Processeur          string `json:"processeur,omitempty"`
	RAM                 string `json:"ram,omitempty"`
	Stockage            string `json:"stockage,omitempty"`
	SystemeExploitation string `json:"systeme_exploitation,omitempty"`
}

type Materiel struct {
	NumeroSerie   string         `json:"numero_serie"`
	Marque        string         `json:"marque"`
	Modele        string         `json:"modele"`
	Categorie     string         `json:"categorie"`
	Statut        Status         `json:"statut"`
	DateAjout     datamodel.Date `json:"date_ajout"`
	Specs         *Specs         `json:"specs,omitempty"`
	AffectationID *int64         `json:"affectation_id,omitempty"`
	PositionID    *int64         `json:"position_id,omitempty"`
	IncidentID    *int64         `json:"incident_id,omitempty"`
}

func (m Materiel) Key() string {
	return m.NumeroSerie
}

func (m Materiel) Assigned() bool {
	return m.AffectationID != nil || m.Statut == StatusAffecte
}
