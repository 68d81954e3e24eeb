package materiel

import materielDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/materiel"

type MaterielDTO struct {
	NumeroSerie string                   `json:"numero_serie" validate:"required"`
	Marque      string                   `json:"marque" validate:"required"`
	Modele      string                   `json:"modele" validate:"required"`
	Categorie   string                   `json:"categorie" validate:"required"`
	Statut      string                   `json:"statut" validate:"required,oneof=disponible affecte en_panne hors_service"`
	DateAjout   string                   `json:"date_ajout,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Specs       *materielDatamodel.Specs `json:"specs,omitempty"`
	PositionID  *int64                   `json:"position_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateMaterielDTO struct {
	Marque     string                   `json:"marque" validate:"required"`
	Modele     string                   `json:"modele" validate:"required"`
	Categorie  string                   `json:"categorie" validate:"required"`
	Statut     string                   `json:"statut" validate:"required,oneof=disponible affecte en_panne hors_service"`
	Specs      *materielDatamodel.Specs `json:"specs,omitempty"`
	PositionID *int64                   `json:"position_id,omitempty" validate:"omitempty,gt=0"`
}

type BulkRowDTO struct {
	NumeroSerie string `json:"numero_serie" form:"numero_serie" validate:"required"`
}

// BulkDTO adds several units of one model. It is read from JSON or from a
// url-encoded form (rows[0].numero_serie=...).
type BulkDTO struct {
	Marque    string       `json:"marque" form:"marque" validate:"required"`
	Modele    string       `json:"modele" form:"modele" validate:"required"`
	Categorie string       `json:"categorie" form:"categorie" validate:"required"`
	Statut    string       `json:"statut" form:"statut" validate:"omitempty,oneof=disponible affecte en_panne hors_service"`
	Rows      []BulkRowDTO `json:"rows" form:"rows" validate:"required,min=1,max=100,dive"`
}

// Materiel is the backend payload for row i.
func (b BulkDTO) Materiel(i int, today string) MaterielDTO {
	statut := b.Statut
	if statut == "" {
		statut = string(materielDatamodel.StatusDisponible)
	}
	return MaterielDTO{
		NumeroSerie: b.Rows[i].NumeroSerie,
		Marque:      b.Marque,
		Modele:      b.Modele,
		Categorie:   b.Categorie,
		Statut:      statut,
		DateAjout:   today,
	}
}

type BulkFailure struct {
	NumeroSerie string `json:"numero_serie"`
	Code        string `json:"code"`
	Message     string `json:"message"`
}

type BulkResult struct {
	Created []materielDatamodel.Materiel `json:"created"`
	Failed  []BulkFailure                `json:"failed"`
	Total   int                          `json:"total"`
}
