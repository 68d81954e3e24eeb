package incident

type IncidentDTO struct {
	Type         string `json:"type" validate:"required"`
	Statut       string `json:"statut" validate:"required,oneof=ouvert en_cours resolu ferme"`
	Description  string `json:"description" validate:"required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	NumeroSerie  string `json:"numero_serie,omitempty"`
	InventaireID *int64 `json:"inventaire_id,omitempty"`
	Matricule    string `json:"matricule,omitempty"`
}
