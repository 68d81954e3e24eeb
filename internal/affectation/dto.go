package affectation

type AffectationDTO struct {
	DateDebut   string `json:"date_debut" validate:"required,datetime=2006-01-02"`
	DateFin     string `json:"date_fin,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Matricule   string `json:"matricule" validate:"required"`
	PositionID  *int64 `json:"position_id,omitempty" validate:"omitempty,gt=0"`
	NumeroSerie string `json:"numero_serie,omitempty"`
}

// CloseDTO ends an affectation. An empty date means today.
type CloseDTO struct {
	DateFin string `json:"date_fin" validate:"omitempty,datetime=2006-01-02"`
}
