package salle

import positionDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/position"

type SalleDTO struct {
	Nom   string `json:"nom" validate:"required"`
	Etage int    `json:"etage"`
	Site  string `json:"site" validate:"required"`
}

type PositionsResponse struct {
	SalleID   string                       `json:"salle_id"`
	Positions []positionDatamodel.Position `json:"positions"`
}
