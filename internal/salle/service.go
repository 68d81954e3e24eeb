package salle

import (
	"context"

	"github.com/frahmantamala/trackit/internal/core/crud"
	positionDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/position"
	salleDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/salle"
)

type Service struct {
	*crud.Service[salleDatamodel.Salle]
}

func NewService(d crud.Deps) *Service {
	return &Service{Service: crud.New(d, Collection, Schema)}
}

// Positions lists the connection points of one room.
func (s *Service) Positions(ctx context.Context, id string) ([]positionDatamodel.Position, error) {
	var out []positionDatamodel.Position
	if err := s.Client.Client().Get(ctx, s.Client.Path(id, "positions"), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []positionDatamodel.Position{}
	}
	return out, nil
}
