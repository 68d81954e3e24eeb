package position

import (
	"github.com/frahmantamala/trackit/internal/core/crud"
	positionDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/position"
)

type Service struct {
	*crud.Service[positionDatamodel.Position]
}

func NewService(d crud.Deps) *Service {
	return &Service{Service: crud.New(d, Collection, Schema)}
}
