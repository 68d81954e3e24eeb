package position

import (
	"github.com/frahmantamala/trackit/internal/core/crud"
	positionDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/position"
	"github.com/frahmantamala/trackit/internal/transport"
)

type Handler struct {
	*crud.Handler[positionDatamodel.Position, PositionDTO, PositionDTO]
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service) *Handler {
	return &Handler{
		Handler: crud.NewHandler[positionDatamodel.Position, PositionDTO, PositionDTO](baseHandler, service.Service),
	}
}
