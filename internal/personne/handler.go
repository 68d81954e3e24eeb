package personne

import (
	"github.com/frahmantamala/trackit/internal/core/crud"
	personneDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/personne"
	"github.com/frahmantamala/trackit/internal/transport"
)

type Handler struct {
	*crud.Handler[personneDatamodel.Personne, PersonneDTO, PersonneDTO]
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service) *Handler {
	return &Handler{
		Handler: crud.NewHandler[personneDatamodel.Personne, PersonneDTO, PersonneDTO](baseHandler, service.Service),
	}
}
