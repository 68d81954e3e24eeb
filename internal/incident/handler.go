package incident

import (
	"github.com/frahmantamala/trackit/internal/core/crud"
	incidentDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/incident"
	"github.com/frahmantamala/trackit/internal/transport"
)

type Handler struct {
	*crud.Handler[incidentDatamodel.Incident, IncidentDTO, IncidentDTO]
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service) *Handler {
	return &Handler{
		Handler: crud.NewHandler[incidentDatamodel.Incident, IncidentDTO, IncidentDTO](baseHandler, service.Service),
	}
}
