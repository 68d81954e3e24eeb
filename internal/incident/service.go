package incident

import (
	"github.com/frahmantamala/trackit/internal/core/crud"
	incidentDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/incident"
)

type Service struct {
	*crud.Service[incidentDatamodel.Incident]
}

func NewService(d crud.Deps) *Service {
	return &Service{Service: crud.New(d, Collection, Schema)}
}
