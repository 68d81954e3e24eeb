package personne

import (
	"github.com/frahmantamala/trackit/internal/core/crud"
	personneDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/personne"
)

type Service struct {
	*crud.Service[personneDatamodel.Personne]
}

func NewService(d crud.Deps) *Service {
	return &Service{Service: crud.New(d, Collection, Schema)}
}
