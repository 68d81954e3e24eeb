package user

import (
	"github.com/frahmantamala/trackit/internal/core/crud"
	"github.com/frahmantamala/trackit/internal/core/datamodel/utilisateur"
)

type Service struct {
	*crud.Service[utilisateur.Utilisateur]
}

func NewService(d crud.Deps) *Service {
	return &Service{Service: crud.New(d, Collection, Schema)}
}
