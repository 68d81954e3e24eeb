package user

import (
	"github.com/frahmantamala/trackit/internal/core/crud"
	"github.com/frahmantamala/trackit/internal/core/datamodel/utilisateur"
	"github.com/frahmantamala/trackit/internal/transport"
)

// Handler must sit behind the admin middleware.
type Handler struct {
	*crud.Handler[utilisateur.Utilisateur, CreateUserDTO, UpdateUserDTO]
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service) *Handler {
	return &Handler{
		Handler: crud.NewHandler[utilisateur.Utilisateur, CreateUserDTO, UpdateUserDTO](baseHandler, service.Service),
	}
}
