package salle

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/trackit/internal/core/crud"
	salleDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/salle"
	"github.com/frahmantamala/trackit/internal/transport"
)

type Handler struct {
	*crud.Handler[salleDatamodel.Salle, SalleDTO, SalleDTO]
	Service *Service
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service) *Handler {
	return &Handler{
		Handler: crud.NewHandler[salleDatamodel.Salle, SalleDTO, SalleDTO](baseHandler, service.Service),
		Service: service,
	}
}

func (h *Handler) Routes(r chi.Router) {
	h.Handler.Routes(r)
	r.Get("/{key}/positions", h.GetPositions)
}

func (h *Handler) GetPositions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "key")
	positions, err := h.Service.Positions(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, PositionsResponse{SalleID: id, Positions: positions})
}
