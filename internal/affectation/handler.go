package affectation

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/trackit/internal/core/crud"
	affectationDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/affectation"
	"github.com/frahmantamala/trackit/internal/transport"
)

type Handler struct {
	*crud.Handler[affectationDatamodel.Affectation, AffectationDTO, AffectationDTO]
	Service *Service
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service) *Handler {
	return &Handler{
		Handler: crud.NewHandler[affectationDatamodel.Affectation, AffectationDTO, AffectationDTO](baseHandler, service.Service),
		Service: service,
	}
}

func (h *Handler) Routes(r chi.Router) {
	h.Handler.Routes(r)
	r.Post("/{key}/close", h.Close)
}

func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	var form CloseDTO
	if err := h.DecodeOptionalJSON(r, &form); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	id := chi.URLParam(r, "key")
	item, err := h.Service.Close(r.Context(), id, form)
	if err != nil {
		h.Logger.Warn("Close: failed", "id", id, "error", err)
		h.HandleServiceError(w, r, err)
		return
	}
	if item.ID == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.WriteJSON(w, http.StatusOK, item)
}
