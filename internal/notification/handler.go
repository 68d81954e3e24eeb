package notification

import (
	"net/http"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Center *Center
}

func NewHandler(baseHandler *transport.BaseHandler, center *Center) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Center:      center,
	}
}

type ToastsResponse struct {
	Toasts []Toast `json:"toasts"`
}

// GetToasts hands the pending toasts to the browser and forgets them.
func (h *Handler) GetToasts(w http.ResponseWriter, r *http.Request) {
	toasts, err := h.Center.Drain(r.Context(), errors.SessionIDFromContext(r.Context()))
	if err != nil {
		h.Logger.Error("GetToasts: failed to drain queue", "error", err)
		h.HandleServiceError(w, r, errors.NewInternalError("failed to read notifications", err))
		return
	}
	h.WriteJSON(w, http.StatusOK, ToastsResponse{Toasts: toasts})
}
