package dashboard

import (
	"net/http"

	errors "github.com/frahmantamala/trackit/internal"
	dashboardDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/dashboard"
	"github.com/frahmantamala/trackit/internal/navigation"
	"github.com/frahmantamala/trackit/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service) *Handler {
	return &Handler{BaseHandler: baseHandler, Service: service}
}

type Response struct {
	Stats   *dashboardDatamodel.Stats `json:"stats"`
	Sidebar []navigation.Item         `json:"sidebar"`
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats, err := h.Service.Stats(ctx)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	sidebar := navigation.Sidebar(errors.PrincipalFromContext(ctx), errors.LocaleFromContext(ctx), navigation.DashboardPath, h.Locale)
	h.WriteJSON(w, http.StatusOK, Response{Stats: stats, Sidebar: sidebar})
}
