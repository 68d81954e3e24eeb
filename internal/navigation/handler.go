package navigation

import (
	"net/http"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
}

func NewHandler(baseHandler *transport.BaseHandler) *Handler {
	return &Handler{BaseHandler: baseHandler}
}

// Guard answers GET /console/guard?path=/materiels for the browser router.
// It runs with an optional session.
func (h *Handler) Guard(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = "/"
	}
	d := Guard(path, errors.PrincipalFromContext(r.Context()))
	if !d.Allowed {
		h.Logger.Debug("Guard: redirecting", "path", path, "redirect", d.Redirect)
	}
	h.WriteJSON(w, http.StatusOK, d)
}

type SidebarResponse struct {
	Items []Item `json:"items"`
}

func (h *Handler) Sidebar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items := Sidebar(errors.PrincipalFromContext(ctx), errors.LocaleFromContext(ctx), r.URL.Query().Get("path"), h.Locale)
	h.WriteJSON(w, http.StatusOK, SidebarResponse{Items: items})
}
