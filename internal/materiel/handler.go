package materiel

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/core/crud"
	materielDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/materiel"
	"github.com/frahmantamala/trackit/internal/export"
	"github.com/frahmantamala/trackit/internal/transport"
)

type Handler struct {
	*crud.Handler[materielDatamodel.Materiel, MaterielDTO, UpdateMaterielDTO]
	Service *Service
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service) *Handler {
	return &Handler{
		Handler: crud.NewHandler[materielDatamodel.Materiel, MaterielDTO, UpdateMaterielDTO](baseHandler, service.Service),
		Service: service,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/bulk", h.BulkAdd)
	r.Get("/export", h.Export)
	h.Handler.Routes(r)
}

func (h *Handler) BulkAdd(w http.ResponseWriter, r *http.Request) {
	var form BulkDTO
	if err := h.decodeBulk(r, &form); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	result, err := h.Service.BulkAdd(r.Context(), form)
	if err != nil {
		h.Logger.Warn("BulkAdd: failed", "error", err)
		h.HandleServiceError(w, r, err)
		return
	}

	status := http.StatusCreated
	if len(result.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	h.WriteJSON(w, status, result)
}

func (h *Handler) decodeBulk(r *http.Request, form *BulkDTO) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return errors.NewValidationError("invalid form body", errors.ErrCodeBadRequest).WithCause(err)
		}
		return h.Service.Validator.DecodeForm(form, r.PostForm)
	}
	return h.DecodeJSON(r, form)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+h.Service.Filename()+`"`)
	if err := h.Service.Export(r.Context(), w); err != nil {
		h.Logger.Error("Export: failed", "error", err)
		w.Header().Del("Content-Disposition")
		w.Header().Del("Content-Type")
		h.HandleServiceError(w, r, err)
	}
}
