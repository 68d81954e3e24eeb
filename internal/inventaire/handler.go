package inventaire

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/trackit/internal/core/crud"
	inventaireDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/inventaire"
	"github.com/frahmantamala/trackit/internal/export"
	"github.com/frahmantamala/trackit/internal/transport"
)

type Handler struct {
	*crud.Handler[inventaireDatamodel.Inventaire, InventaireDTO, InventaireDTO]
	Service *Service
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service) *Handler {
	return &Handler{
		Handler: crud.NewHandler[inventaireDatamodel.Inventaire, InventaireDTO, InventaireDTO](baseHandler, service.Service),
		Service: service,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/start", h.Start)
	h.Handler.Routes(r)
	r.Get("/{key}/count", h.GetSheet)
	r.Post("/{key}/count", h.Scan)
	r.Delete("/{key}/count/{serial}", h.Unscan)
	r.Post("/{key}/validate", h.Validate)
	r.Get("/{key}/export", h.Export)
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var form StartDTO
	if err := h.DecodeJSON(r, &form); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	item, err := h.Service.Start(r.Context(), form)
	if err != nil {
		h.Logger.Warn("Start: failed", "error", err)
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) GetSheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.Service.Sheet(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, sheet)
}

func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	var form ScanDTO
	if err := h.DecodeJSON(r, &form); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	sheet, err := h.Service.Scan(r.Context(), chi.URLParam(r, "key"), form)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, sheet)
}

func (h *Handler) Unscan(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.Service.Unscan(r.Context(), chi.URLParam(r, "key"), chi.URLParam(r, "serial"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, sheet)
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "key")
	item, err := h.Service.Validate(r.Context(), id)
	if err != nil {
		h.Logger.Warn("Validate: failed", "id", id, "error", err)
		h.HandleServiceError(w, r, err)
		return
	}
	if item.ID == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "key")
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+h.Service.Filename(id)+`"`)
	if err := h.Service.Export(r.Context(), id, w); err != nil {
		h.Logger.Error("Export: failed", "id", id, "error", err)
		w.Header().Del("Content-Disposition")
		w.Header().Del("Content-Type")
		h.HandleServiceError(w, r, err)
	}
}
