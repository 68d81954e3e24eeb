package crud

import (
	"net/http"
	"reflect"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/trackit/internal/core/page"
	"github.com/frahmantamala/trackit/internal/transport"
)

// Handler serves one resource page. C and U are the create and update
// forms; their json names are the backend's.
type Handler[T page.Record, C any, U any] struct {
	*transport.BaseHandler
	Service *Service[T]
}

func NewHandler[T page.Record, C any, U any](baseHandler *transport.BaseHandler, service *Service[T]) *Handler[T, C, U] {
	return &Handler[T, C, U]{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// Routes mounts the shared page endpoints. Resource handlers add their
// own next to these.
func (h *Handler[T, C, U]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/modal", h.OpenModal)
	r.Delete("/modal", h.CloseModal)
	r.Get("/{key}", h.Get)
	r.Put("/{key}", h.Update)
	r.Delete("/{key}", h.Delete)
}

func (h *Handler[T, C, U]) List(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.List(r.Context(), r.URL.Query())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler[T, C, U]) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler[T, C, U]) Create(w http.ResponseWriter, r *http.Request) {
	var form C
	if err := h.DecodeJSON(r, &form); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	item, err := h.Service.Create(r.Context(), &form)
	if err != nil {
		h.Logger.Warn("Create: failed", "resource", h.Service.Resource(), "error", err)
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler[T, C, U]) Update(w http.ResponseWriter, r *http.Request) {
	var form U
	if err := h.DecodeJSON(r, &form); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	key := chi.URLParam(r, "key")
	item, err := h.Service.Update(r.Context(), key, &form)
	if err != nil {
		h.Logger.Warn("Update: failed", "resource", h.Service.Resource(), "key", key, "error", err)
		h.HandleServiceError(w, r, err)
		return
	}
	if reflect.ValueOf(item).IsZero() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler[T, C, U]) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := h.Service.Delete(r.Context(), key); err != nil {
		h.Logger.Warn("Delete: failed", "resource", h.Service.Resource(), "key", key, "error", err)
		h.HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ModalDTO struct {
	Kind string `json:"kind"`
	Key  string `json:"key"`
}

func (h *Handler[T, C, U]) OpenModal(w http.ResponseWriter, r *http.Request) {
	var dto ModalDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	modal, err := h.Service.OpenModal(r.Context(), dto.Kind, dto.Key)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, modal)
}

func (h *Handler[T, C, U]) CloseModal(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.CloseModal(r.Context()); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
