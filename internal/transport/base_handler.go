package transport

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/core/locale"
	"github.com/frahmantamala/trackit/pkg/logger"
)

// LoginPath is where the browser goes once the session is gone.
const LoginPath = "/login"

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger     *slog.Logger
	Locale     *locale.Bundle
	CookieName string
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger, bundle *locale.Bundle, cookieName string) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg, Locale: bundle, CookieName: cookieName}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes a plain error response for failures that happen before
// any service call.
func (h *BaseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code errors.ErrorCode, message string) {
	h.HandleServiceError(w, r, &errors.AppError{
		Type:       errors.ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: status,
	})
}

// RedirectResponse tells the browser shell to navigate.
type RedirectResponse struct {
	Redirect string           `json:"redirect"`
	Error    *errors.AppError `json:"error,omitempty"`
}

// HandleServiceError renders err as {"error": {...}} in the request's
// locale. An expired backend session clears the cookie and sends the
// browser to the login page.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := errors.IsAppError(err)
	if !ok {
		h.Logger.Error("unexpected error", "error", err, "path", r.URL.Path)
		appErr = errors.NewInternalError("internal server error", err)
	}

	lang := errors.LocaleFromContext(r.Context())
	if h.Locale != nil {
		appErr = h.Locale.Localized(lang, appErr)
	}

	if appErr.Code == errors.ErrCodeSessionExpired || appErr.Code == errors.ErrCodeNotAuthenticated {
		h.ClearSessionCookie(w)
		h.WriteJSON(w, http.StatusUnauthorized, RedirectResponse{Redirect: LoginPath, Error: appErr})
		return
	}

	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	h.WriteJSON(w, status, errors.Response{Error: appErr})
}

// DecodeJSON reads a JSON request body into dst.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewValidationError("invalid request body", errors.ErrCodeBadRequest).WithCause(err)
	}
	return nil
}

// DecodeOptionalJSON is DecodeJSON for endpoints whose body may be empty.
func (h *BaseHandler) DecodeOptionalJSON(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || err == io.EOF {
		return nil
	}
	return errors.NewValidationError("invalid request body", errors.ErrCodeBadRequest).WithCause(err)
}

func (h *BaseHandler) SetSessionCookie(w http.ResponseWriter, value string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *BaseHandler) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionIDFromCookie returns the console session id carried by r.
func (h *BaseHandler) SessionIDFromCookie(r *http.Request) string {
	c, err := r.Cookie(h.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
