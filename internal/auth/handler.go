package auth

import (
	"context"
	"net/http"
	"time"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/session"
	"github.com/frahmantamala/trackit/internal/transport"
	"github.com/frahmantamala/trackit/pkg/logger"
)

// HomePath is where a signed-in user lands.
const HomePath = "/dashboard"

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO, locale string) (*session.Session, error)
	Logout(ctx context.Context) error
	Authenticate(ctx context.Context, sessionID string) (*session.Session, error)
	CurrentUser(ctx context.Context, fresh bool) (*MeResponse, error)
	SetLocale(ctx context.Context, dto LocaleDTO) error
}

type Handler struct {
	*transport.BaseHandler
	Service      ServiceAPI
	SecureCookie bool
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI, secureCookie bool) *Handler {
	return &Handler{
		BaseHandler:  baseHandler,
		Service:      svc,
		SecureCookie: secureCookie,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	sess, err := h.Service.Login(r.Context(), dto, errors.LocaleFromContext(r.Context()))
	if err != nil {
		h.Logger.Warn("Login: authentication failed", "error", err, "username", dto.Username)
		h.WriteJSON(w, statusOf(err), h.localizedBody(r, err))
		return
	}

	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	h.SetSessionCookie(w, sess.ID, maxAge, h.SecureCookie)

	h.Logger.Info("Login: session opened", "matricule", sess.User.Matricule, "role", sess.User.Role)
	me := ToMeResponse(sess)
	me.Redirect = HomePath
	h.WriteJSON(w, http.StatusOK, me)
}

// localizedBody renders a login failure without the login redirect that
// HandleServiceError adds to 401s; the browser is already on that page.
func (h *Handler) localizedBody(r *http.Request, err error) errors.Response {
	appErr, ok := errors.IsAppError(err)
	if !ok {
		appErr = errors.NewInternalError("internal server error", err)
	}
	if h.Locale != nil {
		appErr = h.Locale.Localized(errors.LocaleFromContext(r.Context()), appErr)
	}
	return errors.Response{Error: appErr}
}

func statusOf(err error) int {
	if appErr, ok := errors.IsAppError(err); ok && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Logout(r.Context()); err != nil {
		h.Logger.Error("Logout: failed to end session", "error", err)
	}
	h.ClearSessionCookie(w)
	h.WriteJSON(w, http.StatusOK, transport.RedirectResponse{Redirect: transport.LoginPath})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	me, err := h.Service.CurrentUser(r.Context(), r.URL.Query().Get("refresh") == "1")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, me)
}

func (h *Handler) SetLocale(w http.ResponseWriter, r *http.Request) {
	var dto LocaleDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	ctx := errors.ContextWithLocale(r.Context(), dto.Locale)
	if err := h.Service.SetLocale(ctx, dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SessionMiddleware resolves the session cookie and puts the principal and
// the session locale on the request context.
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := h.Service.Authenticate(r.Context(), h.SessionIDFromCookie(r))
		if err != nil {
			h.Logger.Debug("session middleware: no live session", "path", r.URL.Path, "error", err)
			h.HandleServiceError(w, r, err)
			return
		}

		ctx := errors.ContextWithPrincipal(r.Context(), sess.Principal())
		if sess.Locale != "" {
			ctx = errors.ContextWithLocale(ctx, sess.Locale)
		}
		ctx = logger.With(ctx, "matricule", sess.User.Matricule)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalSession is SessionMiddleware for public routes: a missing or dead
// session leaves the request anonymous.
func (h *Handler) OptionalSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := h.SessionIDFromCookie(r)
		if sid == "" {
			next.ServeHTTP(w, r)
			return
		}
		sess, err := h.Service.Authenticate(r.Context(), sid)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := errors.ContextWithPrincipal(r.Context(), sess.Principal())
		if sess.Locale != "" {
			ctx = errors.ContextWithLocale(ctx, sess.Locale)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
