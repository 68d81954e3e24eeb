package middleware

import (
	"net/http"
	"slices"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/transport"
)

// RequireRoles lets the request through only when the session user holds
// one of roles. It must run after the session middleware.
func RequireRoles(base *transport.BaseHandler, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := errors.PrincipalFromContext(r.Context())
			if p == nil {
				base.HandleServiceError(w, r, errors.ErrNotAuthenticated)
				return
			}

			if !slices.Contains(roles, p.Role) {
				base.Logger.Warn("access denied: role not allowed",
					"matricule", p.Matricule,
					"role", p.Role,
					"required_roles", roles,
					"path", r.URL.Path)
				base.HandleServiceError(w, r, errors.ErrAdminRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(base *transport.BaseHandler) func(http.Handler) http.Handler {
	return RequireRoles(base, "admin")
}
