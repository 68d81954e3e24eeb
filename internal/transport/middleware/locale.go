package middleware

import (
	"net/http"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/core/locale"
)

// Locale picks the request language from Accept-Language. The session
// middleware overrides it with the session's own choice.
func Locale(bundle *locale.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := bundle.MatchAcceptLanguage(r.Header.Get("Accept-Language"))
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(errors.ContextWithLocale(r.Context(), lang)))
		})
	}
}
