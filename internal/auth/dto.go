package auth

import (
	"time"

	"github.com/frahmantamala/trackit/internal/core/datamodel/utilisateur"
	"github.com/frahmantamala/trackit/internal/session"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LocaleDTO struct {
	Locale string `json:"locale" validate:"required,oneof=fr en"`
}

// MeResponse never carries the backend token.
type MeResponse struct {
	User      utilisateur.Utilisateur `json:"user"`
	Locale    string                  `json:"locale"`
	ExpiresAt time.Time               `json:"expires_at"`
	Redirect  string                  `json:"redirect,omitempty"`
}

func ToMeResponse(s *session.Session) MeResponse {
	return MeResponse{
		User:      s.User,
		Locale:    s.Locale,
		ExpiresAt: s.ExpiresAt,
	}
}
