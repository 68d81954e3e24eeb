package session

import (
	"encoding/json"
	"time"

	errors "github.com/frahmantamala/trackit/internal"
	sessionDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/session"
	"github.com/frahmantamala/trackit/internal/core/datamodel/utilisateur"
)

// Session is the server-side copy of what the browser used to keep in
// local storage: the backend token and the signed-in user.
type Session struct {
	ID        string                  `json:"-"`
	Token     string                  `json:"-"`
	User      utilisateur.Utilisateur `json:"user"`
	Locale    string                  `json:"locale"`
	ExpiresAt time.Time               `json:"expires_at"`
	CreatedAt time.Time               `json:"created_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func (s *Session) Principal() *errors.Principal {
	return &errors.Principal{
		SessionID: s.ID,
		Token:     s.Token,
		Matricule: s.User.Matricule,
		Username:  s.User.Username,
		Role:      string(s.User.Role),
	}
}

func FromDataModel(m *sessionDatamodel.Session) *Session {
	s := &Session{
		ID:        m.ID,
		Token:     m.Token,
		Locale:    m.Locale,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
	if m.UserJSON != "" {
		_ = json.Unmarshal([]byte(m.UserJSON), &s.User)
	}
	s.User.Matricule = m.Matricule
	s.User.Username = m.Username
	s.User.Role = utilisateur.Role(m.Role)
	return s
}

func (s *Session) ToDataModel() *sessionDatamodel.Session {
	userJSON, _ := json.Marshal(s.User)
	return &sessionDatamodel.Session{
		ID:        s.ID,
		Token:     s.Token,
		Matricule: s.User.Matricule,
		Username:  s.User.Username,
		Role:      string(s.User.Role),
		UserJSON:  string(userJSON),
		Locale:    s.Locale,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
	}
}
