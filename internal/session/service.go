package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	errors "github.com/frahmantamala/trackit/internal"
	sessionDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/session"
	"github.com/frahmantamala/trackit/internal/core/datamodel/utilisateur"
	"github.com/frahmantamala/trackit/internal/core/events"
)

const (
	ReasonLogout  = "logout"
	ReasonExpired = "expired"
	ReasonRevoked = "revoked"
)

type RepositoryAPI interface {
	Create(s *sessionDatamodel.Session) error
	GetByID(id string) (*sessionDatamodel.Session, error)
	UpdateLocale(id, locale string) error
	Delete(id string) error
	DeleteExpired(now time.Time) ([]string, error)
}

type Service struct {
	repo      RepositoryAPI
	publisher events.Publisher
	ttl       time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo RepositoryAPI, publisher events.Publisher, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Start stores a new session for token. It expires with the token's exp
// claim, or after the configured ttl when the token carries none.
func (s *Service) Start(ctx context.Context, token string, user utilisateur.Utilisateur, locale string) (*Session, error) {
	now := s.now()
	expiresAt, ok := TokenExpiry(token)
	if !ok {
		expiresAt = now.Add(s.ttl)
	}
	if !expiresAt.After(now) {
		return nil, errors.ErrSessionExpired
	}

	sess := &Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		Locale:    locale,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}
	if err := s.repo.Create(sess.ToDataModel()); err != nil {
		s.logger.Error("failed to create session", "error", err, "matricule", user.Matricule)
		return nil, errors.NewInternalError("failed to create session", err)
	}

	s.logger.Info("session started", "matricule", user.Matricule, "role", user.Role, "expires_at", expiresAt)
	return sess, nil
}

// Resolve returns the live session for id. Missing or expired sessions are
// reported as not authenticated; expired ones are ended on the way.
func (s *Service) Resolve(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, errors.ErrNotAuthenticated
	}
	m, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load session", "error", err)
		return nil, errors.NewInternalError("failed to load session", err)
	}
	if m == nil {
		return nil, errors.ErrNotAuthenticated
	}
	sess := FromDataModel(m)
	if sess.Expired(s.now()) {
		if err := s.End(ctx, id, ReasonExpired); err != nil {
			s.logger.Warn("failed to end expired session", "error", err)
		}
		return nil, errors.ErrNotAuthenticated
	}
	return sess, nil
}

func (s *Service) SetLocale(ctx context.Context, id, locale string) error {
	if err := s.repo.UpdateLocale(id, locale); err != nil {
		return errors.NewInternalError("failed to update session", err)
	}
	return nil
}

// End deletes the session and announces it so page state and toasts go too.
func (s *Service) End(ctx context.Context, id, reason string) error {
	if id == "" {
		return nil
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete session", "error", err)
		return errors.NewInternalError("failed to delete session", err)
	}
	s.logger.Info("session ended", "reason", reason)
	if s.publisher != nil {
		return s.publisher.PublishSync(ctx, events.NewSessionEndedEvent(id, reason))
	}
	return nil
}

// PurgeExpired removes every expired session and returns how many went.
func (s *Service) PurgeExpired(ctx context.Context) (int, error) {
	ids, err := s.repo.DeleteExpired(s.now())
	if err != nil {
		return 0, errors.NewInternalError("failed to purge sessions", err)
	}
	for _, id := range ids {
		if s.publisher != nil {
			if err := s.publisher.PublishSync(ctx, events.NewSessionEndedEvent(id, ReasonExpired)); err != nil {
				s.logger.Warn("failed to announce purged session", "error", err)
			}
		}
	}
	return len(ids), nil
}

// HandleAPIFailed ends the session whose backend token was refused.
func (s *Service) HandleAPIFailed(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.APIFailedEvent)
	if !ok || e.SessionID == "" || e.Err == nil || e.Err.Code != errors.ErrCodeSessionExpired {
		return nil
	}
	return s.End(ctx, e.SessionID, ReasonRevoked)
}
