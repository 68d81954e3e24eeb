package auth

import (
	"context"
	"log/slog"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/apiclient"
	"github.com/frahmantamala/trackit/internal/core/common/validation"
	"github.com/frahmantamala/trackit/internal/core/datamodel/utilisateur"
	"github.com/frahmantamala/trackit/internal/session"
)

type BackendAPI interface {
	Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*utilisateur.Utilisateur, error)
}

type SessionAPI interface {
	Start(ctx context.Context, token string, user utilisateur.Utilisateur, locale string) (*session.Session, error)
	Resolve(ctx context.Context, id string) (*session.Session, error)
	SetLocale(ctx context.Context, id, locale string) error
	End(ctx context.Context, id, reason string) error
}

// Service is the main auth service with dependencies
type Service struct {
	backend   BackendAPI
	sessions  SessionAPI
	validator *validation.Validator
	logger    *slog.Logger
}

func NewService(backend BackendAPI, sessions SessionAPI, validator *validation.Validator, logger *slog.Logger) *Service {
	return &Service{
		backend:   backend,
		sessions:  sessions,
		validator: validator,
		logger:    logger,
	}
}

// Login checks the credentials with the backend and opens a console
// session holding the returned token.
func (s *Service) Login(ctx context.Context, dto LoginDTO, locale string) (*session.Session, error) {
	if err := s.validator.Struct(ctx, dto); err != nil {
		return nil, err
	}

	resp, err := s.backend.Login(apiclient.Quiet(ctx), dto)
	if err != nil {
		if errors.IsSessionExpired(err) {
			s.logger.Info("login refused", "username", dto.Username)
			return nil, errors.ErrInvalidCredentials
		}
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.NewInternalError("backend returned no token", nil)
	}
	if resp.User.Username == "" {
		resp.User.Username = dto.Username
	}

	return s.sessions.Start(ctx, resp.Token, resp.User, locale)
}

// Logout tells the backend when it can, then ends the session whatever
// the backend said.
func (s *Service) Logout(ctx context.Context) error {
	sid := errors.SessionIDFromContext(ctx)
	if sid == "" {
		return errors.ErrNotAuthenticated
	}
	if err := s.backend.Logout(apiclient.Quiet(ctx)); err != nil {
		s.logger.Warn("backend logout failed", "error", err)
	}
	return s.sessions.End(ctx, sid, session.ReasonLogout)
}

func (s *Service) Authenticate(ctx context.Context, sessionID string) (*session.Session, error) {
	return s.sessions.Resolve(ctx, sessionID)
}

// CurrentUser returns the signed-in user, asking the backend when fresh
// is set.
func (s *Service) CurrentUser(ctx context.Context, fresh bool) (*MeResponse, error) {
	sess, err := s.sessions.Resolve(ctx, errors.SessionIDFromContext(ctx))
	if err != nil {
		return nil, err
	}
	me := ToMeResponse(sess)
	if fresh {
		user, err := s.backend.Me(ctx)
		if err != nil {
			return nil, err
		}
		me.User = *user
	}
	return &me, nil
}

func (s *Service) SetLocale(ctx context.Context, dto LocaleDTO) error {
	if err := s.validator.Struct(ctx, dto); err != nil {
		return err
	}
	return s.sessions.SetLocale(ctx, errors.SessionIDFromContext(ctx), dto.Locale)
}
