package internal

import (
	"context"
	"time"
)

type ctxKey string

const (
	ContextPrincipalKey ctxKey = "principal"
	ContextLocaleKey    ctxKey = "locale"
)

// Principal is the authenticated console user attached to a request.
type Principal struct {
	SessionID string
	Token     string
	Matricule string
	Username  string
	Role      string
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == "admin"
}

func PrincipalFromContext(ctx context.Context) *Principal {
	if ctx == nil {
		return nil
	}
	if p, ok := ctx.Value(ContextPrincipalKey).(*Principal); ok {
		return p
	}
	return nil
}

func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ContextPrincipalKey, p)
}

// TokenFromContext returns the backend bearer token of the request's session.
func TokenFromContext(ctx context.Context) string {
	if p := PrincipalFromContext(ctx); p != nil {
		return p.Token
	}
	return ""
}

func SessionIDFromContext(ctx context.Context) string {
	if p := PrincipalFromContext(ctx); p != nil {
		return p.SessionID
	}
	return ""
}

func LocaleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if l, ok := ctx.Value(ContextLocaleKey).(string); ok {
		return l
	}
	return ""
}

func ContextWithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ContextLocaleKey, locale)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
