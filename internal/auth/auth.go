package auth

import (
	"context"

	"github.com/frahmantamala/trackit/internal/apiclient"
	"github.com/frahmantamala/trackit/internal/core/datamodel/utilisateur"
)

// LoginResponse is what the backend answers to POST /auth/login.
type LoginResponse struct {
	Token string                  `json:"token"`
	User  utilisateur.Utilisateur `json:"user"`
}

// Backend is the /auth part of the REST API.
type Backend struct {
	client *apiclient.Client
}

func NewBackend(client *apiclient.Client) *Backend {
	return &Backend{client: client}
}

func (b *Backend) Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error) {
	var out LoginResponse
	if err := b.client.Post(ctx, apiclient.JoinPath("auth", "login"), dto, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *Backend) Logout(ctx context.Context) error {
	return b.client.Post(ctx, apiclient.JoinPath("auth", "logout"), nil, nil)
}

func (b *Backend) Me(ctx context.Context) (*utilisateur.Utilisateur, error) {
	var out utilisateur.Utilisateur
	if err := b.client.Get(ctx, apiclient.JoinPath("auth", "me"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
