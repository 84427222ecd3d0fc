package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/minisamantha/notes-client/internal/adapter"
	"github.com/minisamantha/notes-client/internal/logger"
	"github.com/minisamantha/notes-client/internal/session"
	"github.com/minisamantha/notes-client/models"
)

type authService struct {
	adapter  adapter.ServerAdapter
	session  *session.Holder
	validate *validator.Validate
	logger   *logger.Logger
}

// NewAuthService builds the auth service around the server adapter and the
// session holder.
func NewAuthService(serverAdapter adapter.ServerAdapter, sess *session.Holder, log *logger.Logger) AuthService {
	return &authService{
		adapter:  serverAdapter,
		session:  sess,
		validate: validator.New(),
		logger:   log,
	}
}

func (a *authService) Signup(ctx context.Context, creds models.Credentials) error {
	if err := a.validate.Struct(creds); err != nil {
		return fmt.Errorf("%w: please provide a valid email and password", ErrValidation)
	}

	if err := a.adapter.Signup(ctx, creds); err != nil {
		return fmt.Errorf("signup: %w", err)
	}

	a.logger.Info().Str("email", creds.Email).Msg("account created")
	return nil
}

func (a *authService) Login(ctx context.Context, creds models.Credentials) error {
	if err := a.validate.Struct(creds); err != nil {
		return fmt.Errorf("%w: please provide a valid email and password", ErrValidation)
	}

	token, err := a.adapter.Login(ctx, creds)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if err = a.session.SetToken(ctx, token); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}

	a.logger.Info().Str("subject", token.Subject()).Msg("logged in")
	return nil
}

func (a *authService) Profile(ctx context.Context) (models.Profile, error) {
	if !a.session.Authenticated() {
		return models.Profile{}, ErrNotAuthenticated
	}

	profile, err := a.adapter.Profile(ctx)
	if err != nil {
		return models.Profile{}, fmt.Errorf("fetch profile: %w", err)
	}

	return profile, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}
