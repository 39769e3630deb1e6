package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/AleeDe/nafaverse/internal/client/client"
	"github.com/AleeDe/nafaverse/internal/common"
	"github.com/AleeDe/nafaverse/internal/events"
	"github.com/AleeDe/nafaverse/internal/logging"
)

// AuthService covers account creation, sign-in, password recovery and
// sign-out.
type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*client.AuthResponse, error)
	// Login accepts a username or an email address as identifier. The user
	// is signed in only when the response carries a token.
	Login(ctx context.Context, identifier, password string) (*client.AuthResponse, error)
	Me(ctx context.Context) (*client.UserInfo, error)
	GoogleLoginURL() string
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	// ResetPassword fails with common.ErrValidation, without calling the
	// backend, when password and confirm differ.
	ResetPassword(ctx context.Context, token, password, confirm string) (string, error)
	Logout(ctx context.Context) error
}

// Logouter ends the local session.
type Logouter interface {
	Logout(ctx context.Context) error
}

type authService struct {
	client  client.Client
	bus     *events.Bus
	session Logouter
	log     logging.Logger
}

func NewAuthService(c client.Client, bus *events.Bus, session Logouter, log logging.Logger) AuthService {
	return &authService{client: c, bus: bus, session: session, log: log.With("service", "auth")}
}

func (a *authService) Signup(ctx context.Context, username, email, password string) (*client.AuthResponse, error) {
	if err := required("username", username); err != nil {
		return nil, err
	}
	if err := validEmail(email); err != nil {
		return nil, err
	}
	if err := required("password", password); err != nil {
		return nil, err
	}

	resp, err := a.client.Signup(ctx, client.SignupRequest{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	a.log.Info(ctx, "account created", "username", username)
	return resp, nil
}

func (a *authService) Login(ctx context.Context, identifier, password string) (*client.AuthResponse, error) {
	identifier = strings.TrimSpace(identifier)
	if err := required("username or email", identifier); err != nil {
		return nil, err
	}
	if err := required("password", password); err != nil {
		return nil, err
	}

	req := client.LoginRequest{Username: identifier, Password: password}
	if strings.Contains(identifier, "@") {
		req = client.LoginRequest{Email: identifier, Password: password}
	}

	resp, err := a.client.Login(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		a.log.Warn(ctx, "login succeeded without a token")
		return resp, nil
	}

	a.bus.Emit(common.EventAuthUpdated, "login")
	return resp, nil
}

func (a *authService) Me(ctx context.Context) (*client.UserInfo, error) {
	me, err := a.client.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	return me, nil
}

func (a *authService) GoogleLoginURL() string {
	return a.client.GoogleLoginURL()
}

func (a *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if err := validEmail(email); err != nil {
		return "", err
	}
	msg, err := a.client.RequestPasswordReset(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", fmt.Errorf("password reset request: %w", err)
	}
	return msg, nil
}

func (a *authService) ResetPassword(ctx context.Context, token, password, confirm string) (string, error) {
	if password != confirm {
		return "", invalid("passwords do not match")
	}
	if err := required("reset token", token); err != nil {
		return "", err
	}
	if err := required("password", password); err != nil {
		return "", err
	}
	msg, err := a.client.ResetPassword(ctx, strings.TrimSpace(token), password)
	if err != nil {
		return "", fmt.Errorf("password reset: %w", err)
	}
	return msg, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}
