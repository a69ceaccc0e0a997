package services

import (
	"chat-session/auth"
	"chat-session/contract"
	"chat-session/domain"
	"chat-session/errors"
	"chat-session/rest"
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

const (
	loginPath   = "/api/auth/login"
	signupPath  = "/api/auth/signup"
	logoutPath  = "/api/auth/logout"
	profilePath = "/api/auth/profile"
	healthPath  = "/health"
)

type IAuthService interface {
	Login(ctx context.Context, email, password string) (domain.User, error)
	Signup(ctx context.Context, name, email, password string) (domain.User, error)
	Logout(ctx context.Context)
	Restore(ctx context.Context) (domain.User, error)
	Profile(ctx context.Context) (domain.User, error)
	Health(ctx context.Context) bool
}

type sessionResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	User    domain.User   `json:"user"`
	Tokens  domain.Tokens `json:"tokens"`
}

type profileResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    domain.User `json:"data"`
}

// AuthService runs the account flows of the signed-in user.
type AuthService struct {
	log       *slog.Logger
	client    *rest.Client
	authority contract.IAuthority
	store     contract.TokenStore
}

func NewAuthService(log *slog.Logger, client *rest.Client, authority contract.IAuthority, store contract.TokenStore) *AuthService {
	return &AuthService{log: log, client: client, authority: authority, store: store}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	req := auth.LoginRequest{Email: email, Password: password}
	if err := auth.ValidateLogin(req); err != nil {
		return domain.User{}, err
	}
	return s.open(ctx, loginPath, req, errors.ErrInvalidCredentials)
}

func (s *AuthService) Signup(ctx context.Context, name, email, password string) (domain.User, error) {
	req := auth.SignupRequest{Name: name, Email: email, Password: password}
	if err := auth.ValidateSignup(req); err != nil {
		return domain.User{}, err
	}
	return s.open(ctx, signupPath, req, errors.ErrRegistrationFailed)
}

// open posts credentials and stores the session handed back by the server.
func (s *AuthService) open(ctx context.Context, path string, body any, rejected error) (domain.User, error) {
	resp, err := s.client.Send(ctx, http.MethodPost, path, "", body)
	if err != nil {
		return domain.User{}, err
	}

	if !resp.OK() {
		return domain.User{}, fmt.Errorf("%w: %w", rejected, resp.Err())
	}
	var out sessionResponse
	if err = resp.JSON(&out); err != nil {
		return domain.User{}, err
	}
	if !out.Success || !out.Tokens.Valid() {
		if out.Message == "" {
			return domain.User{}, rejected
		}
		return domain.User{}, fmt.Errorf("%w: %s", rejected, out.Message)
	}

	if err = s.authority.StoreTokens(out.Tokens); err != nil {
		return domain.User{}, err
	}
	if err = s.store.SaveUser(out.User); err != nil {
		return domain.User{}, fmt.Errorf("store user: %w", err)
	}
	s.log.Info("Signed in", "user", out.User.ID, "email", out.User.Email)
	return out.User, nil
}

// Logout tells the server when a token is held, then always wipes local data.
func (s *AuthService) Logout(ctx context.Context) {
	if tokens, err := s.authority.GetTokens(); err == nil {
		resp, err := s.client.Send(ctx, http.MethodPost, logoutPath, tokens.AccessToken, nil)
		if err != nil {
			s.log.Warn("Logout request failed", "error", err)
		} else if !resp.OK() {
			s.log.Warn("Logout rejected", "status", resp.StatusCode)
		}
	}
	if err := s.authority.Clear(); err != nil {
		s.log.Error("Unable to clear session", "error", err)
	}
	s.log.Info("Signed out")
}

// Restore brings back the persisted session.
// Tokens and profile must all be present. The access token is checked
// against the profile endpoint and refreshed once when rejected; a failed
// refresh wipes the session.
func (s *AuthService) Restore(ctx context.Context) (domain.User, error) {
	tokens, err := s.authority.GetTokens()
	if err != nil {
		return domain.User{}, err
	}
	user, err := s.store.GetUser()
	if err != nil {
		return domain.User{}, err
	}

	if s.verify(ctx, tokens.AccessToken) {
		return user, nil
	}
	s.log.Info("Stored access token rejected, refreshing")
	if !s.authority.Refresh(ctx) {
		if ctx.Err() != nil {
			return domain.User{}, ctx.Err()
		}
		return domain.User{}, errors.ErrAuthenticationFailed
	}
	return user, nil
}

func (s *AuthService) verify(ctx context.Context, accessToken string) bool {
	resp, err := s.client.Send(ctx, http.MethodGet, profilePath, accessToken, nil)
	if err != nil {
		s.log.Warn("Token verification failed", "error", err)
		return false
	}
	return resp.OK()
}

func (s *AuthService) Profile(ctx context.Context) (domain.User, error) {
	resp, err := s.authority.Do(ctx, http.MethodGet, profilePath, nil)
	if err != nil {
		return domain.User{}, err
	}
	var out profileResponse
	if err = resp.Decode(&out); err != nil {
		return domain.User{}, err
	}
	if !out.Success {
		return domain.User{}, fmt.Errorf("%w: %s", errors.ErrNoProfile, out.Message)
	}
	return out.Data, nil
}

// Health reports whether the server answers its health probe.
func (s *AuthService) Health(ctx context.Context) bool {
	resp, err := s.client.Send(ctx, http.MethodGet, healthPath, "", nil)
	return err == nil && resp.OK()
}
