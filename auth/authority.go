package auth

import (
	"chat-session/contract"
	"chat-session/domain"
	"chat-session/errors"
	"chat-session/observability"
	"chat-session/rest"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"
)

const (
	refreshPath = "/api/auth/refresh"
	refreshKey  = "refresh"
)

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	Success bool          `json:"success"`
	Tokens  domain.Tokens `json:"tokens"`
	Message string        `json:"message"`
}

// Authority owns the token pair of the session.
// Refreshes are single-flight and fail closed: a failed refresh wipes the
// stored session so that the next call forces a new login.
type Authority struct {
	log     *slog.Logger
	store   contract.TokenStore
	client  *rest.Client
	monitor *observability.SessionMonitor
	flight  singleflight.Group

	mu        sync.RWMutex
	onCleared []func()
}

func NewAuthority(log *slog.Logger, store contract.TokenStore, client *rest.Client, monitor *observability.SessionMonitor) *Authority {
	return &Authority{
		log:     log,
		store:   store,
		client:  client,
		monitor: monitor,
	}
}

// OnCleared registers a callback run every time the session is wiped.
func (a *Authority) OnCleared(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onCleared = append(a.onCleared, fn)
}

// GetTokens fails with errors.ErrNoTokens unless both tokens are stored.
func (a *Authority) GetTokens() (domain.Tokens, error) {
	return a.store.GetTokens()
}

func (a *Authority) StoreTokens(tokens domain.Tokens) error {
	if err := a.store.SaveTokens(tokens); err != nil {
		return fmt.Errorf("store tokens: %w", err)
	}
	return nil
}

// AccessToken returns the current access token.
func (a *Authority) AccessToken(_ context.Context) (string, error) {
	tokens, err := a.store.GetTokens()
	if err != nil {
		return "", err
	}
	return tokens.AccessToken, nil
}

// Clear wipes tokens and the stored profile.
func (a *Authority) Clear() error {
	err := a.store.Clear()
	a.monitor.IncrSessionCleared()

	a.mu.RLock()
	callbacks := append([]func(){}, a.onCleared...)
	a.mu.RUnlock()
	for _, fn := range callbacks {
		fn()
	}

	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Refresh exchanges the refresh token for a new pair.
// Concurrent callers share one network call and its outcome. A caller whose
// ctx ends stops waiting and gets false while the refresh itself completes.
func (a *Authority) Refresh(ctx context.Context) bool {
	ch := a.flight.DoChan(refreshKey, func() (any, error) {
		return a.refresh(context.WithoutCancel(ctx)), nil
	})
	select {
	case <-ctx.Done():
		return false
	case res := <-ch:
		ok, _ := res.Val.(bool)
		return ok
	}
}

func (a *Authority) refresh(ctx context.Context) bool {
	tokens, err := a.store.GetTokens()
	if err != nil {
		a.log.Debug("Nothing to refresh", "error", err)
		return false
	}

	ok, err := a.exchange(ctx, tokens.RefreshToken)
	a.monitor.IncrRefresh(ok)
	if ok {
		a.log.Debug("Access token refreshed")
		return true
	}

	a.log.Warn("Token refresh failed, clearing session", "error", err)
	if clearErr := a.Clear(); clearErr != nil {
		a.log.Error("Unable to clear session", "error", clearErr)
	}
	return false
}

func (a *Authority) exchange(ctx context.Context, refreshToken string) (bool, error) {
	resp, err := a.client.Send(ctx, http.MethodPost, refreshPath, "", refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return false, err
	}

	var body refreshResponse
	if err = resp.Decode(&body); err != nil {
		return false, err
	}
	if !body.Success || !body.Tokens.Valid() {
		return false, fmt.Errorf("%w: %s", errors.ErrRefreshFailed, body.Message)
	}
	if err = a.store.SaveTokens(body.Tokens); err != nil {
		return false, err
	}
	return true, nil
}

// Authorize runs call with the current access token.
// When call fails with a 401 APIError, the token is refreshed once and call
// is retried once with the new token. A failed refresh, or a retry that is
// still unauthorized, clears the session and returns ErrAuthenticationFailed.
func (a *Authority) Authorize(ctx context.Context, call func(ctx context.Context, accessToken string) error) error {
	tokens, err := a.store.GetTokens()
	if err != nil {
		return errors.ErrNoTokens
	}

	err = call(ctx, tokens.AccessToken)
	if !errors.IsUnauthorized(err) {
		return err
	}

	if !a.Refresh(ctx) {
		// refresh already cleared the session
		return a.fail(ctx, false)
	}
	tokens, err = a.store.GetTokens()
	if err != nil {
		return a.fail(ctx, true)
	}

	err = call(ctx, tokens.AccessToken)
	if errors.IsUnauthorized(err) {
		return a.fail(ctx, true)
	}
	return err
}

func (a *Authority) fail(ctx context.Context, wipe bool) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if wipe {
		if err := a.Clear(); err != nil {
			a.log.Error("Unable to clear session", "error", err)
		}
	}
	return errors.ErrAuthenticationFailed
}

// Do issues an authenticated request through Authorize.
// Every status other than 401 is handed back to the caller untouched.
func (a *Authority) Do(ctx context.Context, method, path string, body any) (*rest.Response, error) {
	var resp *rest.Response
	err := a.Authorize(ctx, func(ctx context.Context, accessToken string) error {
		r, err := a.client.Send(ctx, method, path, accessToken, body)
		if err != nil {
			return err
		}
		if r.StatusCode == http.StatusUnauthorized {
			return r.Err()
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
