package workers

import (
	"chat-session/auth"
	"chat-session/contract"
	"context"
	"log/slog"
	"time"
)

const (
	DefaultRefreshCheckInterval = 30 * time.Second
	DefaultRefreshSkew          = time.Minute
)

// TokenRefreshWorker refreshes the access token shortly before it expires.
// Tokens without a readable expiry are left to the 401 retry path.
type TokenRefreshWorker struct {
	log       *slog.Logger
	authority contract.IAuthority
	interval  time.Duration
	skew      time.Duration
	now       func() time.Time
}

func NewTokenRefreshWorker(log *slog.Logger, authority contract.IAuthority, interval, skew time.Duration) *TokenRefreshWorker {
	if interval <= 0 {
		interval = DefaultRefreshCheckInterval
	}
	return &TokenRefreshWorker{
		log:       log,
		authority: authority,
		interval:  interval,
		skew:      skew,
		now:       time.Now,
	}
}

func (w *TokenRefreshWorker) Run(ctx context.Context) error {
	w.log.Debug("Starting token refresh worker", "interval", w.interval, "skew", w.skew)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *TokenRefreshWorker) check(ctx context.Context) {
	tokens, err := w.authority.GetTokens()
	if err != nil {
		return
	}
	if !auth.NeedsRefresh(tokens.AccessToken, w.skew, w.now()) {
		return
	}
	if !w.authority.Refresh(ctx) {
		w.log.Warn("Proactive token refresh failed")
		return
	}
	w.log.Debug("Access token refreshed ahead of expiry")
}
