package workers

import (
	"chat-session/domain"
	"chat-session/errors"
	"chat-session/mocks"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHeartbeatWorker_PingsOnlyWhileConnected(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pinged := make(chan struct{}, 8)
	transport := mocks.NewMockITransport(ctrl)
	gomock.InOrder(
		transport.EXPECT().IsConnected().Return(false),
		transport.EXPECT().IsConnected().Return(true).MinTimes(1),
	)
	transport.EXPECT().Ping().Do(func() { pinged <- struct{}{} }).MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- NewHeartbeatWorker(log, transport, 5*time.Millisecond).Run(ctx) }()

	select {
	case <-pinged:
	case <-time.After(time.Second):
		req.Fail("heartbeat should ping once the transport is open")
	}
	cancel()
	req.ErrorIs(<-errCh, context.Canceled)
}

func signedToken(t *testing.T, exp time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenRefreshWorker_Check(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	tests := []struct {
		name    string
		tokens  domain.Tokens
		err     error
		refresh bool
	}{
		{
			name:    "Token close to expiry is refreshed",
			tokens:  domain.Tokens{AccessToken: signedToken(t, now.Add(30*time.Second)), RefreshToken: "r"},
			refresh: true,
		},
		{
			name:   "Token far from expiry is kept",
			tokens: domain.Tokens{AccessToken: signedToken(t, now.Add(time.Hour)), RefreshToken: "r"},
		},
		{
			name:   "Opaque token is left to the 401 path",
			tokens: domain.Tokens{AccessToken: "opaque", RefreshToken: "r"},
		},
		{
			name: "No session",
			err:  errors.ErrNoTokens,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			authority := mocks.NewMockIAuthority(ctrl)
			authority.EXPECT().GetTokens().Return(tt.tokens, tt.err)
			if tt.refresh {
				authority.EXPECT().Refresh(gomock.Any()).Return(true)
			}

			worker := NewTokenRefreshWorker(log, authority, time.Second, time.Minute)
			worker.now = func() time.Time { return now }
			worker.check(context.Background())
		})
	}
}
