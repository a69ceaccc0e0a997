package auth

import (
	"chat-session/errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name    string
		req     SignupRequest
		wantErr error
	}{
		{"Valid request", SignupRequest{"Alice", "alice@example.com", "Secret1"}, nil},
		{"Name too short", SignupRequest{"A", "alice@example.com", "Secret1"}, errors.ErrInvalidRequest},
		{"Invalid email", SignupRequest{"Alice", "notanemail", "Secret1"}, errors.ErrInvalidRequest},
		{"Password too short", SignupRequest{"Alice", "alice@example.com", "Se1"}, errors.ErrInvalidRequest},
		{"Missing digit", SignupRequest{"Alice", "alice@example.com", "SecretPass"}, errors.ErrInvalidPassword},
		{"Missing uppercase", SignupRequest{"Alice", "alice@example.com", "secret12"}, errors.ErrInvalidPassword},
		{"Password too long", SignupRequest{"Alice", "alice@example.com", "Aa1" + strings.Repeat("a", 70)}, errors.ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			err := ValidateSignup(tt.req)
			if tt.wantErr == nil {
				req.NoError(err)
				return
			}
			req.ErrorIs(err, tt.wantErr)
		})
	}
}

func TestValidateLogin(t *testing.T) {
	req := require.New(t)
	req.NoError(ValidateLogin(LoginRequest{Email: "alice@example.com", Password: "secret"}))
	req.ErrorIs(ValidateLogin(LoginRequest{Email: "alice@example.com", Password: "123"}), errors.ErrInvalidRequest)
	req.ErrorIs(ValidateLogin(LoginRequest{Password: "secret"}), errors.ErrInvalidRequest)
}
