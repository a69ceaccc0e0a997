package e2e

import (
	"chat-session/domain"
	"chat-session/repositories"
	"chat-session/rest"
	"chat-session/runtime"
	"chat-session/transport"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

type BaseSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration and skips without a server
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if !s.Config.Live() {
		s.T().Skip("E2E_BASE_URL, E2E_WS_URL, E2E_EMAIL and E2E_PASSWORD are required")
	}
}

// Step prints a colorized header for a scenario step
func (s *BaseSuite) Step(t *testing.T, name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)
}

// NewSession builds a session against the configured server with an
// in-memory token store.
func (s *BaseSuite) NewSession() *runtime.Session {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	return runtime.NewSession(log, runtime.Options{
		BaseURL:        s.Config.BaseURL,
		RequestTimeout: 10 * time.Second,
		Retry:          rest.DefaultRetryPolicy(),
		Transport:      transport.DefaultConfig(s.Config.WsURL),
		Store:          repositories.NewMemoryTokenStore(),
		Room:           domain.RoomID(s.Config.Room),
		PingInterval:   5 * time.Second,
		RefreshSkew:    time.Minute,
	})
}
