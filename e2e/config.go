package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	BaseURL  string `envconfig:"E2E_BASE_URL"`
	WsURL    string `envconfig:"E2E_WS_URL"`
	Email    string `envconfig:"E2E_EMAIL"`
	Password string `envconfig:"E2E_PASSWORD"`
	Room     string `envconfig:"E2E_ROOM" default:"general"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}

// Live reports whether a real server was configured.
func (c Config) Live() bool {
	return c.BaseURL != "" && c.WsURL != "" && c.Email != "" && c.Password != ""
}
