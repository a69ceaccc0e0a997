package internal

import (
	"chat-session/domain"
	"fmt"
	"strings"
	"time"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	BaseURL string `env:"BASE_URL,required=true"`
	WsURL   string `env:"WS_URL,required=true"`

	RequestTimeout       time.Duration `env:"REQUEST_TIMEOUT,default=10s"`
	RequestRetries       int           `env:"REQUEST_RETRIES,default=2"`
	ConnectTimeout       time.Duration `env:"CONNECT_TIMEOUT,default=5s"`
	ReconnectDelay       time.Duration `env:"RECONNECT_DELAY,default=1s"`
	MaxReconnectAttempts int           `env:"MAX_RECONNECT_ATTEMPTS,default=5"`
	PingInterval         time.Duration `env:"PING_INTERVAL,default=25s"`
	TypingInterval       time.Duration `env:"TYPING_INTERVAL,default=2s"`
	RefreshCheckInterval time.Duration `env:"REFRESH_CHECK_INTERVAL,default=30s"`
	RefreshSkew          time.Duration `env:"REFRESH_SKEW,default=1m"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=200ms"`

	TokenStorePath  string `env:"TOKEN_STORE_PATH,default=./data/session"`
	LogLevel        string `env:"LOG_LEVEL,default=INFO"`
	DebugPort       int    `env:"DEBUG_PORT,default=0"`
	CensoredWords   string `env:"CENSORED_WORDS"`
	CharReplacement string `env:"CHARACTER_REPLACEMENT,default=*"`
	DefaultRoom     string `env:"DEFAULT_ROOM,default=general"`
}

// Room returns the room to join at start.
func (c Config) Room() domain.RoomID {
	if c.DefaultRoom == "" {
		return domain.DefaultRoom
	}
	return domain.RoomID(c.DefaultRoom)
}

// Words splits CENSORED_WORDS on commas.
func (c Config) Words() []string {
	var words []string
	for _, w := range strings.Split(c.CensoredWords, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
