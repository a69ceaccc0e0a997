package main

import (
	"bufio"
	"chat-session/errors"
	"chat-session/internal"
	"chat-session/moderation"
	"chat-session/repositories"
	"chat-session/rest"
	"chat-session/runtime"
	"chat-session/transport"
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
	exitAuth    = 3
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Chat terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	envFile := flag.String("env", ".env", "Optional dotenv file")
	email := flag.String("email", "", "Account email, required without a stored session")
	password := flag.String("password", "", "Account password")
	name := flag.String("signup", "", "Create the account with this display name before signing in")
	flag.Parse()

	// 1. Configuration & Logger
	_ = godotenv.Load(*envFile)
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Token store (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.TokenStorePath).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return exitRuntime, fmt.Errorf("token store opening failed: %w", err)
	}
	defer func() {
		log.Debug("Closing BadgerDB...")
		_ = db.Close()
	}()
	store := repositories.NewTokenRepository(db)

	filter, err := moderation.NewFilter(config.Words(), charReplacement, log)
	if err != nil {
		return exitConfig, fmt.Errorf("moderation filter: %w", err)
	}

	// 3. Session wiring
	retry := rest.DefaultRetryPolicy()
	retry.MaxRetries = config.RequestRetries
	wsConfig := transport.DefaultConfig(config.WsURL)
	wsConfig.ConnectTimeout = config.ConnectTimeout
	wsConfig.ReconnectDelay = config.ReconnectDelay
	wsConfig.MaxReconnectAttempts = config.MaxReconnectAttempts
	wsConfig.TypingInterval = config.TypingInterval

	session := runtime.NewSession(log, runtime.Options{
		BaseURL:              config.BaseURL,
		RequestTimeout:       config.RequestTimeout,
		Retry:                retry,
		Transport:            wsConfig,
		Store:                store,
		Filter:               filter,
		Room:                 config.Room(),
		PingInterval:         config.PingInterval,
		RefreshCheckInterval: config.RefreshCheckInterval,
		RefreshSkew:          config.RefreshSkew,
		RestartInterval:      config.RestartInterval,
	})

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !session.Auth.Health(ctx) {
		log.Warn("Chat server health check failed", "url", config.BaseURL)
	}

	// 5. Sign in
	user, err := session.Auth.Restore(ctx)
	switch {
	case err == nil:
		log.Info("Session restored", "user", user.Name)
	case *email == "":
		return exitAuth, fmt.Errorf("no usable stored session (%w), pass -email and -password", err)
	case *name != "":
		if user, err = session.Auth.Signup(ctx, *name, *email, *password); err != nil {
			return exitAuth, err
		}
	default:
		if user, err = session.Auth.Login(ctx, *email, *password); err != nil {
			return exitAuth, err
		}
	}

	if config.DebugPort > 0 {
		debug := internal.NewDebugServer(log, config.DebugPort, session.Collector, session.Monitor, session.Stats, store.Entries)
		go func() {
			if err := debug.Run(ctx); err != nil {
				log.Error("Debug server stopped", "error", err)
			}
		}()
	}

	// 6. Connect and chat
	console := newConsole(os.Stdout, session, user)
	session.Timeline.OnAppend(console.printMessage)
	session.Transport.OnStateChange(console.printStatus)

	if err = session.Start(ctx); err != nil {
		return exitRuntime, fmt.Errorf("session start: %w", err)
	}
	defer session.Stop()

	console.printTimeline()
	if err = console.loop(ctx, bufio.NewScanner(os.Stdin)); err != nil && !stderrors.Is(err, context.Canceled) {
		if stderrors.Is(err, errors.ErrAuthenticationFailed) {
			return exitAuth, err
		}
		return exitRuntime, err
	}

	log.Info("Program stopped cleanly")
	return exitOK, nil
}
