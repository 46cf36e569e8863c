// ABOUTME: Entry point for the warden authentication service
// ABOUTME: Loads config and credentials, wires hooks, and serves the HTTP surface

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/2389/warden/internal/auth"
	"github.com/2389/warden/internal/config"
	"github.com/2389/warden/internal/hooks"
	"github.com/2389/warden/internal/store"
	"github.com/2389/warden/internal/web"
)

// version is set by goreleaser at build time.
var version = "dev"

const banner = `
 __      ____ _ _ __ __| | ___ _ __
 \ \ /\ / / _' | '__/ _' |/ _ \ '_ \
  \ V  V / (_| | | | (_| |  __/ | | |
   \_/\_/ \__,_|_|  \__,_|\___|_| |_|
`

// getConfigPath returns the path to the warden config file.
// Priority: WARDEN_CONFIG env var > ./warden.yaml
func getConfigPath() string {
	if envPath := os.Getenv("WARDEN_CONFIG"); envPath != "" {
		return envPath
	}
	return "warden.yaml"
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: warden <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve     Start the authentication service")
		fmt.Println("  health    Check service health")
		fmt.Println("  version   Print the version")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "health":
		err = runHealth(ctx)
	case "version":
		fmt.Println("warden", version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogger builds the process logger from config and installs it as the
// slog default.
func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// loadCredentials opens the configured backend and returns the immutable
// credential snapshot the auth core works against.
func loadCredentials(ctx context.Context, cfg config.StoreConfig) (*store.Credentials, error) {
	switch cfg.Backend {
	case "file":
		return store.LoadFile(cfg.Path)
	case "sqlite":
		s, err := store.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.Load(ctx)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func runServe(ctx context.Context) error {
	fmt.Print(banner)

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)

	creds, err := loadCredentials(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}
	if creds.Len() == 0 {
		logger.Warn("credential store is empty; nobody can authenticate")
	}

	key := cfg.Auth.CookieKey
	if key == "" {
		key = auth.DeriveKey(creds)
		logger.Warn("auth.cookie_key not set; derived from credentials (sessions reset when secrets change)")
	}
	salter := auth.NewSalter(key)

	registry := hooks.NewRegistry()
	if cfg.Auth.BearerSecret != "" {
		verifier := auth.NewBearerVerifier([]byte(cfg.Auth.BearerSecret))
		registry.AddFilter(auth.FilterShuntIsValidUser, auth.BearerShunt(verifier, creds, logger))
		logger.Info("bearer token authentication enabled")
	}

	sessions := auth.NewSessions(creds, salter, registry, logger, auth.SessionConfig{
		Life:   cfg.Auth.CookieLife,
		Domain: cfg.Auth.CookieDomain,
		Secure: cfg.Auth.SecureCookies,
	})
	authenticator := auth.New(creds, salter, sessions, registry, logger, auth.Config{
		Private:   cfg.Auth.Private,
		NonceLife: cfg.Auth.NonceLife,
	})

	handler := web.New(authenticator, logger)
	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("warden listening",
			"addr", cfg.Server.HTTPAddr,
			"users", creds.Len(),
			"private", cfg.Auth.Private,
			"version", version,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// runHealth probes the login page of a running instance.
func runHealth(ctx context.Context) error {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	addr := cfg.Server.HTTPAddr
	if addr != "" && addr[0] == ':' {
		addr = "localhost" + addr
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/login", nil)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("warden is not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	fmt.Println("ok")
	return nil
}
