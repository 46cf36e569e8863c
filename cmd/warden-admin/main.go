// ABOUTME: Admin CLI for warden credential management
// ABOUTME: Hashes passwords, prints signing tokens, mints bearer tokens, edits sqlite users

package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/2389/warden/internal/auth"
	"github.com/2389/warden/internal/config"
	"github.com/2389/warden/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "hash":
		err = cmdHash(args)
	case "token":
		err = cmdToken(args)
	case "users":
		err = cmdUsers()
	case "bearer":
		err = cmdBearer(args)
	case "set":
		err = cmdSet(args)
	case "rm":
		err = cmdRm(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage: warden-admin <command> [args]

Reads the config named by WARDEN_CONFIG (default ./warden.yaml).

Commands:
  hash <password>            Print the storable md5:salt:hash form
  token <username>           Print a user's API signing token
  users                      List configured users
  bearer <username> [hours]  Mint a bearer token (needs auth.bearer_secret)
  set <username> <password>  Create/update a user (sqlite backend only)
  rm <username>              Delete a user (sqlite backend only)`)
}

// getConfigPath mirrors the service binary's config resolution.
func getConfigPath() string {
	if envPath := os.Getenv("WARDEN_CONFIG"); envPath != "" {
		return envPath
	}
	return "warden.yaml"
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// loadCredentials returns the credential snapshot for read-only commands.
func loadCredentials(cfg *config.Config) (*store.Credentials, error) {
	switch cfg.Store.Backend {
	case "file":
		return store.LoadFile(cfg.Store.Path)
	case "sqlite":
		s, err := store.OpenSQLite(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.Load(context.Background())
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// openSQLite opens the write-capable backend, rejecting file deployments.
func openSQLite(cfg *config.Config) (*store.SQLiteStore, error) {
	if cfg.Store.Backend != "sqlite" {
		return nil, fmt.Errorf("the %s backend is read-only; edit %s instead", cfg.Store.Backend, cfg.Store.Path)
	}
	return store.OpenSQLite(cfg.Store.Path)
}

func cmdHash(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: warden-admin hash <password>")
	}

	fmt.Println(auth.HashSecret(args[0]))
	return nil
}

func cmdToken(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: warden-admin token <username>")
	}
	username := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	creds, err := loadCredentials(cfg)
	if err != nil {
		return err
	}

	if _, ok := creds.Lookup(username); !ok {
		return fmt.Errorf("unknown user %q", username)
	}

	key := cfg.Auth.CookieKey
	if key == "" {
		key = auth.DeriveKey(creds)
	}

	fmt.Println(auth.NewSalter(key).SigningToken(username))
	return nil
}

func cmdUsers() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	creds, err := loadCredentials(cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "USERNAME\tSECRET")
	for _, c := range creds.All() {
		kind := "plaintext"
		if auth.IsHashedSecret(c.Secret) {
			kind = "hashed"
		}
		fmt.Fprintf(w, "%s\t%s\n", c.Username, kind)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("%d user(s)\n", creds.Len())
	return nil
}

func cmdBearer(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: warden-admin bearer <username> [hours]")
	}
	username := args[0]

	ttl := 24 * time.Hour
	if len(args) == 2 {
		d, err := time.ParseDuration(args[1] + "h")
		if err != nil {
			return fmt.Errorf("bad hours value %q: %w", args[1], err)
		}
		ttl = d
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Auth.BearerSecret == "" {
		return fmt.Errorf("auth.bearer_secret is not configured")
	}
	creds, err := loadCredentials(cfg)
	if err != nil {
		return err
	}
	if _, ok := creds.Lookup(username); !ok {
		return fmt.Errorf("unknown user %q", username)
	}

	token, err := auth.NewBearerVerifier([]byte(cfg.Auth.BearerSecret)).Generate(username, ttl)
	if err != nil {
		return fmt.Errorf("minting token: %w", err)
	}

	fmt.Println(token)
	color.Green("Valid for %s\n", ttl)
	return nil
}

func cmdSet(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: warden-admin set <username> <password>")
	}
	username, password := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openSQLite(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.SetSecret(context.Background(), username, auth.HashSecret(password)); err != nil {
		return err
	}

	color.Green("Stored hashed secret for %s\n", username)
	color.Yellow("Restart warden to pick up the change\n")
	return nil
}

func cmdRm(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: warden-admin rm <username>")
	}
	username := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openSQLite(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteUser(context.Background(), username); err != nil {
		return err
	}

	color.Green("Deleted %s\n", username)
	color.Yellow("Restart warden to pick up the change\n")
	return nil
}
