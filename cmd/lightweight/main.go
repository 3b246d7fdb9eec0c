package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	adapthttp "lightweight/internal/adapter/http"
	"lightweight/internal/adapter/rediscache"
	"lightweight/internal/adapter/sqlstore"
	"lightweight/internal/app"
	"lightweight/internal/auth"
	"lightweight/internal/config"
	"lightweight/internal/domain"
	"lightweight/internal/hasher"
	"lightweight/internal/logger"
)

const usage = `usage: lightweight [serve|migrate|delete-user] [flags]

  serve         run the HTTP server (default)
  migrate       apply schema migrations and exit
  delete-user   delete a user and everything they own (-id N)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "lightweight:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cmd := "serve"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage); fs.PrintDefaults() }
	configPath := fs.String("config", os.Getenv("LIGHTWEIGHT_CONFIG"), "path to a YAML config file")
	userID := fs.Int64("id", 0, "user id for delete-user")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "serve":
		if err := cfg.Validate(); err != nil {
			return err
		}
		return serve(ctx, cfg, log)
	case "migrate":
		if err := cfg.Database.Validate(); err != nil {
			return err
		}
		store, err := sqlstore.Open(sqlstore.Driver(cfg.Database.Driver), cfg.Database.DSN, log)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		return store.Close()
	case "delete-user":
		if err := cfg.Database.Validate(); err != nil {
			return err
		}
		return deleteUser(ctx, cfg, log, *userID)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func serve(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	store, err := sqlstore.Open(sqlstore.Driver(cfg.Database.Driver), cfg.Database.DSN, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = store.Close() }()

	records, closeCache, err := withImageCache(ctx, cfg, store, log)
	if err != nil {
		return err
	}
	defer closeCache()

	h := newHasher(cfg.Hasher.Algorithm, log)
	repo := app.NewUserRepository(records, records, records, h, log)

	tokens, err := auth.NewTokens(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	srv := adapthttp.New(repo, h, tokens, log).WithSecureCookie(cfg.Auth.SecureCookie)
	if cfg.OIDC.Enabled() {
		sso, err := adapthttp.NewSSO(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID, cfg.OIDC.ClientSecret, cfg.OIDC.RedirectURL)
		if err != nil {
			return err
		}
		srv.WithSSO(sso)
		log.Info("sso enabled", zap.String("issuer", cfg.OIDC.Issuer))
	}

	httpSrv := &http.Server{Addr: cfg.Server.Addr, Handler: srv.Handler()}
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Server.Addr))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func deleteUser(ctx context.Context, cfg config.Config, log *zap.Logger, id int64) error {
	if id <= 0 {
		return errors.New("delete-user: -id is required")
	}

	store, err := sqlstore.Open(sqlstore.Driver(cfg.Database.Driver), cfg.Database.DSN, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = store.Close() }()

	records, closeCache, err := withImageCache(ctx, cfg, store, log)
	if err != nil {
		return err
	}
	defer closeCache()

	repo := app.NewUserRepository(records, records, records, newHasher(cfg.Hasher.Algorithm, log), log)
	if res := repo.GetUser(ctx, id); !res.IsOK() {
		return fmt.Errorf("delete-user %d: %w", id, res.Err())
	}
	if res := repo.DeleteUser(ctx, id); !res.IsOK() {
		return fmt.Errorf("delete-user %d: %w", id, res.Err())
	}
	fmt.Printf("deleted user %d\n", id)
	return nil
}

// withImageCache puts the redis cache in front of store when it is enabled,
// so every process that writes images invalidates the same keys.
func withImageCache(ctx context.Context, cfg config.Config, store domain.RecordStore, log *zap.Logger) (domain.RecordStore, func(), error) {
	if !cfg.Redis.Enabled {
		return store, func() {}, nil
	}
	client, err := rediscache.Dial(ctx, &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	log.Info("profile image cache enabled", zap.String("addr", cfg.Redis.Addr))
	return rediscache.New(store, client, cfg.Redis.TTL, log), func() { _ = client.Close() }, nil
}

// newHasher falls back to SHA-256 when the configured algorithm is unknown.
func newHasher(alg string, log *zap.Logger) *hasher.Hasher {
	h, err := hasher.New(hasher.Algorithm(alg))
	if err != nil {
		log.Warn("unknown hasher algorithm, using sha256", zap.String("algorithm", alg))
		return hasher.Default()
	}
	return h
}
