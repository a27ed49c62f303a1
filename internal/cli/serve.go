package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"

	"portfolio-bff/internal/cache"
	"portfolio-bff/internal/config"
	"portfolio-bff/internal/services"
	"portfolio-bff/internal/web"
)

func newServeCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.HTTPPort, "port", cfg.HTTPPort, "port to listen on")
	cmd.Flags().StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "redis address; empty keeps state in memory")
	return cmd
}

// openStore connects to redis when an address is configured. Without one the
// process keeps sessions and cached pages in memory.
func openStore(cfg *config.Config) (cache.Store, error) {
	if cfg.RedisAddr == "" {
		slog.Warn("REDIS_ADDR not set, using in-memory store")
		return cache.NewMemory(), nil
	}
	client, err := cache.NewClient(cfg.RedisAddr)
	if err != nil {
		return nil, err
	}
	slog.Info("Connected to Redis", "addr", cfg.RedisAddr)
	return client, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return pkgerrors.Wrap(err, "invalid configuration")
	}
	gin.SetMode(gin.ReleaseMode)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	api := services.NewAPI(services.NewServiceClient(cfg))
	handler := web.NewHandler(cfg, api, store)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", server.Addr, "api", cfg.APIBaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return pkgerrors.Wrap(err, "listen")
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return pkgerrors.Wrap(err, "shutdown")
	}
	slog.Info("Server exited")
	return nil
}
