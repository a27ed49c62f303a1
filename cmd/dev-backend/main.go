package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"portfolio-bff/internal/config"
	"portfolio-bff/internal/devbackend"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.NewConfig()
	slog.Info("Starting dev backend", "port", cfg.DevBackendPort, "admin", cfg.DevAdminEmail)

	srv, err := devbackend.New(devbackend.Options{
		AdminEmail:    cfg.DevAdminEmail,
		AdminPassword: cfg.DevAdminPassword,
		JWTSecret:     cfg.JWTSecret,
	})
	if err != nil {
		slog.Error("Failed to start dev backend", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.DevBackendPort),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("Server listening", "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("Server shutdown error", "error", err)
		os.Exit(1)
	}
}
