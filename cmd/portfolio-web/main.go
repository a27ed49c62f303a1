package main

import (
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"portfolio-bff/internal/cli"
	"portfolio-bff/internal/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cli.Execute(config.NewConfig())
}
