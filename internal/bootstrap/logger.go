package bootstrap

import (
	"log/slog"
	"os"

	"github.com/YeswanthC7/keepkind/internal/config"
)

// SetupLogger installs a JSON slog logger on stderr as the process default.
func SetupLogger(cfg *config.Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With("app", cfg.App.Name, "env", cfg.App.Env)
	slog.SetDefault(logger)
	return logger
}
