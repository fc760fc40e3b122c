// Package logger создаёт slog.Logger в зависимости от окружения.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Окружения, которые понимает конфиг.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// New возвращает логгер, пишущий в stdout.
func New(env string) *slog.Logger {
	return NewWithWriter(env, os.Stdout)
}

// NewWithWriter возвращает текстовый логгер уровня debug для local и dev
// и JSON-логгер уровня info для prod и неизвестных окружений.
func NewWithWriter(env string, w io.Writer) *slog.Logger {
	switch env {
	case EnvLocal, EnvDev:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}
