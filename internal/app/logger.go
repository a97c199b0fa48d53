package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/timeline-backend/internal/config"
)

// Name is the app attribute stamped on every log record.
const Name = "timeline"

// NewLogger builds the process logger from cfg and installs it as the slog
// default. Output goes to os.Stderr.
//
// Format "json" produces structured JSON; anything else produces text with
// short file:line source locations. Level is one of debug, info, warn, error
// (case-insensitive) and defaults to info. Every record carries the app name,
// the build version and the configured store driver.
func NewLogger(cfg *config.Config) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	text := !strings.EqualFold(cfg.Log.Format, "json")

	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Log.Level),
		AddSource:   text,
		ReplaceAttr: shortSource,
	}

	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler).With(
		slog.String("app", Name),
		slog.String("version", Version),
		slog.String("driver", cfg.Database.Driver),
	)
}

// shortSource renders the source attribute as file:line.
func shortSource(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.SourceKey {
		return a
	}
	if src, ok := a.Value.Any().(*slog.Source); ok && src != nil {
		return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
	}
	return a
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
