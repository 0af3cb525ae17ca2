package logging

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
)

type Options struct {
	Level string
	JSON  bool
	// Output defaults to stderr.
	Output io.Writer
}

var def atomic.Value

func init() {
	def.Store(newLogger(Options{}))
}

func Configure(opts Options) {
	def.Store(newLogger(opts))
}

func newLogger(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	cfg := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(out, cfg)
	} else {
		h = slog.NewTextHandler(out, cfg)
	}
	return slog.New(h).With("app", "ticketcsv")
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

func L() *slog.Logger {
	l, _ := def.Load().(*slog.Logger)
	return l
}

// InitFromEnv reads TICKETCSV_LOG_LEVEL and TICKETCSV_LOG_JSON. Explicit
// non-empty overrides (from CLI flags) win over the environment.
func InitFromEnv(levelOverride string) {
	lvl := os.Getenv("TICKETCSV_LOG_LEVEL")
	if levelOverride != "" {
		lvl = levelOverride
	}
	json := false
	if b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv("TICKETCSV_LOG_JSON"))); err == nil {
		json = b
	}
	Configure(Options{Level: lvl, JSON: json})
}
