// Package logger builds the application's structured logger and a
// secondary plain-text HTTP access logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/fx"
)

var Module = fx.Module("logger",
	fx.Provide(
		NewLogger,
		NewHTTPLogger,
	),
)

// Scope tags a logger/log line with the component that emitted it.
func Scope(scope string) slog.Attr {
	return slog.String("scope", scope)
}

// Error attaches an error under a stable "error" key so error chains
// produced by errors.Join print in full instead of being flattened by
// fmt-style formatting.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// NewLogger builds the process-wide slog.Logger. LOG_LEVEL selects the
// minimum level (debug/info/warn|warning/error, case-insensitive,
// default info). GO_ENV=production selects a JSON handler; anything
// else selects a human-readable text handler.
func NewLogger() *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(os.Getenv("GO_ENV"), "production") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info", "":
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}

// HTTPLogger appends one line per inbound HTTP request to a dedicated
// writer, independent of the structured slog stream. It exists for ops
// tooling that tails a flat access log rather than parsing JSON.
type HTTPLogger struct {
	mu  sync.Mutex
	out io.Writer
}

// NewHTTPLogger opens the access log target. HTTP_LOG_PATH selects a
// file path; unset or "-" writes to stdout.
func NewHTTPLogger() *HTTPLogger {
	path := os.Getenv("HTTP_LOG_PATH")
	if path == "" || path == "-" {
		return &HTTPLogger{out: os.Stdout}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &HTTPLogger{out: os.Stdout}
	}
	return &HTTPLogger{out: f}
}

// LogRequest writes one access-log line for a completed HTTP request.
func (h *HTTPLogger) LogRequest(ip, method, uri string, status int, latency time.Duration, userAgent, requestID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	io.WriteString(h.out, time.Now().UTC().Format(time.RFC3339)+
		" ip="+ip+
		" method="+method+
		" uri="+uri+
		" status="+strconv.Itoa(status)+
		" latency="+latency.String()+
		" request_id="+requestID+
		" user_agent=\""+userAgent+"\"\n")
}
