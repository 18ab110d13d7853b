package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const serviceName = "fieldlog"

// Options selects the level, encoding and destinations of the process log.
type Options struct {
	Level  string    // debug, info, warn or error; anything else is info
	Format string    // json or text; empty means json
	File   string    // optional file that receives a copy of every entry
	Stderr io.Writer // nil means os.Stderr
}

// New builds the process logger and installs it as the slog default. Every
// entry carries the service name and a UTC timestamp with milliseconds.
// The returned cleanup closes the log file, if any; callers must defer it.
func New(opts Options) (*slog.Logger, func(), error) {
	out := opts.Stderr
	if out == nil {
		out = os.Stderr
	}
	cleanup := func() {}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(out, f)
		cleanup = func() { _ = f.Close() }
	}

	handler, err := newHandler(out, opts.Format, &slog.HandlerOptions{
		Level:       parseLevel(opts.Level),
		ReplaceAttr: utcTime,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	logger := slog.New(handler).With("service", serviceName)
	slog.SetDefault(logger)
	return logger, cleanup, nil
}

func newHandler(w io.Writer, format string, ho *slog.HandlerOptions) (slog.Handler, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return slog.NewJSONHandler(w, ho), nil
	case "text":
		return slog.NewTextHandler(w, ho), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func utcTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Value = slog.StringValue(a.Value.Time().UTC().Format("2006-01-02T15:04:05.000Z"))
	}
	return a
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err == nil {
		return lvl
	}
	if strings.EqualFold(strings.TrimSpace(s), "warning") {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}
