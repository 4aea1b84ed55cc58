// Package logging owns the on-disk log artifacts for a repodoc run: a
// session log written via slog, and timestamped raw-output files saved
// for postmortem debugging. Artifact files are append-only and never
// read back at runtime.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Init configures the global slog default with the given level and format.
// If w is nil, os.Stderr is used. Format must be "text" or "json".
func Init(level slog.Level, format string, w ...io.Writer) {
	var writer io.Writer = os.Stderr
	if len(w) > 0 && w[0] != nil {
		writer = w[0]
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(writer, opts)
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// New returns a logger with a "component" attribute for module-scoped logging.
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}

// Discard returns a logger that drops all output.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Session is one repodoc run's log directory: a repodoc_<timestamp>.log
// session file plus one artifact file per raw Copilot output.
type Session struct {
	dir    string
	file   *os.File
	logger *slog.Logger
	now    func() time.Time
}

// Open creates dir if needed and starts a new session log inside it.
func Open(dir string, level slog.Level) (*Session, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	name := fmt.Sprintf("repodoc_%s.log", time.Now().Format("20060102_150405"))
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("create session log: %w", err)
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return &Session{
		dir:    dir,
		file:   f,
		logger: slog.New(handler),
		now:    time.Now,
	}, nil
}

// Logger returns the session's slog logger.
func (s *Session) Logger() *slog.Logger { return s.logger }

// Dir returns the log directory.
func (s *Session) Dir() string { return s.dir }

// Close flushes and closes the session log file.
func (s *Session) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

// SaveRaw persists one raw Copilot output as its own timestamped file and
// returns the path. isErr selects the "error_" filename prefix.
func (s *Session) SaveRaw(label, content string, isErr bool) (string, error) {
	prefix := "output"
	if isErr {
		prefix = "error"
	}
	ts := s.now().Format("20060102_150405.000000000")
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s_%s.txt", prefix, label, ts))

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write raw output: %w", err)
	}
	s.logger.Info("raw output saved", "path", path)
	return path, nil
}
