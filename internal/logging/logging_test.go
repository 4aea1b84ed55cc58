package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_HasComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelDebug, "text", &buf)

	logger := New("test-component")
	logger.Info("hello")

	output := buf.String()
	if !strings.Contains(output, "component=test-component") {
		t.Errorf("expected component=test-component in output, got: %s", output)
	}
	if !strings.Contains(output, "hello") {
		t.Errorf("expected 'hello' in output, got: %s", output)
	}
}

func TestInit_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelInfo, "json", &buf)

	logger := New("json-test")
	logger.Info("json check")

	output := buf.String()
	if !strings.Contains(output, `"level":"INFO"`) {
		t.Errorf("expected JSON level field in output, got: %s", output)
	}
}

func TestOpen_CreatesSessionLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	s, err := Open(dir, slog.LevelDebug)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	s.Logger().Info("session started")
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read log dir: %v", err)
	}
	var found bool
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "repodoc_") && strings.HasSuffix(e.Name(), ".log") {
			found = true
			data, _ := os.ReadFile(filepath.Join(dir, e.Name()))
			if !strings.Contains(string(data), "session started") {
				t.Errorf("expected log entry in session file, got: %s", data)
			}
		}
	}
	if !found {
		t.Errorf("expected a repodoc_*.log file in %s", dir)
	}
}

func TestSaveRaw_PrefixesAndContent(t *testing.T) {
	s, err := Open(t.TempDir(), slog.LevelDebug)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	okPath, err := s.SaveRaw("copilot_output", `{"ok":true}`, false)
	if err != nil {
		t.Fatalf("SaveRaw failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(okPath), "output_copilot_output_") {
		t.Errorf("unexpected artifact name: %s", okPath)
	}

	errPath, err := s.SaveRaw("copilot_error", "boom", true)
	if err != nil {
		t.Fatalf("SaveRaw failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(errPath), "error_copilot_error_") {
		t.Errorf("unexpected artifact name: %s", errPath)
	}

	data, err := os.ReadFile(okPath)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("artifact content = %q", data)
	}
}
