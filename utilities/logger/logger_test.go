package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func resetLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetSilent(false)
	SetVerbose(false)
	t.Cleanup(func() {
		Close()
		SetOutput(os.Stdout)
		SetSilent(false)
		SetVerbose(false)
	})
	return &buf
}

func TestInfoFormatsValues(t *testing.T) {
	buf := resetLogger(t)

	Info("staged %d files in %s", 3, "/tmp/App.iconset")

	if !strings.Contains(buf.String(), "[Info] staged 3 files in /tmp/App.iconset") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestDebugNeedsVerbose(t *testing.T) {
	buf := resetLogger(t)

	Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no debug output, got %q", buf.String())
	}

	SetVerbose(true)
	Debug("shown %s", "now")
	if !strings.Contains(buf.String(), "[Debug] shown now") {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}

func TestSilentKeepsErrors(t *testing.T) {
	buf := resetLogger(t)
	SetSilent(true)

	Info("info")
	Warn("warn")
	Error(os.ErrNotExist)

	out := buf.String()
	if strings.Contains(out, "[Info]") || strings.Contains(out, "[Warn]") {
		t.Fatalf("silent mode leaked output: %q", out)
	}
	if !strings.Contains(out, "[Error] file does not exist") {
		t.Fatalf("expected error line, got %q", out)
	}
}

func TestSetLogFileWritesEverything(t *testing.T) {
	resetLogger(t)
	SetSilent(true)
	dir := filepath.Join(t.TempDir(), "logs")

	if err := SetLogFile("icnscomposer", dir); err != nil {
		t.Fatalf("set log file: %v", err)
	}
	path := GetLogFilePath()
	if !strings.HasPrefix(filepath.Base(path), "icnscomposer_") || filepath.Ext(path) != ".log" {
		t.Fatalf("unexpected log file name %q", path)
	}

	Info("written to file")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "[Info] written to file") {
		t.Fatalf("log file missing line: %q", data)
	}
}
