package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	s := Defaults()

	if s.IconutilPath != DefaultIconutilPath {
		t.Fatalf("expected iconutil path %s, got %s", DefaultIconutilPath, s.IconutilPath)
	}
	if s.Packager != PackagerAuto {
		t.Fatalf("expected auto packager, got %s", s.Packager)
	}
	if s.Strict || !s.Reveal {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestLoadCommandLineFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "settings")
	writeConfig(t, base+".yaml", "packager: native\nstrict: true\ntemp_dir: /var/tmp/icons\n")

	s, err := Load(base)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Packager != PackagerNative || !s.Strict || s.TempDir != "/var/tmp/icons" {
		t.Fatalf("file values not applied: %+v", s)
	}
	if s.IconutilPath != DefaultIconutilPath || !s.Reveal {
		t.Fatalf("defaults lost: %+v", s)
	}
}

func TestLoadYmlOverridesYaml(t *testing.T) {
	base := filepath.Join(t.TempDir(), "settings")
	writeConfig(t, base+".yaml", "packager: native\n")
	writeConfig(t, base+".yml", "packager: iconutil\n")

	s, err := Load(base)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Packager != PackagerIconutil {
		t.Fatalf("expected .yml to win, got %s", s.Packager)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "settings")
	writeConfig(t, base+".yaml", "reveal: true\niconutil_path: /opt/iconutil\n")
	t.Setenv("ICNSCOMPOSER_REVEAL", "false")
	t.Setenv("ICNSCOMPOSER_ICONUTIL", "/usr/local/bin/iconutil")

	s, err := Load(base)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Reveal {
		t.Fatal("expected env to disable reveal")
	}
	if s.IconutilPath != "/usr/local/bin/iconutil" {
		t.Fatalf("expected env iconutil path, got %s", s.IconutilPath)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Packager != PackagerAuto {
		t.Fatalf("expected defaults, got %+v", s)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "settings")
	writeConfig(t, base+".yaml", "strict: [not, a, bool\n")

	if _, err := Load(base); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyEnvError(t *testing.T) {
	s := Defaults()
	t.Setenv("ICNSCOMPOSER_STRICT", "maybe")

	err := ApplyEnv(&s)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestValidateUnknownPackager(t *testing.T) {
	s := Defaults()
	s.Packager = "sips"

	if err := s.Validate(); err == nil {
		t.Fatal("expected error for unknown packager")
	}
}

func TestLoadLeavesValidationToCaller(t *testing.T) {
	base := filepath.Join(t.TempDir(), "settings")
	writeConfig(t, base+".yaml", "packager: sips\n")

	s, err := Load(base)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Packager != "sips" {
		t.Fatalf("expected packager from file, got %q", s.Packager)
	}
	if err := s.Validate(); err == nil {
		t.Fatal("expected unknown packager to fail validation")
	}

	s.Packager = PackagerNative
	if err := s.Validate(); err != nil {
		t.Fatalf("validate after override: %v", err)
	}
}
