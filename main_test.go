package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"icnscomposer/utilities/config"
)

func TestImageFlagsSet(t *testing.T) {
	f := imageFlags{}

	if err := f.Set("32x32@2x=assets/icon64.png"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if f["32x32@2x"] != "assets/icon64.png" {
		t.Fatalf("unexpected value %v", f)
	}
	if f.String() != "32x32@2x=assets/icon64.png" {
		t.Fatalf("unexpected string %q", f.String())
	}

	for _, bad := range []string{"icon.png", "=icon.png", "16x16="} {
		if err := f.Set(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestAbsPath(t *testing.T) {
	got := absPath("build/App")
	if !filepath.IsAbs(got) || filepath.Base(got) != "App" {
		t.Fatalf("unexpected path %s", got)
	}
}

func TestPackagerFlagOverridesInvalidFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "settings")
	if err := os.WriteFile(base+".yaml", []byte("packager: sips\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := loadSettings(base); err == nil {
		t.Fatal("expected invalid packager from file to be rejected")
	}

	if err := flag.CommandLine.Set("packager", config.PackagerNative); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	t.Cleanup(func() {
		*packagerFlag = ""
	})

	settings, err := loadSettings(base)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings.Packager != config.PackagerNative {
		t.Fatalf("expected native packager, got %q", settings.Packager)
	}
}
