// Package config loads icnscomposer settings from YAML files and the
// environment. Files are looked up in a fixed hierarchy: built-in defaults,
// system config, the file given on the command line (or next to the working
// directory), and a config directory beside the executable. Later files
// override earlier ones, environment variables override all files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"icnscomposer/utilities/logger"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Packager names accepted in Settings.Packager.
const (
	PackagerAuto     = "auto"
	PackagerIconutil = "iconutil"
	PackagerNative   = "native"
)

// DefaultIconutilPath is where macOS ships its icon packaging tool.
const DefaultIconutilPath = "/usr/bin/iconutil"

// Settings holds every tunable of the tool. YAML keys and environment
// variable names are listed in the struct tags.
type Settings struct {
	IconutilPath string `yaml:"iconutil_path" env:"ICNSCOMPOSER_ICONUTIL"`
	Packager     string `yaml:"packager" env:"ICNSCOMPOSER_PACKAGER"`
	Strict       bool   `yaml:"strict" env:"ICNSCOMPOSER_STRICT"`
	Reveal       bool   `yaml:"reveal" env:"ICNSCOMPOSER_REVEAL"`
	TempDir      string `yaml:"temp_dir" env:"ICNSCOMPOSER_TMPDIR"`
	LogDir       string `yaml:"log_dir" env:"ICNSCOMPOSER_LOGDIR"`
}

// ErrNotFound is returned by checkForFileAndLoad when neither the .yaml nor
// the .yml variant of a config file exists.
var ErrNotFound = errors.New("configuration file not found")

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		IconutilPath: DefaultIconutilPath,
		Packager:     PackagerAuto,
		Strict:       false,
		Reveal:       true,
	}
}

// Load builds the effective settings. configFileFromCommandLine is a path
// without extension; when empty, <executable>.config is tried.
//
// Missing files are skipped, unreadable or malformed ones are errors. The
// result is not validated: command-line flags may still replace values, so
// callers run Validate once everything is applied.
//
// Parameters:
//   - configFileFromCommandLine: Settings file path without .yaml/.yml, or empty
//
// Returns an error if a settings file or an environment variable cannot be
// parsed.
func Load(configFileFromCommandLine string) (Settings, error) {
	nameOfExecutable := filepath.Base(os.Args[0])
	settings := Defaults()

	locations := []string{filepath.Join("/etc", nameOfExecutable+".d", "config")}

	if configFileFromCommandLine == "" {
		configFileFromCommandLine = nameOfExecutable + ".config"
	}
	locations = append(locations, configFileFromCommandLine)

	if executable, err := os.Executable(); err == nil {
		locations = append(locations, filepath.Join(filepath.Dir(executable), "config", nameOfExecutable))
	}

	// Later locations override earlier ones
	for _, location := range locations {
		err := checkForFileAndLoad(location, &settings)
		if errors.Is(err, ErrNotFound) {
			logger.Debug("No configuration at %s", location)
			continue
		}
		if err != nil {
			return settings, err
		}
	}

	// Environment variables override every file
	if err := ApplyEnv(&settings); err != nil {
		return settings, err
	}

	return settings, nil
}

// checkForFileAndLoad tries path.yaml then path.yml and merges every file found
// into settings.
func checkForFileAndLoad(path string, settings *Settings) error {
	found := false

	for _, candidate := range []string{path + ".yaml", path + ".yml"} {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		found = true
		logger.Debug("Loading configuration from %s", candidate)
		if err := loadYamlFile(candidate, settings); err != nil {
			return err
		}
	}

	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return nil
}

// loadYamlFile decodes a YAML file on top of the current settings. Keys not
// present in the file keep their previous value.
func loadYamlFile(path string, settings *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from ICNSCOMPOSER_* environment variables.
// Unset variables leave the current value alone.
func ApplyEnv(settings *Settings) error {
	if err := env.Parse(settings); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks that the packager name is known.
func (s Settings) Validate() error {
	switch s.Packager {
	case PackagerAuto, PackagerIconutil, PackagerNative:
		return nil
	default:
		return fmt.Errorf("unknown packager %q (want %s, %s or %s)", s.Packager, PackagerAuto, PackagerIconutil, PackagerNative)
	}
}
