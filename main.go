// Package main is the entry point for icnscomposer.
// This tool builds a macOS .icns file from a set of PNG (or JPEG, GIF, TIFF,
// BMP) images, one per icon size. The images are staged as an .iconset
// directory and packaged with iconutil, or with the built-in encoder where
// iconutil is not available.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"icnscomposer/application"
	"icnscomposer/iconset"
	"icnscomposer/utilities/config"
	"icnscomposer/utilities/logger"
)

// imageFlags collects repeated -image label=path arguments.
type imageFlags map[string]string

func (f imageFlags) String() string {
	pairs := make([]string, 0, len(f))
	for label, path := range f {
		pairs = append(pairs, label+"="+path)
	}
	return strings.Join(pairs, ",")
}

// Set parses one label=path pair. A later pair for the same label wins.
func (f imageFlags) Set(value string) error {
	label, path, ok := strings.Cut(value, "=")
	if !ok || label == "" || path == "" {
		return fmt.Errorf("expected label=path, got %q", value)
	}
	f[label] = path
	return nil
}

// Command-line flags define what icon is built and how.
// Settings flags override the configuration files and the environment only
// when they are given explicitly.
var (
	// manifestFlag: Path to the YAML manifest listing the output and one image per size.
	// Optional when the images are given with -image.
	manifestFlag = flag.String("manifest", "", "Icon manifest (YAML) listing the output and the image for every size")

	// outputFlag: Destination without the .icns extension, e.g. build/MyApp.
	// Overrides the manifest's output.
	outputFlag = flag.String("output", "", "Destination path without extension; overrides the manifest")

	// nameFlag: Icon name. Used as the destination when no output is set.
	nameFlag = flag.String("name", "", "Icon name, used as destination when no output is given")

	// installFlag: Existing .app bundle that receives the finished icon in Contents/Resources.
	installFlag = flag.String("install", "", "Copy the finished icon into this .app bundle")

	// configFlag: Settings file path without extension; .yaml and .yml are tried.
	configFlag = flag.String("config", "", "Settings file path without .yaml/.yml extension")

	// packagerFlag: auto uses iconutil when present and the built-in encoder otherwise.
	packagerFlag = flag.String("packager", "", "Packager to use: auto, iconutil or native")

	// strictFlag: If true, the first failed step ends the run with an error.
	// Otherwise failures are reported as warnings and the remaining steps still run.
	strictFlag = flag.Bool("strict", false, "Stop at the first failure instead of continuing")

	// revealFlag: If true, the destination folder is opened in the file browser.
	revealFlag = flag.Bool("reveal", true, "Open the destination folder when done")

	// cleanFlag: If true, an existing <output>.icns is deleted before building.
	cleanFlag = flag.Bool("clean", false, "Delete an existing output file before building")

	// silentFlag: If true, suppresses informational log messages (only errors will be shown).
	silentFlag = flag.Bool("silent", false, "Only print errors")

	// verboseFlag: If true, debug messages are printed as well.
	verboseFlag = flag.Bool("verbose", false, "Print debug messages")

	// logDirFlag: Directory where log files should be written. If set, enables file logging.
	// Log files are named with the icon name and timestamp: <name>_YYYY-MM-DD_HH-MM-SS.log
	logDirFlag = flag.String("logdir", "", "Directory for log files (enables file logging)")

	// images: Repeatable -image label=path pairs, merged over the manifest images.
	images = imageFlags{}
)

func init() {
	flag.Var(images, "image", "Image for one size as label=path, e.g. 32x32@2x=icon64.png (repeatable)")
}

// main is the entry point of icnscomposer.
// It runs the conversion in the following order:
// 1. Parse command-line flags and configure the logger
// 2. Load settings from files and the environment, then apply flags
// 3. Build the manifest from the manifest file and the flags
// 4. Optionally start file logging
// 5. Compose the icon: load images, stage, package, clean up, reveal
// 6. Report the outcome
func main() {
	// Parse all command-line flags defined above
	flag.Parse()
	defer logger.Close()

	// Configure console output before anything is logged
	logger.SetSilent(*silentFlag)
	logger.SetVerbose(*verboseFlag)

	// Settings: defaults < files < environment < flags
	settings, err := loadSettings(*configFlag)
	if err != nil {
		errorExit(err)
	}

	// The manifest names the images and the output; flags override it
	manifest, err := buildManifest()
	if err != nil {
		errorExit(err)
	}

	// Set up file logging if a log directory is configured
	// Messages then go to both the console and the log file
	if settings.LogDir != "" {
		logName := manifest.Name
		if logName == "" {
			logName = "icnscomposer" // Fallback if no name available
		}
		if err := logger.SetLogFile(logName, settings.LogDir); err != nil {
			// File logging is optional, keep going
			logger.Warn("Failed to set up file logging: %v", err)
		} else {
			logger.Info("Logging to file: %s", logger.GetLogFilePath())
		}
	}

	// Run the conversion
	composer := &application.Composer{
		Settings: settings,
		Clean:    *cleanFlag,
	}
	result, err := composer.Compose(manifest)
	if err != nil {
		errorExit(err)
	}

	report(result)
}

// loadSettings reads the settings files and the environment, applies the
// explicitly given flags and validates the result once.
//
// Parameters:
//   - configFile: Settings file path without extension, or empty
//
// Returns an error if a settings source cannot be parsed or the final
// settings are invalid.
func loadSettings(configFile string) (config.Settings, error) {
	settings, err := config.Load(configFile)
	if err != nil {
		return settings, err
	}

	// Flags win over files, so validate only after applying them
	applyFlags(&settings)
	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

// applyFlags copies explicitly set flags over the loaded settings.
func applyFlags(settings *config.Settings) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "packager":
			settings.Packager = *packagerFlag
		case "strict":
			settings.Strict = *strictFlag
		case "reveal":
			settings.Reveal = *revealFlag
		case "logdir":
			settings.LogDir = *logDirFlag
		}
	})
}

// buildManifest reads the manifest file, if any, and applies the
// command-line overrides.
//
// Returns an error if the manifest cannot be read or no images were given.
func buildManifest() (*application.Manifest, error) {
	// Start from the manifest file when one was given
	manifest := &application.Manifest{}
	if *manifestFlag != "" {
		var err error
		manifest, err = application.ReadManifest(*manifestFlag)
		if err != nil {
			return nil, err
		}
	}

	// Command-line values replace manifest values
	if *outputFlag != "" {
		manifest.Output = absPath(*outputFlag)
	}
	if *nameFlag != "" {
		manifest.Name = *nameFlag
	}
	if *installFlag != "" {
		manifest.Install = absPath(*installFlag)
	}
	for label, path := range images {
		manifest.SetImage(label, path)
	}

	// Without images there is nothing to build
	if len(manifest.Images) == 0 {
		flag.Usage()
		return nil, errors.New("no images given: use -manifest or -image")
	}
	return manifest, nil
}

// absPath anchors command-line paths to the working directory so the
// manifest does not resolve them against its own location.
func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// report logs the final state of the run.
func report(result *iconset.Result) {
	if len(result.Warnings) == 0 {
		logger.Info("icnscomposer completed successfully")
		return
	}
	logger.Warn("icnscomposer completed with %d warning(s)", len(result.Warnings))
}

// errorExit logs err and terminates the program with status 1.
func errorExit(err error) {
	if err != nil {
		logger.Error(err)
		logger.Close()
		os.Exit(1)
	}
}
