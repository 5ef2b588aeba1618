// Package application: This file runs a complete conversion. It loads the
// manifest images, builds an iconset with the configured packager and mode,
// saves it and optionally installs the result into an application bundle.
package application

import (
	"fmt"

	"icnscomposer/iconset"
	"icnscomposer/utilities/config"
	"icnscomposer/utilities/logger"
)

// Composer holds what a conversion needs besides the manifest.
type Composer struct {
	Settings config.Settings
	// Packager overrides the one chosen from Settings.
	Packager iconset.Packager
	// Revealer overrides the file browser. Ignored when Settings.Reveal is off.
	Revealer iconset.Revealer
	// Clean removes an existing output file before packaging.
	Clean bool
}

// SelectPackager returns the packager named in settings. "auto" uses
// iconutil when it exists at the configured path and falls back to the
// built-in encoder otherwise.
//
// Parameters:
//   - settings: Effective settings; Packager and IconutilPath are used
//
// Returns an error if the packager name is unknown.
func SelectPackager(settings config.Settings) (iconset.Packager, error) {
	// Use the standard iconutil location unless another one is configured
	path := settings.IconutilPath
	if path == "" {
		path = iconset.IconutilPath
	}

	switch settings.Packager {
	case config.PackagerIconutil:
		return iconset.IconutilPackager{Path: path}, nil
	case config.PackagerNative:
		return iconset.NativePackager{}, nil
	case config.PackagerAuto, "":
		if iconset.IconutilAvailable(path) {
			return iconset.IconutilPackager{Path: path}, nil
		}
		logger.Debug("%s not available, using the built-in encoder", path)
		return iconset.NativePackager{}, nil
	default:
		return nil, fmt.Errorf("unknown packager %q", settings.Packager)
	}
}

// Compose validates m, builds the iconset and saves it.
// The steps run in this order:
// 1. Validate the manifest and decode its images
// 2. Choose the packager and configure the iconset
// 3. Create the output directory and optionally delete an earlier result
// 4. Save: stage, package, clean up and reveal
// 5. Optionally copy the result into an application bundle
//
// Parameters:
//   - m: Manifest naming the output and the source images
//
// Returns an error if:
//   - The manifest is invalid or an image cannot be decoded
//   - The packager name is unknown
//   - The output directory cannot be prepared
//   - Any Save step fails in strict mode (best-effort failures become warnings)
//   - Installing into the bundle fails
func (c *Composer) Compose(m *Manifest) (*iconset.Result, error) {
	// Step 1: Check that every file exists before any work is done
	if err := m.Validate(); err != nil {
		return nil, err
	}

	images, _, err := LoadImages(m)
	if err != nil {
		return nil, err
	}

	// Step 2: An explicitly set packager wins over the settings
	packager := c.Packager
	if packager == nil {
		packager, err = SelectPackager(c.Settings)
		if err != nil {
			return nil, err
		}
	}

	set := iconset.New()
	set.Packager = packager
	set.TempDir = c.Settings.TempDir

	// Only reveal when the settings ask for it
	set.Revealer = nil
	if c.Settings.Reveal {
		set.Revealer = iconset.FileBrowser{}
		if c.Revealer != nil {
			set.Revealer = c.Revealer
		}
	}
	if c.Settings.Strict {
		set.Mode = iconset.Strict
	}
	for label, img := range images {
		set.Add(img, label)
	}

	// Step 3: Make sure the packager can write <destination>.icns
	destination := m.Destination()
	if err := PrepareOutputDirectory(destination); err != nil {
		return nil, err
	}
	if c.Clean {
		if err := DeleteOutput(destination); err != nil {
			return nil, err
		}
	}

	// Step 4: Stage, package, clean up and reveal
	logger.Info("Composing %s from %d images (%s)", destination+iconset.Extension, set.Len(), set.Mode)
	result, err := set.Save(iconset.DestinationOf(destination))
	if err != nil {
		return result, err
	}

	// Step 5: Copy the icon into the bundle, but only if one was produced
	if bundle := m.InstallPath(); bundle != "" {
		if !result.Packaged {
			logger.Warn("Not installing into %s: no icon was produced", bundle)
			return result, nil
		}
		if _, err := InstallIcon(result.Output, bundle); err != nil {
			return result, err
		}
	}

	return result, nil
}
