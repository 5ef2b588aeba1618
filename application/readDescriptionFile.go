// Package application turns an icon manifest into a packaged .icns file.
// This file reads and validates the manifest. A manifest is a YAML file
// naming the output and the source image for every size label:
//
//	name: MyApp
//	output: build/MyApp
//	image_directory: assets/icon
//	install: build/MyApp.app
//	images:
//	  16x16: icon_16.png
//	  16x16@2x: icon_32.png
package application

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"icnscomposer/utilities/logger"

	"gopkg.in/yaml.v3"
)

// Manifest describes one icon to build.
type Manifest struct {
	// Name of the icon; used as the destination when Output is empty.
	Name string `yaml:"name"`
	// Output is the destination path without the .icns extension.
	Output string `yaml:"output"`
	// ImageDirectory is prepended to relative image paths.
	ImageDirectory string `yaml:"image_directory"`
	// Install is an optional .app bundle that receives the finished icon.
	Install string `yaml:"install"`
	// Images maps size labels to source image files.
	Images map[string]string `yaml:"images"`

	// baseDir is the directory of the manifest file; relative paths start there.
	baseDir string
}

// ReadManifest parses the YAML manifest at path. Relative paths inside the
// manifest are resolved against the manifest's directory.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	m.baseDir = filepath.Dir(path)
	logger.Debug("Read manifest %s with %d images", path, len(m.Images))

	return &m, nil
}

// SetImage adds or replaces the source file for label. Relative paths are
// taken as given, relative to the working directory.
func (m *Manifest) SetImage(label, path string) {
	if m.Images == nil {
		m.Images = make(map[string]string)
	}
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	m.Images[label] = path
}

// Labels returns the manifest's size labels in sorted order.
func (m *Manifest) Labels() []string {
	labels := make([]string, 0, len(m.Images))
	for label := range m.Images {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// ImagePath returns the resolved source path for label.
func (m *Manifest) ImagePath(label string) string {
	path := m.Images[label]
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return m.resolve(filepath.Join(m.ImageDirectory, path))
}

// Destination returns the output path without extension: Output if set,
// otherwise Name. Empty when neither is set.
func (m *Manifest) Destination() string {
	switch {
	case m.Output != "":
		return m.resolve(m.Output)
	case m.Name != "":
		return m.resolve(m.Name)
	default:
		return ""
	}
}

// InstallPath returns the resolved bundle path, or empty.
func (m *Manifest) InstallPath() string {
	if m.Install == "" {
		return ""
	}
	return m.resolve(m.Install)
}

func (m *Manifest) resolve(path string) string {
	if filepath.IsAbs(path) || m.baseDir == "" {
		return path
	}
	return filepath.Join(m.baseDir, path)
}

// Validate checks that the manifest names a destination and at least one
// image, and that every image file exists. All missing files are reported.
func (m *Manifest) Validate() error {
	if m.Destination() == "" {
		return errors.New("manifest has neither output nor name")
	}
	if len(m.Images) == 0 {
		return errors.New("manifest lists no images")
	}

	var missing []string
	for _, label := range m.Labels() {
		path := m.ImagePath(label)
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, fmt.Sprintf("%s (%s)", path, label))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("image files not found: %s", strings.Join(missing, ", "))
	}

	return nil
}
