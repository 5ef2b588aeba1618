// Package iconset builds macOS .icns files from a set of image variants.
//
// Variants are added under a size label such as "512x512@2x", staged as
// icon_<label>.png files inside <tmp>/<name>.iconset and handed to a
// Packager (iconutil by default). The staging directory is removed afterwards
// and the destination folder is revealed in the platform file browser.
package iconset

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"sort"

	"icnscomposer/utilities/logger"
)

// Extension is appended to the destination path to name the packaged file.
const Extension = ".icns"

// Mode selects how Save reacts to failures.
type Mode int

const (
	// BestEffort continues past every failure and reports them as warnings.
	BestEffort Mode = iota
	// Strict stops at the first failure and returns it.
	Strict
)

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "best-effort"
}

// Destination is an optional output path. The zero value is absent.
type Destination struct {
	path string
}

// NoDestination is the absent destination; saving to it does nothing.
var NoDestination = Destination{}

// DestinationOf returns a destination for path. An empty path is absent.
// The path is cleaned, so "/out/MyIcon/" and "/out/MyIcon" name the same
// output file /out/MyIcon.icns.
//
// Parameters:
//   - path: Output path without the .icns extension
func DestinationOf(path string) Destination {
	// Keep the empty path empty; filepath.Clean would turn it into "."
	if path == "" {
		return NoDestination
	}
	return Destination{path: filepath.Clean(path)}
}

// Path returns the destination path and whether one is set.
func (d Destination) Path() (string, bool) {
	return d.path, d.path != ""
}

// Iconset collects image variants for one conversion. It is not safe for
// concurrent use.
type Iconset struct {
	// Packager turns a staging directory into the final file.
	Packager Packager
	// Revealer opens the destination folder after saving. Nil disables it.
	Revealer Revealer
	// TempDir is where the staging directory is created. Empty means os.TempDir().
	TempDir string
	// Mode is BestEffort unless set otherwise.
	Mode Mode

	images map[string]image.Image
}

// New returns an empty Iconset that packages with iconutil and reveals the
// result in the file browser.
func New() *Iconset {
	return &Iconset{
		Packager: IconutilPackager{Path: IconutilPath},
		Revealer: FileBrowser{},
		images:   make(map[string]image.Image),
	}
}

// Add stores img under label, replacing any previous image for that label.
// Neither the label nor the image dimensions are checked.
func (s *Iconset) Add(img image.Image, label string) {
	if s.images == nil {
		s.images = make(map[string]image.Image)
	}
	s.images[label] = img
}

// Image returns the image stored under label.
func (s *Iconset) Image(label string) (image.Image, bool) {
	img, ok := s.images[label]
	return img, ok
}

// Len returns the number of variants.
func (s *Iconset) Len() int {
	return len(s.images)
}

// Sizes returns the labels of all variants in sorted order.
func (s *Iconset) Sizes() []string {
	labels := make([]string, 0, len(s.images))
	for label := range s.images {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// StagingDir returns the staging directory used for destination path:
// <TempDir>/<base name of path>.iconset.
//
// Parameters:
//   - path: Destination path without extension, e.g. /out/MyIcon
func (s *Iconset) StagingDir(path string) string {
	// Fall back to the system temporary directory when none is configured
	tmp := s.TempDir
	if tmp == "" {
		tmp = os.TempDir()
	}
	return filepath.Join(tmp, filepath.Base(path)+".iconset")
}

// Save stages the variants, packages them into <dest>.icns, removes the
// staging directory and reveals the destination folder.
//
// The steps run in this order:
// 1. Write every variant to <TempDir>/<name>.iconset
// 2. Run the packager on the staging directory (skipped if it could not be created)
// 3. Remove the staging directory
// 4. Open the folder containing <dest>.icns
//
// With no destination Save returns immediately with Result.Skipped set.
// In BestEffort mode the returned error is always nil and failures are
// collected in Result.Warnings. In Strict mode the first failure is returned;
// the staging directory is still removed but nothing is revealed.
//
// Parameters:
//   - dest: Output path without extension, or NoDestination
//
// Returns an error (Strict mode only) if:
//   - The staging directory cannot be created (ErrStageDirectory)
//   - A variant cannot be encoded or written (*VariantError)
//   - The packager fails (ErrPackage, wrapping *ToolError for iconutil)
//   - The staging directory cannot be removed (ErrCleanup)
//   - The file browser cannot be started (ErrReveal)
func (s *Iconset) Save(dest Destination) (*Result, error) {
	// An absent destination means there is nothing to do
	path, ok := dest.Path()
	if !ok {
		logger.Debug("No destination given, skipping save")
		return &Result{Skipped: true, ExitCode: -1}, nil
	}

	stagingDir := s.StagingDir(path)
	result := &Result{
		StagingDir: stagingDir,
		Output:     path + Extension,
		ExitCode:   -1, // Stays -1 until the packager has run
	}
	logger.Debug("Staging %d variants in %s", s.Len(), stagingDir)

	// Step 1: Write icon_<label>.png files into the staging directory
	// Variant failures leave the directory usable, a directory failure does not
	written, err := s.WriteIconset(stagingDir)
	result.Staged = written
	staged := !errors.Is(err, ErrStageDirectory)
	if err != nil {
		if s.record(result, err) {
			// Strict mode: clean up whatever was written and stop
			s.record(result, removeStaging(stagingDir))
			return result, err
		}
	}

	if staged {
		// Step 2 and 3: Package, then remove the staging directory regardless
		// of the packaging outcome
		packErr, cleanupErr := s.pack(stagingDir, path)
		result.setExitCode(packErr)
		if packErr == nil {
			result.Packaged = true
			logger.Info("Created %s", result.Output)
		}
		if s.record(result, packErr) {
			s.record(result, cleanupErr)
			return result, packErr
		}
		if s.record(result, cleanupErr) {
			return result, cleanupErr
		}
	} else {
		// Nothing to package; remove a partially created directory if any
		logger.Debug("Staging failed, not packaging %s", result.Output)
		if err := removeStaging(stagingDir); s.record(result, err) {
			return result, err
		}
	}

	// Step 4: Show the folder that holds (or would hold) the .icns file
	if s.Revealer != nil {
		dir := filepath.Dir(path)
		err := s.Revealer.Reveal(dir)
		if err == nil {
			result.Revealed = true
		} else {
			err = wrap(ErrReveal, err)
		}
		if s.record(result, err) {
			return result, err
		}
	}

	return result, nil
}

// record appends err to the result warnings and reports whether Save must
// stop. Nil errors are ignored. Joined staging errors are recorded one per
// variant.
func (s *Iconset) record(result *Result, err error) bool {
	if err == nil {
		return false
	}

	// Split joined variant failures so each one becomes its own warning
	parts := []error{err}
	if variants := variantErrors(err); len(variants) > 0 {
		parts = variants
	}
	result.Warnings = append(result.Warnings, parts...)

	// Strict mode stops here; the caller returns err
	if s.Mode == Strict {
		return true
	}
	for _, part := range parts {
		logger.Warn("%v", part)
	}
	return false
}
