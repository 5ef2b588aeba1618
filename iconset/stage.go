// Package iconset: This file writes the staging directory. Every variant
// becomes one icon_<label>.png file directly inside <name>.iconset, which is
// the layout iconutil expects.
package iconset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"icnscomposer/utilities/fileManagement"
	"icnscomposer/utilities/logger"

	"github.com/disintegration/imaging"
)

// Sentinel errors identifying the step of Save that failed.
var (
	ErrStageDirectory = errors.New("create staging directory")
	ErrPackage        = errors.New("package iconset")
	ErrCleanup        = errors.New("remove staging directory")
	ErrReveal         = errors.New("reveal destination")
)

// VariantError reports a variant that could not be staged.
type VariantError struct {
	Label string
	Err   error
}

func (e *VariantError) Error() string {
	return fmt.Sprintf("stage %s: %v", FileName(e.Label), e.Err)
}

func (e *VariantError) Unwrap() error {
	return e.Err
}

// FileName returns the staged file name for label, e.g. icon_16x16@2x.png.
func FileName(label string) string {
	return "icon_" + label + ".png"
}

// checkLabel rejects labels whose file name would not land directly inside
// the staging directory, such as "x/../../escaped".
func checkLabel(label string) error {
	name := FileName(label)
	if label == "" || filepath.Base(name) != name || strings.ContainsAny(label, `/\`) {
		return fmt.Errorf("invalid label %q", label)
	}
	return nil
}

// WriteIconset writes every variant as dir/icon_<label>.png, creating dir and
// its parents when needed. Existing files are replaced atomically.
//
// If dir cannot be created nothing is written and the error wraps
// ErrStageDirectory. A variant that fails to encode or write does not stop
// the others: the paths written so far are returned together with the
// joined *VariantError values.
//
// Parameters:
//   - dir: Staging directory, normally <tmp>/<name>.iconset
//
// Returns an error if:
//   - dir cannot be created (wraps ErrStageDirectory)
//   - A label contains a path separator (*VariantError)
//   - A variant has no image or cannot be encoded or written (*VariantError)
func (s *Iconset) WriteIconset(dir string) ([]string, error) {
	// Create the staging directory and any missing parents
	if err := fileManagement.CreateIfNotExists(dir, 0755); err != nil {
		return nil, wrap(ErrStageDirectory, err)
	}

	var (
		written []string
		errs    []error
	)

	// Write the variants in label order so results are reproducible
	for _, label := range s.Sizes() {
		// A label must not move its file out of the staging directory
		if err := checkLabel(label); err != nil {
			errs = append(errs, &VariantError{Label: label, Err: err})
			continue
		}

		path := filepath.Join(dir, FileName(label))
		if err := writeVariant(path, s.images[label]); err != nil {
			errs = append(errs, &VariantError{Label: label, Err: err})
			continue
		}
		logger.Debug("Wrote %s", path)
		written = append(written, path)
	}

	return written, errors.Join(errs...)
}

// writeVariant encodes img as PNG and writes it atomically to path.
func writeVariant(path string, img image.Image) error {
	if img == nil {
		return errors.New("no image")
	}

	// Encode into memory first so a failed encode leaves no partial file
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	return fileManagement.WriteFileAtomic(path, buf.Bytes(), 0644)
}

// removeStaging deletes the staging directory and everything in it.
func removeStaging(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return wrap(ErrCleanup, err)
	}
	logger.Debug("Removed %s", dir)
	return nil
}

// variantErrors returns the members of a joined staging error when every
// member is a *VariantError.
func variantErrors(err error) []error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return nil
	}
	parts := joined.Unwrap()
	for _, part := range parts {
		var variant *VariantError
		if !errors.As(part, &variant) {
			return nil
		}
	}
	return parts
}

// wrap ties err to a step sentinel so callers can test it with errors.Is.
func wrap(sentinel, err error) error {
	return fmt.Errorf("%w: %w", sentinel, err)
}
