// Package application: This file decodes the source images named in the
// manifest and checks them against their size labels.
package application

import (
	"fmt"
	"image"

	"icnscomposer/iconset"
	"icnscomposer/utilities/logger"

	"github.com/disintegration/imaging"
)

// LoadImages decodes every source image of the manifest. A file that cannot
// be decoded is an error. Labels iconutil does not know and images whose size
// does not match their label only produce warnings, which are logged and
// returned.
//
// Parameters:
//   - m: Manifest whose image paths are decoded
//
// Returns an error if any image file cannot be opened or decoded.
func LoadImages(m *Manifest) (map[string]image.Image, []string, error) {
	images := make(map[string]image.Image, len(m.Images))
	var warnings []string

	for _, label := range m.Labels() {
		// Decode the file; imaging detects the format from the extension
		path := m.ImagePath(label)
		img, err := imaging.Open(path)
		if err != nil {
			return nil, warnings, fmt.Errorf("load %s for %s: %w", path, label, err)
		}
		images[label] = img

		// Unknown labels are staged anyway, iconutil decides what to do with them
		if !iconset.IsKnownLabel(label) {
			warnings = append(warnings, fmt.Sprintf("label %q is not a standard iconset size", label))
		}
		// Compare the pixel size with the size the label asks for
		if w, h, ok := iconset.PixelSize(label); ok {
			b := img.Bounds()
			if b.Dx() != w || b.Dy() != h {
				warnings = append(warnings, fmt.Sprintf("%s is %dx%d, label %s expects %dx%d", path, b.Dx(), b.Dy(), label, w, h))
			}
		}
	}

	for _, warning := range warnings {
		logger.Warn("%s", warning)
	}

	return images, warnings, nil
}
