// Package iconset: This file knows the size labels iconutil accepts and the
// pixel dimensions each label stands for.
package iconset

import (
	"regexp"
	"strconv"
)

// Labels lists the size labels iconutil recognizes, smallest first.
var Labels = []string{
	"16x16", "16x16@2x",
	"32x32", "32x32@2x",
	"128x128", "128x128@2x",
	"256x256", "256x256@2x",
	"512x512", "512x512@2x",
}

// maxPixels bounds a side after scaling; no icon comes close to it.
const maxPixels = 1 << 20

var labelPattern = regexp.MustCompile(`^(\d+)x(\d+)(?:@(\d+)x)?$`)

// IsKnownLabel reports whether label is one of Labels.
func IsKnownLabel(label string) bool {
	for _, known := range Labels {
		if label == known {
			return true
		}
	}
	return false
}

// PixelSize returns the pixel dimensions a label asks for, scale factor
// included: "32x32@2x" is 64x64.
func PixelSize(label string) (width, height int, ok bool) {
	m := labelPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, 0, false
	}

	// Numbers that overflow an int are not valid sizes
	var err error
	if width, err = strconv.Atoi(m[1]); err != nil {
		return 0, 0, false
	}
	if height, err = strconv.Atoi(m[2]); err != nil {
		return 0, 0, false
	}
	scale := 1
	if m[3] != "" {
		if scale, err = strconv.Atoi(m[3]); err != nil {
			return 0, 0, false
		}
	}
	if width == 0 || height == 0 || scale == 0 {
		return 0, 0, false
	}

	// Reject products that would overflow
	if width > maxPixels/scale || height > maxPixels/scale {
		return 0, 0, false
	}

	return width * scale, height * scale, true
}
