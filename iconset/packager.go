// Package iconset: This file turns a staged .iconset directory into an .icns
// file. The default packager runs Apple's iconutil; NativePackager encodes
// the file in Go for systems without it.
package iconset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"icnscomposer/utilities/fileManagement"
	"icnscomposer/utilities/logger"

	"github.com/disintegration/imaging"
	"github.com/jackmordaunt/icns/v3"
)

// IconutilPath is the location of Apple's icon packaging tool.
const IconutilPath = "/usr/bin/iconutil"

// Packager converts a staged .iconset directory into an .icns file at output.
type Packager interface {
	Package(stagingDir, output string) error
}

// ToolError reports a packaging tool that exited with a non-zero status.
type ToolError struct {
	Tool     string
	ExitCode int
	Output   string
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", filepath.Base(e.Tool), e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

// Package appends .icns to output, runs the packager over stagingDir and
// removes stagingDir afterwards, whatever the packager did.
func (s *Iconset) Package(stagingDir, output string) error {
	packErr, cleanupErr := s.pack(stagingDir, output)
	return errors.Join(packErr, cleanupErr)
}

// pack runs the packager and always removes stagingDir afterwards. The two
// errors are kept apart so Save can report them as separate steps.
func (s *Iconset) pack(stagingDir, output string) (packErr, cleanupErr error) {
	// /out/MyIcon/ and /out/MyIcon both produce /out/MyIcon.icns
	target := filepath.Clean(output) + Extension

	if s.Packager == nil {
		packErr = fmt.Errorf("%w: no packager configured", ErrPackage)
	} else if err := s.Packager.Package(stagingDir, target); err != nil {
		packErr = wrap(ErrPackage, err)
	}

	return packErr, removeStaging(stagingDir)
}

// IconutilPackager runs iconutil (or a compatible tool) and waits for it.
type IconutilPackager struct {
	// Path to the executable. Empty means IconutilPath.
	Path string
}

// Args returns the command line arguments passed to the tool.
func (p IconutilPackager) Args(stagingDir, output string) []string {
	return []string{"-c", "icns", "-o", output, stagingDir}
}

// Package runs `iconutil -c icns -o output stagingDir` and waits for it.
// The combined output of the tool is returned inside a *ToolError when it
// exits non-zero.
//
// Parameters:
//   - stagingDir: Directory holding the icon_<label>.png files
//   - output: Path of the .icns file to create
//
// Returns an error if:
//   - The executable cannot be started
//   - iconutil exits with a non-zero status (*ToolError)
func (p IconutilPackager) Package(stagingDir, output string) error {
	// Use the standard location unless another tool was configured
	path := p.Path
	if path == "" {
		path = IconutilPath
	}

	// Capture stdout and stderr together; iconutil reports problems on either
	cmd := exec.Command(path, p.Args(stagingDir, output)...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	logger.Debug("Running %s %s", path, strings.Join(cmd.Args[1:], " "))
	if err := cmd.Run(); err != nil {
		// A non-zero exit carries the status code; anything else means the
		// tool never ran
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ToolError{Tool: path, ExitCode: exitErr.ExitCode(), Output: out.String()}
		}
		return fmt.Errorf("failed to run %s: %w", path, err)
	}

	return nil
}

// NativePackager writes the .icns file without external tools. It encodes
// only the largest staged image and the encoder derives every smaller
// representation from it by downscaling. Smaller staged variants are ignored,
// so hand-drawn small sizes are lost; each ignored file is logged at debug
// level. Use iconutil to keep them.
type NativePackager struct{}

// Package reads the icon_*.png files in stagingDir and writes output.
//
// Parameters:
//   - stagingDir: Directory holding the icon_<label>.png files
//   - output: Path of the .icns file to create
//
// Returns an error if:
//   - stagingDir holds no readable image
//   - The largest image is smaller than 16x16 or cannot be encoded
//   - output cannot be written
func (NativePackager) Package(stagingDir, output string) error {
	matches, err := filepath.Glob(filepath.Join(stagingDir, "icon_*.png"))
	if err != nil {
		return err
	}

	// Find the image with the most pixels
	var (
		largest     image.Image
		largestPath string
		area        int
		ignored     []string
	)
	for _, match := range matches {
		img, err := imaging.Open(match)
		if err != nil {
			logger.Warn("Skipping %s: %v", filepath.Base(match), err)
			continue
		}
		b := img.Bounds()
		if a := b.Dx() * b.Dy(); a > area {
			if largest != nil {
				ignored = append(ignored, largestPath)
			}
			largest, largestPath, area = img, match, a
			continue
		}
		ignored = append(ignored, match)
	}
	if largest == nil {
		return fmt.Errorf("no images in %s", stagingDir)
	}

	for _, path := range ignored {
		logger.Debug("Ignoring %s, the built-in encoder scales down %s instead", filepath.Base(path), filepath.Base(largestPath))
	}

	// Encode into memory, then replace output in one step
	var buf bytes.Buffer
	if err := icns.Encode(&buf, largest); err != nil {
		return fmt.Errorf("encode icns: %w", err)
	}

	if err := fileManagement.WriteFileAtomic(output, buf.Bytes(), 0644); err != nil {
		return err
	}
	logger.Debug("Encoded %s from a %dx%d image", output, largest.Bounds().Dx(), largest.Bounds().Dy())
	return nil
}

// IconutilAvailable reports whether an executable exists at path. It only
// checks the file mode, the tool is not run.
func IconutilAvailable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Mode()&0111 != 0
}
