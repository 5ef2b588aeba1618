// Package iconset: This file shows the destination folder after saving. The
// platform file browser is started in the background and left running.
package iconset

import (
	"fmt"
	"os/exec"
	"runtime"

	"icnscomposer/utilities/fileManagement"
	"icnscomposer/utilities/logger"
)

// Revealer shows a directory to the user.
type Revealer interface {
	Reveal(dir string) error
}

// FileBrowser opens directories in the platform file browser: Finder on
// macOS, Explorer on Windows and xdg-open elsewhere.
type FileBrowser struct{}

// Reveal starts the file browser on dir and does not wait for it.
//
// Parameters:
//   - dir: Folder to show
//
// Returns an error if the file browser cannot be found or started.
func (FileBrowser) Reveal(dir string) error {
	name, args := browserCommand(runtime.GOOS, dir)

	// Resolve the browser through PATH before starting it
	path, err := fileManagement.FindProgramPath(name)
	if err != nil {
		return err
	}

	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	logger.Debug("Opened %s with %s", dir, name)

	// Do not wait for the browser; release the process instead
	return cmd.Process.Release()
}

// browserCommand returns the program and arguments that open dir on goos.
func browserCommand(goos, dir string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{dir}
	case "windows":
		return "explorer", []string{dir}
	default:
		return "xdg-open", []string{dir}
	}
}
