// Package application: This file prepares the directory that receives the
// packaged icon and removes results of earlier runs when asked to.
package application

import (
	"errors"
	"os"
	"path/filepath"

	"icnscomposer/iconset"
	"icnscomposer/utilities/fileManagement"
	"icnscomposer/utilities/logger"
)

// PrepareOutputDirectory creates the parent directory of destination so the
// packager can write <destination>.icns into it.
func PrepareOutputDirectory(destination string) error {
	if destination == "" {
		return errors.New("output destination cannot be empty")
	}

	dir := filepath.Dir(destination)
	if err := fileManagement.CreateIfNotExists(dir, 0755); err != nil {
		logger.Debug("Error creating directory: %s: %v", dir, err)
		return err
	}
	return nil
}

// DeleteOutput removes an existing <destination>.icns. A missing file is not
// an error.
func DeleteOutput(destination string) error {
	output := destination + iconset.Extension
	logger.Info("Deleting previous %s", output)

	if err := os.Remove(output); err != nil && !os.IsNotExist(err) {
		logger.Debug("Error deleting %s: %v", output, err)
		return err
	}
	return nil
}
