// Package application: This file copies a finished .icns file into a macOS
// application bundle. The icon lands in Contents/Resources/ where Finder and
// the Dock look for the file named by CFBundleIconFile.
package application

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"icnscomposer/utilities/fileManagement"
	"icnscomposer/utilities/logger"
)

// InstallIcon copies iconPath to <bundle>/Contents/Resources/, creating the
// Resources directory when needed, and keeps the source file permissions.
// It returns the installed path.
//
// The bundle must already exist and contain a Contents directory.
func InstallIcon(iconPath, bundle string) (string, error) {
	logger.Info("Copying %s into %s", filepath.Base(iconPath), bundle)

	if bundle == "" {
		return "", errors.New("bundle path is not defined")
	}

	contentsDir := filepath.Join(bundle, "Contents")
	if info, err := os.Stat(contentsDir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%s is not an application bundle", bundle)
	}

	resourcesDir := filepath.Join(contentsDir, "Resources")
	if err := fileManagement.CreateIfNotExists(resourcesDir, 0755); err != nil {
		return "", err
	}

	sourceInfo, err := os.Stat(iconPath)
	if err != nil {
		logger.Debug("failed to stat source file: %s: %v", iconPath, err)
		return "", err
	}

	target := filepath.Join(resourcesDir, filepath.Base(iconPath))
	if err := fileManagement.Copy(iconPath, target); err != nil {
		logger.Debug("failed to copy icon from source to destination file: %s: %v", target, err)
		return "", err
	}

	if err := os.Chmod(target, sourceInfo.Mode()); err != nil {
		logger.Debug("failed to set permissions on destination file: %s: %v", target, err)
		return "", err
	}

	return target, nil
}
