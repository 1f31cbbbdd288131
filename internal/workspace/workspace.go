// Package workspace manages the installer's working directory and the text
// file operations the configuration pipeline depends on: writing generated
// config files and scanning checked-out firmware sources for definitions.
package workspace

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
)

const appDirName = "exinstall"

// BaseDir returns the OS-appropriate working directory for the installer.
// This follows platform conventions:
//   - Linux: $XDG_DATA_HOME/exinstall or $HOME/.local/share/exinstall
//   - macOS: $HOME/.local/share/exinstall
//   - Windows: %LOCALAPPDATA%\exinstall
func BaseDir() (string, error) {
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			return filepath.Join(userProfile, "AppData", "Local", appDirName), nil
		}
		return filepath.Join(localAppData, appDirName), nil
	}

	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", appDirName), nil
}

// InstallDir returns the checkout directory for a product repository,
// creating it if necessary.
func InstallDir(repoDir string) (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, repoDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create install directory: %w", err)
	}
	return dir, nil
}

// WriteTextFile writes lines to path and returns the path written. Each line
// is terminated with a newline. The write goes through a temporary file and
// an atomic rename so a crash never leaves a half-written config behind.
func WriteTextFile(path string, lines []string) (string, error) {
	var buf []byte
	for _, line := range lines {
		buf = append(buf, line...)
		buf = append(buf, '\n')
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf, 0o644); err != nil {
		return "", fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to save %s: %w", filepath.Base(path), err)
	}
	return path, nil
}

// ListDefines scans a source file for lines matching the given pattern and
// returns the first capture group of each match. The configuration screens
// use this to read the available stepper definitions out of the firmware's
// standard_steppers.h.
func ListDefines(path string, pattern *regexp.Regexp) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if m := pattern.FindStringSubmatch(scanner.Text()); m != nil && len(m) > 1 {
			names = append(names, m[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return names, nil
}
