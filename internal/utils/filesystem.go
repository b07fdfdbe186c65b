package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnvVar overrides the program directory. Tests and portable installs
// use it to keep config and history away from the binary.
const HomeEnvVar = "SHROUD_HOME"

// ProgramDir returns the directory that holds shroud's config and history
// log: $SHROUD_HOME when set, otherwise the directory of the running binary.
func ProgramDir() (string, error) {
	if home := os.Getenv(HomeEnvVar); home != "" {
		return home, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}

	// Resolve symlinks so a linked binary finds the config next to the real one.
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Dir(exe), nil
}

// IsRegularFile reports whether path exists and is a regular file.
// The error is non-nil only when the path exists but cannot be inspected.
func IsRegularFile(path string) (exists bool, regular bool, err error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return true, info.Mode().IsRegular(), nil
}
