package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/shroud/internal/errors"
	"github.com/PolarWolf314/shroud/internal/history"
	"github.com/PolarWolf314/shroud/internal/utils"
)

// DefaultFileName is the config file used when no --config flag is given.
const DefaultFileName = "config.json"

// PasswordEnvVar overrides the password stored in the config file.
const PasswordEnvVar = "SHROUD_PASSWORD"

// Config is the user's shroud configuration.
type Config struct {
	Password    string `json:"password" toml:"password" yaml:"password"`
	HistoryPath string `json:"history_path,omitempty" toml:"history_path,omitempty" yaml:"history_path,omitempty"`

	// path is where the config was loaded from.
	path string
}

// ResolvePath returns path unchanged when absolute, otherwise joined to the
// program directory.
func ResolvePath(path string) (string, error) {
	if path == "" {
		path = DefaultFileName
	}
	if filepath.IsAbs(path) {
		return path, nil
	}

	programDir, err := utils.ProgramDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(programDir, path), nil
}

// EnsureConfig creates a config with an empty password at path if none
// exists, and returns the resolved path.
func EnsureConfig(path string) (string, error) {
	fullPath, err := ResolvePath(path)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(fullPath); errors.Is(err, os.ErrNotExist) {
		if err := SaveFile(fullPath, &Config{}); err != nil {
			return "", fmt.Errorf("failed to create config %s: %w", fullPath, err)
		}
	} else if err != nil {
		return "", fmt.Errorf("failed to stat config %s: %w", fullPath, err)
	}

	return fullPath, nil
}

// LoadConfig loads the config at path, creating it first if needed.
// A non-empty PasswordEnvVar takes precedence over the stored password.
func LoadConfig(path string) (*Config, error) {
	fullPath, err := EnsureConfig(path)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	if err := LoadFile(fullPath, config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidConfig, fullPath, err)
	}
	config.path = fullPath

	if password := os.Getenv(PasswordEnvVar); password != "" {
		config.Password = password
	}

	return config, nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// HistoryLogPath returns the configured history log location. Relative
// paths are taken from the program directory, and an empty setting means
// history.json there.
func (c *Config) HistoryLogPath() (string, error) {
	if c.HistoryPath == "" {
		return ResolvePath(history.DefaultFileName)
	}
	return ResolvePath(c.HistoryPath)
}
