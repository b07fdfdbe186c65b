package cmd

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/shroud/internal/configs"
	"github.com/PolarWolf314/shroud/internal/utils"
)

// setupTestEnvironment points the program directory at a temporary home
// and configures the password through the environment.
func setupTestEnvironment(t *testing.T, password string) string {
	home := t.TempDir()
	t.Setenv(utils.HomeEnvVar, home)
	t.Setenv(configs.PasswordEnvVar, password)
	t.Setenv("NO_COLOR", "1")

	ResetGlobalState()
	t.Cleanup(ResetGlobalState)
	return home
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// runShroud executes the root command with args and fresh flag state.
func runShroud(args ...string) (string, error) {
	ResetGlobalState()
	return captureOutput(func() error {
		RootCmd.SetArgs(args)
		return Execute(context.Background())
	})
}

// writeFile creates a file with the given content inside dir.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// findContainers returns the .tar files in dir.
func findContainers(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}

	var containers []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tar") {
			containers = append(containers, filepath.Join(dir, entry.Name()))
		}
	}
	return containers
}

// lockOne locks the file at path and returns the single container created
// next to it.
func lockOne(t *testing.T, path string) string {
	t.Helper()
	output, err := runShroud(path)
	if err != nil {
		t.Fatalf("Lock failed: %v\nOutput: %s", err, output)
	}

	containers := findContainers(t, filepath.Dir(path))
	if len(containers) != 1 {
		t.Fatalf("Expected 1 container next to %s, found %d", path, len(containers))
	}
	return containers[0]
}
