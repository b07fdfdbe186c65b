package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadPasswordStdin reads a password piped on stdin.
// Returns an error if stdin is a terminal (no piped data) or holds no password.
func ReadPasswordStdin() ([]byte, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat stdin: %w", err)
	}

	// If ModeCharDevice is set, stdin is connected to a terminal.
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, fmt.Errorf("no password provided on stdin (hint: pipe it, e.g. echo $PW | shroud --password-stdin ...)")
	}

	return readPassword(os.Stdin)
}

// readPassword returns the first line of r without its line ending.
func readPassword(r io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if line == "" {
		return nil, fmt.Errorf("stdin is empty")
	}

	return []byte(line), nil
}
