package utils

import (
	"strings"
	"testing"

	"github.com/PolarWolf314/shroud/internal/ui"
)

func TestReadPassword(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"single line", "hunter2\n", "hunter2", false},
		{"no trailing newline", "hunter2", "hunter2", false},
		{"windows line ending", "hunter2\r\n", "hunter2", false},
		{"only first line", "first\nsecond\n", "first", false},
		{"keeps inner spaces", "correct horse battery\n", "correct horse battery", false},
		{"empty", "", "", true},
		{"blank line", "\n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readPassword(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("readPassword(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("readPassword(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatList(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	got := FormatList([]string{"a.zip", "a.txt"}, ui.Highlight)
	want := "    - 'a.zip'\n    - 'a.txt'\n"
	if got != want {
		t.Errorf("FormatList() = %q, want %q", got, want)
	}

	if got := FormatList(nil, ui.Path); got != "" {
		t.Errorf("FormatList(nil) = %q, want empty", got)
	}
}
