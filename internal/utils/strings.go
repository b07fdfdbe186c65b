package utils

import (
	"strings"

	"github.com/PolarWolf314/shroud/internal/ui"
)

// FormatList formats items as an indented bullet list, one per line.
func FormatList(items []string, f ui.Formatter) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString("    - ")
		b.WriteString(f.Sprint(item))
		b.WriteString("\n")
	}
	return b.String()
}
