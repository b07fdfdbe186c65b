// Package ui provides semantic text formatting for CLI output.
//
// Content is colorized when the terminal supports it. When NO_COLOR is set
// or colors are unavailable, text decorations are used instead.
//
//	ui.Path.Sprint("/home/me/Xq3vB0fT.tar")   // file paths
//	ui.Token.Sprint("Xq3vB0fT9kLmPz2RwY7a")   // obfuscated identifiers
//	ui.Highlight.Sprint("notes.txt")          // original file names
//	ui.Code.Sprint("shroud --unlock x.tar")   // commands
//	ui.Success.Sprint("✓")
//	ui.Error.Sprint("✗")
//	ui.Info.Sprint("→")
//	ui.Muted.Sprint("2 of 10 records")
//
// Without colors: Code gets `backticks`, Token [brackets], Highlight
// 'single quotes' and Muted (parentheses). The rest are left as-is.
package ui
