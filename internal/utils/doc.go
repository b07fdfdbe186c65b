// Package utils provides small helpers shared by the cmd and configs
// packages.
//
// # Filesystem Utilities
//
//   - ProgramDir: where config and history live ($SHROUD_HOME or the binary's directory)
//   - IsRegularFile: existence and type check used before locking
//
// # Terminal Utilities
//
//   - ReadPassphrase: hidden password prompt on stdin
//   - ReadPasswordStdin: password piped on stdin (--password-stdin)
//   - IsTerminal: checks whether stdin is interactive
//
// # String Utilities
//
//   - FormatList: indented bullet list for CLI output
package utils
