// Package logger provides leveled logging for shroud CLI commands.
//
// Output is prefixed and coloured with fatih/color. The workflows never log;
// only the cmd layer does.
//
// # Verbosity Levels
//
//   - --verbose: shows info and warning messages
//   - --debug: shows everything, including debug details and errors
//
// Without flags only WarnfAlways reaches the terminal.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Locking %s", target)
//
// The root command builds the logger in its PersistentPreRun.
package logger
