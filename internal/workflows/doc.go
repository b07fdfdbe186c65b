// Package workflows provides high-level orchestration for shroud commands.
//
// Workflows coordinate the container, identifier and history packages to
// implement complete user-facing features, independent of CLI concerns like
// flag parsing, spinners and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Loads the config and password
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else, and never log or print.
//
// # Available Workflows
//
//   - Lock: hides a file inside a new container and records it in history
//   - Unlock: recovers the file hidden in a container
//   - Inspect: lists a container's members without the password
//   - History: reads and filters the history log
//
// Lock and Unlock are mirror images over the layout described in the
// container package. Both run synchronously on the caller's goroutine, and
// every intermediate file they create is removed before they return.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package:
//
//	result, err := workflows.Unlock(ctx, opts)
//	if errors.Is(err, kerrors.ErrDecryptFailed) {
//	    // wrong password
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Lock and Unlock check it between pipeline steps; nothing inside a step is
// interruptible.
package workflows
