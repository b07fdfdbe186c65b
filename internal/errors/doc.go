// Package errors provides typed error values for shroud.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Not found: ErrNotFound and the specific ErrTargetNotFound,
//     ErrContainerNotFound, ErrInnerArchiveMissing, ErrMetadataMissing and
//     ErrPayloadMissing, which all wrap it
//   - Crypto: ErrDecryptFailed, wrapping the archive library's own error
//   - Filesystem: ErrIO, wrapping the os error
//   - Format: ErrAmbiguousContainer, ErrInvalidArchive, ErrInvalidFileType
//
// # Usage
//
// Wrap the underlying error together with the category so both stay
// reachable:
//
//	return fmt.Errorf("%w: writing container: %w", kerrors.ErrIO, err)
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, kerrors.ErrDecryptFailed) {
//	    // wrong password
//	}
package errors
