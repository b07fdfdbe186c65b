package errors

import (
	"errors"
	"fmt"
)

// Category errors. Every error returned by the lock and unlock workflows
// matches at most one of these with errors.Is.
var (
	// ErrNotFound indicates a file or archive member could not be located.
	ErrNotFound = errors.New("not found")

	// ErrDecryptFailed indicates the inner archive could not be decrypted,
	// either because the password is wrong or the archive is corrupt.
	ErrDecryptFailed = errors.New("failed to decrypt archive")

	// ErrIO indicates a filesystem read, write, copy or delete failed.
	ErrIO = errors.New("i/o failure")
)

// Not-found errors. Each wraps ErrNotFound.
var (
	// ErrTargetNotFound indicates the file to lock does not exist.
	ErrTargetNotFound = fmt.Errorf("target file %w", ErrNotFound)

	// ErrContainerNotFound indicates the container to unlock does not exist.
	ErrContainerNotFound = fmt.Errorf("container file %w", ErrNotFound)

	// ErrInnerArchiveMissing indicates the container holds no encrypted archive.
	ErrInnerArchiveMissing = fmt.Errorf("inner archive missing: %w", ErrNotFound)

	// ErrMetadataMissing indicates the encrypted archive holds no metadata entry.
	ErrMetadataMissing = fmt.Errorf("metadata entry missing: %w", ErrNotFound)

	// ErrPayloadMissing indicates the encrypted archive holds no payload entry.
	ErrPayloadMissing = fmt.Errorf("payload entry missing: %w", ErrNotFound)
)

// Format errors indicate a container that does not follow the layout.
var (
	// ErrAmbiguousContainer indicates more than one member matched where
	// exactly one is expected.
	ErrAmbiguousContainer = errors.New("ambiguous container")

	// ErrInvalidArchive indicates an archive member or recovered name is unsafe
	// or malformed.
	ErrInvalidArchive = errors.New("invalid archive structure")

	// ErrInvalidFileType indicates the path is not a regular file.
	ErrInvalidFileType = errors.New("invalid file type")
)

// Input errors.
var (
	// ErrEmptyPassword indicates no password was supplied.
	ErrEmptyPassword = errors.New("password must not be empty")

	// ErrInvalidConfig indicates the config file could not be parsed.
	ErrInvalidConfig = errors.New("config file is invalid")

	// ErrInvalidHistory indicates the history log is not a JSON array of records.
	ErrInvalidHistory = errors.New("history log is invalid")
)
