package workflows

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/shroud/internal/container"
	kerrors "github.com/PolarWolf314/shroud/internal/errors"
	"github.com/PolarWolf314/shroud/internal/utils"
)

// UnlockOptions configures the unlock workflow.
type UnlockOptions struct {
	// ContainerPath is the container to open.
	ContainerPath string

	// Password decrypts the inner archive.
	Password []byte
}

// UnlockResult contains the outcome of an unlock operation.
type UnlockResult struct {
	// OriginalName is the file name recovered from the metadata entry.
	OriginalName string

	// PayloadPath is where the recovered file was written.
	PayloadPath string
}

// Unlock recovers the file hidden in a container.
//
// The container is unpacked into a private temporary workspace that is
// removed on every exit path. The recovered file is written next to the
// container under its original name, replacing any file already there.
//
// Returns ErrEmptyPassword if no password is given.
// Returns ErrContainerNotFound if the container does not exist.
// Returns ErrInnerArchiveMissing, ErrMetadataMissing or ErrPayloadMissing
// if the container lacks the corresponding member.
// Returns ErrAmbiguousContainer if a member that must be unique is not.
// Returns ErrDecryptFailed if the password is wrong or the archive is corrupt.
// Returns ErrInvalidArchive if a member or the recovered name is unsafe.
func Unlock(ctx context.Context, opts UnlockOptions) (*UnlockResult, error) {
	if len(opts.Password) == 0 {
		return nil, kerrors.ErrEmptyPassword
	}

	exists, regular, err := utils.IsRegularFile(opts.ContainerPath)
	if err != nil {
		return nil, fmt.Errorf("%w: checking container: %w", kerrors.ErrIO, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrContainerNotFound, opts.ContainerPath)
	}
	if !regular {
		return nil, fmt.Errorf("%w: %s is not a regular file", kerrors.ErrInvalidFileType, opts.ContainerPath)
	}

	workspace, err := os.MkdirTemp("", "shroud-unlock-*")
	if err != nil {
		return nil, fmt.Errorf("%w: creating workspace: %w", kerrors.ErrIO, err)
	}
	defer os.RemoveAll(workspace)

	members, err := container.ExtractContainer(opts.ContainerPath, workspace, container.IsInnerArchive)
	if err != nil {
		return nil, fmt.Errorf("unpacking container: %w", err)
	}

	innerName, err := single(members, container.IsInnerArchive, kerrors.ErrInnerArchiveMissing, "inner archives")
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	extractDir, err := os.MkdirTemp(workspace, "inner-")
	if err != nil {
		return nil, fmt.Errorf("%w: creating extraction directory: %w", kerrors.ErrIO, err)
	}

	entries, err := container.ExtractEncryptedArchive(filepath.Join(workspace, innerName), opts.Password, extractDir)
	if err != nil {
		return nil, err
	}

	metadataName, err := single(entries, container.IsMetadataEntry, kerrors.ErrMetadataMissing, "metadata entries")
	if err != nil {
		return nil, err
	}

	isPayload := func(name string) bool { return !container.IsMetadataEntry(name) }
	payloadName, err := single(entries, isPayload, kerrors.ErrPayloadMissing, "payload entries")
	if err != nil {
		return nil, err
	}

	rawName, err := os.ReadFile(filepath.Join(extractDir, metadataName))
	if err != nil {
		return nil, fmt.Errorf("%w: reading metadata entry: %w", kerrors.ErrIO, err)
	}
	originalName := string(rawName)
	if err := container.ValidateEntryName(originalName); err != nil {
		return nil, fmt.Errorf("recovered file name: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	finalPath := filepath.Join(filepath.Dir(opts.ContainerPath), originalName)
	if err := copyIntoPlace(filepath.Join(extractDir, payloadName), finalPath); err != nil {
		return nil, err
	}

	return &UnlockResult{
		OriginalName: originalName,
		PayloadPath:  finalPath,
	}, nil
}

// single returns the one name matching match. No match yields missing;
// more than one is ErrAmbiguousContainer.
func single(names []string, match func(string) bool, missing error, what string) (string, error) {
	var found []string
	for _, name := range names {
		if match(name) {
			found = append(found, name)
		}
	}

	switch len(found) {
	case 0:
		return "", missing
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%w: %d %s: %v", kerrors.ErrAmbiguousContainer, len(found), what, found)
	}
}

// copyIntoPlace copies src to dst through a temporary file in dst's
// directory, so dst is either untouched or fully written.
func copyIntoPlace(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: opening payload: %w", kerrors.ErrIO, err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".shroud-unlock-*")
	if err != nil {
		return fmt.Errorf("%w: creating output file: %w", kerrors.ErrIO, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing %s: %w", kerrors.ErrIO, filepath.Base(dst), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", kerrors.ErrIO, filepath.Base(dst), err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("%w: setting permissions on %s: %w", kerrors.ErrIO, filepath.Base(dst), err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("%w: moving %s into place: %w", kerrors.ErrIO, filepath.Base(dst), err)
	}
	return nil
}
