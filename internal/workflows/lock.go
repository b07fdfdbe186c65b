package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/shroud/internal/container"
	kerrors "github.com/PolarWolf314/shroud/internal/errors"
	"github.com/PolarWolf314/shroud/internal/history"
	"github.com/PolarWolf314/shroud/internal/identifier"
	"github.com/PolarWolf314/shroud/internal/utils"
)

// LockOptions configures the lock workflow.
type LockOptions struct {
	// TargetPath is the file to hide.
	TargetPath string

	// Password encrypts the inner archive. Must not be empty.
	Password []byte

	// OutputDir receives the container. Defaults to the target's directory
	// and is created if missing.
	OutputDir string

	// Identifiers supplies the obfuscated names. Defaults to identifier.Random.
	Identifiers identifier.Generator

	// History records the operation. Nothing is recorded when nil.
	History history.Appender
}

// LockResult contains the outcome of a lock operation.
type LockResult struct {
	// OriginalName is the base name of the locked file.
	OriginalName string

	// EncryptedName is the obfuscated identifier; the container is named
	// EncryptedName + ".tar".
	EncryptedName string

	// ContainerPath is the path of the produced container.
	ContainerPath string
}

// Lock hides the target file inside a new container.
//
// The target's bytes and name go into an AES-encrypted zip, which is wrapped
// together with a zero-length decoy in a tar container named after a random
// identifier. Intermediate files live in a staging directory that is
// removed on every exit path, and the container only appears under its
// final name once it is complete. The target itself is left untouched.
//
// Returns ErrEmptyPassword if no password is given.
// Returns ErrTargetNotFound if the target does not exist.
// Returns ErrInvalidFileType if the target is not a regular file.
// Returns an ErrIO error if any filesystem step fails, including recording
// history after the container was written.
func Lock(ctx context.Context, opts LockOptions) (*LockResult, error) {
	if len(opts.Password) == 0 {
		return nil, kerrors.ErrEmptyPassword
	}

	exists, regular, err := utils.IsRegularFile(opts.TargetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: checking target: %w", kerrors.ErrIO, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrTargetNotFound, opts.TargetPath)
	}
	if !regular {
		return nil, fmt.Errorf("%w: %s is not a regular file", kerrors.ErrInvalidFileType, opts.TargetPath)
	}

	gen := opts.Identifiers
	if gen == nil {
		gen = identifier.Random{}
	}

	layout, err := container.NewLayout(filepath.Base(opts.TargetPath), gen)
	if err != nil {
		return nil, err
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(opts.TargetPath)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating output directory: %w", kerrors.ErrIO, err)
	}

	containerPath, err := buildContainer(ctx, opts.TargetPath, outputDir, opts.Password, layout)
	if err != nil {
		return nil, err
	}

	result := &LockResult{
		OriginalName:  layout.OriginalName,
		EncryptedName: layout.ID,
		ContainerPath: containerPath,
	}

	if opts.History != nil {
		record := history.Record{OriginalName: result.OriginalName, EncryptedName: result.EncryptedName}
		if err := opts.History.Append(record); err != nil {
			return nil, fmt.Errorf("recording history for %s: %w", containerPath, ensureIO(err))
		}
	}

	return result, nil
}

// buildContainer runs the staging pipeline and returns the final container path.
func buildContainer(ctx context.Context, targetPath, outputDir string, password []byte, layout container.Layout) (string, error) {
	staging, err := os.MkdirTemp(outputDir, ".shroud-stage-*")
	if err != nil {
		return "", fmt.Errorf("%w: creating staging directory: %w", kerrors.ErrIO, err)
	}
	defer os.RemoveAll(staging)

	metadataPath := filepath.Join(staging, "metadata")
	if err := os.WriteFile(metadataPath, []byte(layout.OriginalName), 0o600); err != nil {
		return "", fmt.Errorf("%w: writing metadata entry: %w", kerrors.ErrIO, err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	innerPath := filepath.Join(staging, "inner")
	err = container.WriteEncryptedArchive(innerPath, password, []container.Member{
		{Name: layout.PayloadEntryName(), Path: targetPath},
		{Name: layout.MetadataEntryName(), Path: metadataPath},
	})
	if err != nil {
		return "", fmt.Errorf("building encrypted archive: %w", err)
	}

	decoyPath := filepath.Join(staging, "decoy")
	if err := os.WriteFile(decoyPath, nil, 0o600); err != nil {
		return "", fmt.Errorf("%w: writing decoy entry: %w", kerrors.ErrIO, err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	partialPath := filepath.Join(staging, "container")
	err = container.WriteContainer(partialPath, []container.Member{
		{Name: layout.InnerArchiveName(), Path: innerPath},
		{Name: layout.DecoyName(), Path: decoyPath},
	})
	if err != nil {
		return "", fmt.Errorf("building container: %w", err)
	}

	containerPath := filepath.Join(outputDir, layout.ContainerName())
	if _, err := os.Lstat(containerPath); err == nil {
		return "", fmt.Errorf("%w: %s already exists", kerrors.ErrIO, containerPath)
	}
	if err := os.Chmod(partialPath, 0o644); err != nil {
		return "", fmt.Errorf("%w: setting container permissions: %w", kerrors.ErrIO, err)
	}
	if err := os.Rename(partialPath, containerPath); err != nil {
		return "", fmt.Errorf("%w: moving container into place: %w", kerrors.ErrIO, err)
	}

	return containerPath, nil
}

// ensureIO tags errors from collaborators that did not categorise them.
func ensureIO(err error) error {
	if errors.Is(err, kerrors.ErrIO) {
		return err
	}
	return fmt.Errorf("%w: %w", kerrors.ErrIO, err)
}
