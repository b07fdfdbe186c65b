package workflows

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/shroud/internal/container"
	kerrors "github.com/PolarWolf314/shroud/internal/errors"
	"github.com/PolarWolf314/shroud/internal/utils"
)

// InspectResult describes a container's outer members.
type InspectResult struct {
	// Members are the container's member names in archive order.
	Members []string

	// InnerArchive is the encrypted archive member, if exactly one exists.
	InnerArchive string

	// DecoyName is the decoy member, if exactly one exists.
	DecoyName string

	// EncryptedName is the container's identifier, taken from its file name.
	EncryptedName string

	// WellFormed is true when the container has exactly one inner archive
	// and one decoy and nothing else.
	WellFormed bool
}

// Inspect lists a container's members without decrypting anything.
//
// The decoy's name reveals the original name, so this is as much as can be
// learned without the password.
//
// Returns ErrContainerNotFound if the container does not exist.
// Returns ErrInvalidArchive if the file is not a tar archive.
func Inspect(ctx context.Context, containerPath string) (*InspectResult, error) {
	exists, regular, err := utils.IsRegularFile(containerPath)
	if err != nil {
		return nil, fmt.Errorf("%w: checking container: %w", kerrors.ErrIO, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrContainerNotFound, containerPath)
	}
	if !regular {
		return nil, fmt.Errorf("%w: %s is not a regular file", kerrors.ErrInvalidFileType, containerPath)
	}

	members, err := container.ListContainer(containerPath)
	if err != nil {
		return nil, err
	}

	result := &InspectResult{
		Members:       members,
		EncryptedName: strings.TrimSuffix(filepath.Base(containerPath), container.ContainerExt),
	}

	var inner, decoys []string
	for _, m := range members {
		switch {
		case container.IsInnerArchive(m):
			inner = append(inner, m)
		case strings.HasSuffix(m, container.DecoyExt):
			decoys = append(decoys, m)
		}
	}
	if len(inner) == 1 {
		result.InnerArchive = inner[0]
	}
	if len(decoys) == 1 {
		result.DecoyName = decoys[0]
	}
	result.WellFormed = len(members) == 2 && len(inner) == 1 && len(decoys) == 1

	return result, nil
}
