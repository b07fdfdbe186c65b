package container

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/shroud/internal/errors"
	"github.com/PolarWolf314/shroud/internal/identifier"
)

// File name suffixes that make up the container format.
const (
	// ContainerExt is the suffix of the container file handed to the user.
	ContainerExt = ".tar"

	// InnerArchiveExt is the suffix of the encrypted archive inside the container.
	InnerArchiveExt = ".zip"

	// MetadataExt marks the inner archive entry holding the original file name.
	MetadataExt = ".ciper"

	// DecoyExt is appended to the original name to form the decoy entry.
	DecoyExt = ".txt"
)

// Layout holds the names used for one lock operation.
type Layout struct {
	// OriginalName is the base name of the file being hidden.
	OriginalName string

	// ID names both the container file and the payload entry.
	ID string

	// InnerID names the encrypted inner archive.
	InnerID string

	// MetadataID names the metadata entry.
	MetadataID string
}

// NewLayout draws three identifiers from gen and returns the layout for
// originalName.
func NewLayout(originalName string, gen identifier.Generator) (Layout, error) {
	if err := ValidateEntryName(originalName); err != nil {
		return Layout{}, err
	}

	return Layout{
		OriginalName: originalName,
		ID:           gen.Generate(identifier.DefaultLength),
		InnerID:      gen.Generate(identifier.DefaultLength),
		MetadataID:   gen.Generate(identifier.DefaultLength),
	}, nil
}

// ContainerName is the file name of the produced container.
func (l Layout) ContainerName() string {
	return l.ID + ContainerExt
}

// InnerArchiveName is the container member holding the encrypted archive.
func (l Layout) InnerArchiveName() string {
	return l.InnerID + InnerArchiveExt
}

// PayloadEntryName is the encrypted entry holding the original bytes.
func (l Layout) PayloadEntryName() string {
	return l.ID
}

// MetadataEntryName is the encrypted entry holding the original name.
func (l Layout) MetadataEntryName() string {
	return l.MetadataID + MetadataExt
}

// DecoyName is the zero-length container member.
func (l Layout) DecoyName() string {
	return l.OriginalName + DecoyExt
}

// IsInnerArchive reports whether a container member name is an encrypted archive.
func IsInnerArchive(name string) bool {
	return strings.HasSuffix(name, InnerArchiveExt)
}

// IsMetadataEntry reports whether an inner archive entry name is the metadata entry.
func IsMetadataEntry(name string) bool {
	return strings.HasSuffix(name, MetadataExt)
}

// ValidateEntryName rejects anything that is not a plain file name, so a
// name read back from an archive can never point outside its directory.
// '/' and the OS path separator are rejected; on Unix a backslash is an
// ordinary character.
func ValidateEntryName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: unusable name %q", kerrors.ErrInvalidArchive, name)
	case strings.ContainsAny(name, "/\x00"+string(os.PathSeparator)):
		return fmt.Errorf("%w: name %q contains a path separator", kerrors.ErrInvalidArchive, name)
	case filepath.Base(name) != name || filepath.IsAbs(name) || filepath.VolumeName(name) != "":
		return fmt.Errorf("%w: name %q is not a bare file name", kerrors.ErrInvalidArchive, name)
	}
	return nil
}
