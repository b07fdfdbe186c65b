package container

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/shroud/internal/errors"
)

// Member is a file on disk to be stored under Name in an archive.
type Member struct {
	Name string
	Path string
}

// WriteContainer writes an uncompressed tar archive at outputPath holding
// members in order.
func WriteContainer(outputPath string, members []Member) (err error) {
	outFile, err := os.OpenFile(outputPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("%w: creating container: %w", kerrors.ErrIO, err)
	}
	defer func() {
		if cerr := outFile.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing container: %w", kerrors.ErrIO, cerr)
		}
	}()

	tarWriter := tar.NewWriter(outFile)
	for _, m := range members {
		if err := addFileToTar(tarWriter, m); err != nil {
			return fmt.Errorf("adding %s to container: %w", m.Name, err)
		}
	}

	if err := tarWriter.Close(); err != nil {
		return fmt.Errorf("%w: finishing container: %w", kerrors.ErrIO, err)
	}
	return nil
}

// addFileToTar adds a single file to the tar archive under m.Name.
func addFileToTar(tw *tar.Writer, m Member) error {
	if err := ValidateEntryName(m.Name); err != nil {
		return err
	}

	file, err := os.Open(m.Path)
	if err != nil {
		return fmt.Errorf("%w: opening file: %w", kerrors.ErrIO, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat file: %w", kerrors.ErrIO, err)
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("%w: creating tar header: %w", kerrors.ErrIO, err)
	}
	header.Name = m.Name
	// Owner details would identify whoever made the container.
	header.Uid, header.Gid = 0, 0
	header.Uname, header.Gname = "", ""

	if err := tw.WriteHeader(header); err != nil {
		return fmt.Errorf("%w: writing tar header: %w", kerrors.ErrIO, err)
	}

	if _, err := io.Copy(tw, file); err != nil {
		return fmt.Errorf("%w: writing file contents: %w", kerrors.ErrIO, err)
	}

	return nil
}

// ListContainer returns the names of the regular members of a container.
func ListContainer(containerPath string) ([]string, error) {
	file, err := os.Open(containerPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening container: %w", kerrors.ErrIO, err)
	}
	defer file.Close()

	var names []string
	tarReader := tar.NewReader(file)
	for {
		header, err := tarReader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading container: %v", kerrors.ErrInvalidArchive, err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		names = append(names, header.Name)
	}

	return names, nil
}

// ExtractContainer returns the names of the container's regular members in
// archive order and writes those accepted by extract into dir. A nil
// extract writes every member. Non-regular members are skipped.
func ExtractContainer(containerPath, dir string, extract func(name string) bool) ([]string, error) {
	file, err := os.Open(containerPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening container: %w", kerrors.ErrIO, err)
	}
	defer file.Close()

	var names []string
	tarReader := tar.NewReader(file)
	for {
		header, err := tarReader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading container: %v", kerrors.ErrInvalidArchive, err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		if err := ValidateEntryName(header.Name); err != nil {
			return nil, err
		}
		names = append(names, header.Name)
		if extract != nil && !extract(header.Name) {
			continue
		}
		if err := writeExclusive(filepath.Join(dir, header.Name), tarReader); err != nil {
			return nil, err
		}
	}

	return names, nil
}

// writeExclusive copies r into a new file at path. An existing file means
// the archive repeats a member name.
func writeExclusive(path string, r io.Reader) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("%w: duplicate member %q", kerrors.ErrInvalidArchive, filepath.Base(path))
	}
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", kerrors.ErrIO, filepath.Base(path), err)
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("%w: writing %s: %w", kerrors.ErrIO, filepath.Base(path), err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", kerrors.ErrIO, filepath.Base(path), err)
	}
	return nil
}
