package container

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yeka/zip"

	kerrors "github.com/PolarWolf314/shroud/internal/errors"
)

// WriteEncryptedArchive writes a zip archive at outputPath whose entries
// are all encrypted with password using WinZip AES-256.
func WriteEncryptedArchive(outputPath string, password []byte, entries []Member) (err error) {
	if len(password) == 0 {
		return kerrors.ErrEmptyPassword
	}

	outFile, err := os.OpenFile(outputPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("%w: creating encrypted archive: %w", kerrors.ErrIO, err)
	}
	defer func() {
		if cerr := outFile.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing encrypted archive: %w", kerrors.ErrIO, cerr)
		}
	}()

	zipWriter := zip.NewWriter(outFile)
	for _, e := range entries {
		if err := addEncryptedEntry(zipWriter, e, string(password)); err != nil {
			return fmt.Errorf("adding %s to encrypted archive: %w", e.Name, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("%w: finishing encrypted archive: %w", kerrors.ErrIO, err)
	}
	return nil
}

func addEncryptedEntry(zw *zip.Writer, e Member, password string) error {
	if err := ValidateEntryName(e.Name); err != nil {
		return err
	}

	file, err := os.Open(e.Path)
	if err != nil {
		return fmt.Errorf("%w: opening file: %w", kerrors.ErrIO, err)
	}
	defer file.Close()

	w, err := zw.Encrypt(e.Name, password, zip.AES256Encryption)
	if err != nil {
		return fmt.Errorf("%w: creating encrypted entry: %w", kerrors.ErrIO, err)
	}

	if _, err := io.Copy(w, file); err != nil {
		return fmt.Errorf("%w: writing encrypted entry: %w", kerrors.ErrIO, err)
	}
	return nil
}

// ListEncryptedArchive returns the entry names of an encrypted archive.
// Names are stored in the clear, so no password is needed.
func ListEncryptedArchive(archivePath string) ([]string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrDecryptFailed, err)
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names, nil
}

// ExtractEncryptedArchive decrypts every entry of the archive at
// archivePath into dir and returns the entry names in archive order.
//
// A wrong password or a corrupt archive is reported as ErrDecryptFailed
// with the zip library's error still reachable through errors.Is.
func ExtractEncryptedArchive(archivePath string, password []byte, dir string) ([]string, error) {
	if len(password) == 0 {
		return nil, kerrors.ErrEmptyPassword
	}

	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrDecryptFailed, err)
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		if err := ValidateEntryName(f.Name); err != nil {
			return nil, err
		}
		if !f.IsEncrypted() {
			return nil, fmt.Errorf("%w: entry %q is not encrypted", kerrors.ErrInvalidArchive, f.Name)
		}
		f.SetPassword(string(password))

		if err := extractEntry(f, filepath.Join(dir, f.Name)); err != nil {
			return nil, err
		}
		names = append(names, f.Name)
	}

	return names, nil
}

func extractEntry(f *zip.File, path string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: %w", kerrors.ErrDecryptFailed, err)
	}
	defer rc.Close()

	src := &errReader{r: rc}
	err = writeExclusive(path, src)
	if src.err != nil {
		return fmt.Errorf("%w: %w", kerrors.ErrDecryptFailed, src.err)
	}
	return err
}

// errReader remembers the first read error so decryption failures can be
// told apart from failures writing the plaintext.
type errReader struct {
	r   io.Reader
	err error
}

func (e *errReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && e.err == nil {
		e.err = err
	}
	return n, err
}
