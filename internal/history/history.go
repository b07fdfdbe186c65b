package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	kerrors "github.com/PolarWolf314/shroud/internal/errors"
)

// DefaultFileName is the log's file name when no path is configured.
const DefaultFileName = "history.json"

// Record maps an original file name to the identifier of the container
// that hides it.
type Record struct {
	OriginalName  string `json:"original_name"`
	EncryptedName string `json:"encrypted_name"`
}

// Appender records one lock operation.
type Appender interface {
	Append(record Record) error
}

// Store is a history log that can also be read back.
type Store interface {
	Appender
	Records() ([]Record, error)
}

// JSONFile is a Store kept as a single JSON array on disk.
//
// Every Append rewrites the whole file. Writers are serialized by a mutex
// within the process and by an advisory lock on Path+".lock" across
// processes.
type JSONFile struct {
	Path string

	mu sync.Mutex
}

// NewJSONFile returns a store backed by path. The file is created on the
// first Append.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{Path: path}
}

// Append adds record to the end of the log.
func (j *JSONFile) Append(record Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(j.Path), 0o755); err != nil {
		return fmt.Errorf("%w: creating history directory: %w", kerrors.ErrIO, err)
	}

	fileLock := flock.New(j.Path + ".lock")
	if err := fileLock.Lock(); err != nil {
		return fmt.Errorf("%w: locking history log: %w", kerrors.ErrIO, err)
	}
	defer fileLock.Unlock()

	records, err := j.read()
	if err != nil {
		return err
	}
	records = append(records, record)

	return j.write(records)
}

// Records returns every record in insertion order.
// A log that does not exist yet is empty.
func (j *JSONFile) Records() ([]Record, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.read()
}

func (j *JSONFile) read() ([]Record, error) {
	data, err := os.ReadFile(j.Path)
	if errors.Is(err, os.ErrNotExist) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading history log: %w", kerrors.ErrIO, err)
	}

	return Parse(data)
}

// write replaces the log through a temporary file so a crash mid-write
// never leaves a truncated array behind.
func (j *JSONFile) write(records []Record) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(j.Path), filepath.Base(j.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating history temp file: %w", kerrors.ErrIO, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing history log: %w", kerrors.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing history log: %w", kerrors.ErrIO, err)
	}
	// #nosec G302 -- the log holds names only and is shared with the viewer.
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("%w: setting history log permissions: %w", kerrors.ErrIO, err)
	}
	if err := os.Rename(tmpPath, j.Path); err != nil {
		return fmt.Errorf("%w: replacing history log: %w", kerrors.ErrIO, err)
	}
	return nil
}

// Parse decodes a history log. Empty input is an empty log.
func Parse(data []byte) ([]Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Record{}, nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidHistory, err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// Encode renders records the way the log is stored: an indented JSON array
// with non-ASCII names written as-is.
func Encode(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encoding history log: %w", err)
	}
	return buf.Bytes(), nil
}
