package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fruitstore/fruit-api/internal/fruit"
)

// FileStore keeps the document in a single JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Backend() string { return "file" }

// Path returns the file the document is stored in.
func (f *FileStore) Path() string { return f.path }

// Load reads the file. A missing file yields an empty document and is not created.
func (f *FileStore) Load(ctx context.Context) (*fruit.Document, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fruit.NewDocument(), nil
		}
		return nil, &StorageError{Backend: f.Backend(), Op: "load", Err: err}
	}
	return decode(f.Backend(), b)
}

// Save writes to a temporary file next to the target and renames it into
// place, so readers never observe a half-written document.
func (f *FileStore) Save(ctx context.Context, doc *fruit.Document) error {
	b, err := encode(f.Backend(), doc)
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &StorageError{Backend: f.Backend(), Op: "save", Err: err}
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return &StorageError{Backend: f.Backend(), Op: "save", Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Backend: f.Backend(), Op: "save", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Backend: f.Backend(), Op: "save", Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return &StorageError{Backend: f.Backend(), Op: "save", Err: err}
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return &StorageError{Backend: f.Backend(), Op: "save", Err: err}
	}
	return nil
}

func (f *FileStore) Exists(ctx context.Context) (bool, error) {
	_, err := os.Stat(f.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, &StorageError{Backend: f.Backend(), Op: "exists", Err: err}
}
