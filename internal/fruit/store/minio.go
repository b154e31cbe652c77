package store

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/fruitstore/fruit-api/internal/fruit"
	"github.com/fruitstore/fruit-api/internal/storage"
)

// ObjectStorage is the subset of object storage used by ObjectStore.
type ObjectStorage interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	DownloadFile(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// ObjectStore keeps the document as a single JSON object in a bucket.
type ObjectStore struct {
	objects ObjectStorage
	key     string
}

func NewObjectStore(objects ObjectStorage, key string) *ObjectStore {
	if key == "" {
		key = "fruits.json"
	}
	return &ObjectStore{objects: objects, key: key}
}

func (o *ObjectStore) Backend() string { return "minio" }

func (o *ObjectStore) Load(ctx context.Context) (*fruit.Document, error) {
	rc, err := o.objects.DownloadFile(ctx, o.key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return fruit.NewDocument(), nil
		}
		return nil, &StorageError{Backend: o.Backend(), Op: "load", Err: err}
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, &StorageError{Backend: o.Backend(), Op: "load", Err: err}
	}
	return decode(o.Backend(), b)
}

func (o *ObjectStore) Save(ctx context.Context, doc *fruit.Document) error {
	b, err := encode(o.Backend(), doc)
	if err != nil {
		return err
	}
	if err := o.objects.UploadFile(ctx, o.key, bytes.NewReader(b), int64(len(b)), "application/json"); err != nil {
		return &StorageError{Backend: o.Backend(), Op: "save", Err: err}
	}
	return nil
}

func (o *ObjectStore) Exists(ctx context.Context) (bool, error) {
	ok, err := o.objects.Exists(ctx, o.key)
	if err != nil {
		return false, &StorageError{Backend: o.Backend(), Op: "exists", Err: err}
	}
	return ok, nil
}
