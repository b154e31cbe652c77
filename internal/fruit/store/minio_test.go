package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/fruitstore/fruit-api/internal/fruit"
	"github.com/fruitstore/fruit-api/internal/storage"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	objects map[string][]byte
	err     error
}

func (f *fakeObjects) UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if f.err != nil {
		return f.err
	}
	b, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[key] = b
	return nil
}

func (f *fakeObjects) DownloadFile(ctx context.Context, key string) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (f *fakeObjects) Exists(ctx context.Context, key string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.objects[key]
	return ok, nil
}

func TestObjectStore_RoundTrip(t *testing.T) {
	objects := &fakeObjects{objects: map[string][]byte{}}
	s := NewObjectStore(objects, "")
	ctx := context.Background()

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, fruit.NewDocument(), doc)

	want := sampleDocument()
	require.NoError(t, s.Save(ctx, want))
	require.Contains(t, objects.objects, "fruits.json")

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)

	ok, err := s.Exists(ctx)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestObjectStore_Failure(t *testing.T) {
	s := NewObjectStore(&fakeObjects{err: errors.New("connection refused")}, "doc.json")
	_, err := s.Load(context.Background())
	var se *StorageError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "load", se.Op)
	require.Error(t, s.Save(context.Background(), fruit.NewDocument()))
}
