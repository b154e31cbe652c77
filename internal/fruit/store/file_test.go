package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fruitstore/fruit-api/internal/fruit"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *fruit.Document {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.UTC)
	return &fruit.Document{
		Fruits: []fruit.Fruit{
			{ID: 1, Name: "Lemon", Category: "Citrus", Color: "yellow", Price: 0.5, Quantity: 40, Description: "sour", CreatedAt: fruit.NewTimestamp(ts), UpdatedAt: fruit.NewTimestamp(ts)},
			{ID: 3, Name: "Strawberry", Category: "Berries", Price: 3.25, Quantity: 12, CreatedAt: fruit.NewTimestamp(ts), UpdatedAt: fruit.NewTimestamp(ts.Add(time.Minute))},
		},
		Categories: []string{"Citrus", "Berries"},
	}
}

func TestFileStore_MissingFileLoadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "fruits.json")
	s := NewFileStore(path)

	doc, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, fruit.NewDocument(), doc)

	ok, err := s.Exists(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err), "load must not create the file")
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "fruits.json")
	s := NewFileStore(path)
	ctx := context.Background()

	want := sampleDocument()
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)

	ok, err := s.Exists(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "\n  \"fruits\": [")

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"garbage.json": "not json at all",
		"array.json":   "[1, 2, 3]",
		"null.json":    "null",
		"broken.json":  `{"fruits": [`,
		"types.json":   `{"fruits": "nope"}`,
		"when.json":    `{"fruits": [{"id": 1, "created_at": "yesterday"}]}`,
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		_, err := NewFileStore(path).Load(context.Background())
		var se *StorageError
		require.ErrorAs(t, err, &se, name)
		require.ErrorIs(t, err, ErrCorrupt, name)
	}
}

func TestFileStore_MissingKeysLoadEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fruits.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"categories": ["Citrus"]}`), 0o644))

	doc, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, []fruit.Fruit{}, doc.Fruits)
	require.Equal(t, []string{"Citrus"}, doc.Categories)
}

func TestFileStore_LoadsZonelessTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fruits.json")
	legacy := `{
  "fruits": [
    {
      "id": 1,
      "name": "Lemon",
      "category": "Citrus",
      "color": "yellow",
      "price": 2,
      "quantity": 10,
      "description": "",
      "created_at": "2024-05-01T10:11:12.123456",
      "updated_at": "2024-05-01T10:11:12"
    }
  ],
  "categories": ["Citrus"]
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))
	s := NewFileStore(path)
	ctx := context.Background()

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Fruits, 1)
	f := doc.Fruits[0]
	require.Equal(t, 2.0, f.Price)
	require.True(t, f.CreatedAt.Equal(time.Date(2024, 5, 1, 10, 11, 12, 123456000, time.UTC)))
	require.True(t, f.UpdatedAt.Equal(time.Date(2024, 5, 1, 10, 11, 12, 0, time.UTC)))

	// saving rewrites the times as RFC 3339 and they still load
	require.NoError(t, s.Save(ctx, doc))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"created_at": "2024-05-01T10:11:12.123456Z"`)
	again, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, doc, again)
}

func TestFileStore_SaveFailureIsStorageError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// parent "directory" is a regular file
	s := NewFileStore(filepath.Join(blocker, "fruits.json"))
	err := s.Save(context.Background(), sampleDocument())
	var se *StorageError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "save", se.Op)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "fruits.json"))

	seeded, err := Seed(ctx, s)
	require.NoError(t, err)
	require.True(t, seeded)

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, doc.Fruits)
	require.Equal(t, fruit.StarterCategories, doc.Categories)

	// existing document is left alone
	doc.Categories = []string{"Citrus"}
	require.NoError(t, s.Save(ctx, doc))
	seeded, err = Seed(ctx, s)
	require.NoError(t, err)
	require.False(t, seeded)
	doc, err = s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Citrus"}, doc.Categories)
}
