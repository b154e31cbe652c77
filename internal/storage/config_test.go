package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinIOConfigDefaults(t *testing.T) {
	require.Equal(t, "fruitstore", MinIOConfig{}.WithDefaults().Bucket)
	require.Equal(t, "inventory", MinIOConfig{Bucket: "inventory"}.WithDefaults().Bucket)
}

func TestNewMinIOStorageRequiresEndpoint(t *testing.T) {
	_, err := NewMinIOStorage(context.Background(), MinIOConfig{})
	require.Error(t, err)
}

func TestNotFoundPassesThroughOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	require.Equal(t, boom, notFound(boom))
	require.False(t, errors.Is(notFound(boom), ErrObjectNotFound))
}
