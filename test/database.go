package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/district-ledger/backend/internal/store"
	"github.com/district-ledger/backend/internal/store/gormstore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TmpFile returns the path to a unique file to be used in tests
func TmpFile(t *testing.T) string {
	dir := t.TempDir()
	return filepath.Join(dir, uuid.New().String())
}

// Store opens an sqlite store in a temporary file. It is closed
// when the test finishes.
func Store(t *testing.T) *store.Store {
	s, err := gormstore.Open(TmpFile(t))
	require.Nil(t, err, "Store could not be opened")

	t.Cleanup(func() {
		_ = s.Close(context.Background())
	})
	return s
}
