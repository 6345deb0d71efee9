package test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/propnest/backend/pkg/models"
	"github.com/stretchr/testify/require"
)

// TmpFile returns the path to a unique sqlite file to be used in tests
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), uuid.New().String()+".db")
}

// Database connects models.DB to a fresh sqlite database that
// is closed when the test finishes.
func Database(t *testing.T) {
	require.Nil(t, models.Connect(TmpFile(t)), "Database initialization failed")

	t.Cleanup(func() {
		sqlDB, err := models.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
}
