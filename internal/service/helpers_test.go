package service

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/comexweb/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(db.Options{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "comex.db")})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func ptr[T any](v T) *T { return &v }

// requireField asserts err is a *ValidationError on field.
func requireField(t *testing.T, err error, field string) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	require.Equal(t, field, verr.Field)
	return verr
}
