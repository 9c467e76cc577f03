package repo

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

// newTestDB инициализирует SQLite (modernc.org/sqlite) во временном файле для тестов репозитория
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB(filepath.Join(t.TempDir(), "server.sqlite"))
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	return db
}
