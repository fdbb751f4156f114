// Package dbtest opens throwaway in-memory SQLite stores for tests.
package dbtest

import (
	"fmt"
	"testing"

	"culinary-calc/backend/app/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Open returns a migrated in-memory database that disappears with t.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := db.OpenSQLite(dsn, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}
