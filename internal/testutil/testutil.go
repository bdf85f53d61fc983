package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/diewo77/go-usuarios/internal/db"
)

// OpenInMemoryDB opens a SQLite database private to the test and syncs the schema.
// The connection is closed through t.Cleanup.
func OpenInMemoryDB(t *testing.T) (*db.Provider, *gorm.DB) {
	t.Helper()
	// a unique name per test keeps shared-cache databases apart
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := db.OpenSQLite(
		"file:"+name+"?mode=memory&cache=shared&_foreign_keys=on",
		&gorm.Config{TranslateError: true, Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	p := db.NewProvider(conn, zerolog.Nop())
	t.Cleanup(func() { _ = p.Close() })
	if err := p.Init(context.Background()); err != nil {
		t.Fatalf("init test db: %v", err)
	}
	return p, conn
}
