// Package testdb opens a migrated in-memory SQLite database for tests.
package testdb

import (
	migration "Coin-Loyalty-Backend/cmd/database/migrate"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	// Every connection to :memory: is its own database, so pin the pool to one.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := migration.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// InterleaveAfterQuery runs write once, on the same transaction, right after the
// first successful SELECT against table. It stands in for a concurrent writer
// that commits between a repository's read and its write.
func InterleaveAfterQuery(t testing.TB, db *gorm.DB, table string, write func(tx *gorm.DB) error) {
	t.Helper()

	var once sync.Once
	err := db.Callback().Query().After("gorm:query").Register("testdb:interleave:"+table, func(tx *gorm.DB) {
		if tx.Error != nil || tx.Statement.Table != table {
			return
		}
		once.Do(func() {
			if err := write(tx.Session(&gorm.Session{NewDB: true})); err != nil {
				t.Errorf("interleaved write on %s: %v", table, err)
			}
		})
	})
	if err != nil {
		t.Fatalf("register interleave callback: %v", err)
	}
}
