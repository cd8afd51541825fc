package database

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"findmyrave/pkg/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	pg, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return New(pg, nil, logger.NewWithHandler(slog.NewTextHandler(io.Discard, nil)))
}

func TestHealth_ReportsConfiguredStores(t *testing.T) {
	db := openTestDB(t)
	t.Cleanup(func() { db.Close() })

	report := db.Health(context.Background())

	if len(report) != 1 || report[0].Name != "postgres" {
		t.Fatalf("expected only the sql store without redis, got %+v", report)
	}
	if !Healthy(report) || report[0].Error != "" {
		t.Errorf("expected healthy report, got %+v", report)
	}
}

func TestHealth_ClosedConnectionIsUnhealthy(t *testing.T) {
	db := openTestDB(t)
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	report := db.Health(context.Background())

	if Healthy(report) {
		t.Fatalf("expected unhealthy report, got %+v", report)
	}
	if report[0].Error == "" {
		t.Error("expected the ping error in the report")
	}
}

func TestMigrate_CreatesServiceTables(t *testing.T) {
	db := openTestDB(t)
	t.Cleanup(func() { db.Close() })

	if err := Migrate(db.PostgreSQL); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, table := range []string{"listings", "bookmarks"} {
		if !db.PostgreSQL.Migrator().HasTable(table) {
			t.Errorf("expected table %s", table)
		}
	}
}
