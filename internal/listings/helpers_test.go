package listings

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"findmyrave/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// every connection to :memory: is a new database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&Listing{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func discardLogger() *logger.Logger {
	return logger.NewWithHandler(slog.NewTextHandler(io.Discard, nil))
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ModerationEvent
	err    error
}

func (p *recordingPublisher) PublishModeration(_ context.Context, event ModerationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

var errBrokerDown = errors.New("broker down")

// seedListing stores a listing starting daysAhead days after 2026-10-16
func seedListing(t *testing.T, repo Repository, title, town string, status ListingStatus, daysAhead int, genres ...string) *Listing {
	t.Helper()
	start := time.Date(2026, time.October, 16, 22, 0, 0, 0, time.UTC).AddDate(0, 0, daysAhead)
	listing := &Listing{
		Title:       title,
		StartDate:   start,
		EndDate:     start.Add(6 * time.Hour),
		Location:    "The Warehouse",
		Town:        town,
		Genres:      genres,
		Status:      status,
		SubmittedBy: uuid.New(),
	}
	if err := repo.Create(context.Background(), listing); err != nil {
		t.Fatalf("create listing: %v", err)
	}
	return listing
}
