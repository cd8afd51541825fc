package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"findmyrave/internal/bookmarks"
	"findmyrave/internal/listings"
	"findmyrave/internal/shared/config"
	"findmyrave/internal/shared/database"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Seeder struct {
	db  *database.DB
	cfg *config.Config
}

func main() {
	fmt.Println("Starting Find My Rave database seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, cfg: cfg}

	// Clean database
	fmt.Println("\nCleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("Database cleaned successfully")

	// Seed data
	fmt.Println("\nSeeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("\nSeeding completed! Database is ready for testing.")
}

// CleanDatabase truncates this service's tables
func (s *Seeder) CleanDatabase() error {
	tables := []string{"bookmarks", "listings"}

	return s.db.PostgreSQL.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			fmt.Printf("  Truncating table: %s\n", table)
			if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
				return fmt.Errorf("failed to truncate table %s: %w", table, err)
			}
		}
		return nil
	})
}

// SeedAll seeds listings in every moderation state and a couple of bookmarks
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	users := map[string]uuid.UUID{
		"admin": uuid.New(),
		"user1": uuid.New(),
		"user2": uuid.New(),
	}

	listingIDs, err := s.SeedListings(ctx, users)
	if err != nil {
		return fmt.Errorf("failed to seed listings: %w", err)
	}

	if err := s.SeedBookmarks(ctx, users, listingIDs); err != nil {
		return fmt.Errorf("failed to seed bookmarks: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	s.PrintTokens(users)
	return nil
}

// SeedListings creates approved, pending and rejected listings
func (s *Seeder) SeedListings(ctx context.Context, users map[string]uuid.UUID) ([]uuid.UUID, error) {
	fmt.Println("  Seeding listings...")

	repo := listings.NewRepository(s.db.PostgreSQL)
	base := time.Now().UTC().Truncate(24 * time.Hour).Add(22 * time.Hour)
	age18 := 18

	data := []struct {
		title     string
		location  string
		town      string
		lat, lng  float64
		daysAhead int
		price     float64
		genres    []string
		status    listings.ListingStatus
		submitter string
	}{
		{"Basement Sessions", "The Basement", "Sheffield", 53.381, -1.470, 2, 8, []string{"techno"}, listings.ListingStatusApproved, "user1"},
		{"Jungle Warehouse", "Unit 4", "Bristol", 51.454, -2.587, 3, 12.5, []string{"drum-and-bass"}, listings.ListingStatusApproved, "user1"},
		{"Sunday Disco Social", "Canal Bar", "Manchester", 53.474, -2.246, 5, 0, []string{"disco", "house"}, listings.ListingStatusApproved, "user2"},
		{"Hard Dance Allnighter", "Arches", "Glasgow", 55.857, -4.258, 9, 20, []string{"hardcore", "trance"}, listings.ListingStatusApproved, "user2"},
		{"Garage Rooftop", "Skyline", "London", 51.507, -0.127, 6, 15, []string{"garage"}, listings.ListingStatusPending, "user1"},
		{"Free Party", "Somewhere", "Leeds", 53.800, -1.549, 4, 0, []string{"techno", "hardcore"}, listings.ListingStatusPending, "user2"},
		{"Totally Real Rave", "TBC", "Nowhere", 0, 0, 1, 0, nil, listings.ListingStatusRejected, "user2"},
	}

	var approvedIDs []uuid.UUID
	now := time.Now().UTC()
	admin := users["admin"]

	for _, d := range data {
		start := base.AddDate(0, 0, d.daysAhead)
		listing := &listings.Listing{
			Title:       d.title,
			Description: fmt.Sprintf("%s at %s, %s.", d.title, d.location, d.town),
			StartDate:   start,
			EndDate:     start.Add(7 * time.Hour),
			Location:    d.location,
			Town:        d.town,
			Latitude:    d.lat,
			Longitude:   d.lng,
			MinAge:      &age18,
			EntryPrice:  d.price,
			Genres:      d.genres,
			Status:      d.status,
			SubmittedBy: users[d.submitter],
		}
		if d.status != listings.ListingStatusPending {
			listing.ReviewedBy = &admin
			listing.ReviewedAt = &now
		}
		if d.status == listings.ListingStatusRejected {
			listing.RejectionReason = "Venue could not be verified"
		}

		if err := repo.Create(ctx, listing); err != nil {
			return nil, fmt.Errorf("failed to create listing %s: %w", d.title, err)
		}
		if d.status == listings.ListingStatusApproved {
			approvedIDs = append(approvedIDs, listing.ID)
		}
		fmt.Printf("    Created listing: %s (%s)\n", listing.Title, listing.Status)
	}

	return approvedIDs, nil
}

// SeedBookmarks saves the first approved listings for user1
func (s *Seeder) SeedBookmarks(ctx context.Context, users map[string]uuid.UUID, listingIDs []uuid.UUID) error {
	fmt.Println("  Seeding bookmarks...")

	listingRepo := listings.NewRepository(s.db.PostgreSQL)
	bookmarkRepo := bookmarks.NewRepository(s.db.PostgreSQL)

	for i, id := range listingIDs {
		if i >= 2 {
			break
		}
		listing, err := listingRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		event := listing.ToEvent()
		bookmark := &bookmarks.Bookmark{
			UserID:    users["user1"],
			Platform:  event.Platform,
			EventID:   event.ID,
			Title:     event.Title,
			StartDate: event.StartDate,
			Town:      event.Town,
			ImageURL:  event.ImageURL,
		}
		if err := bookmarkRepo.Create(ctx, bookmark); err != nil {
			return fmt.Errorf("failed to create bookmark for %s: %w", event.Title, err)
		}
		fmt.Printf("    Bookmarked: %s\n", event.Title)
	}
	return nil
}

// PrintTokens prints week-long bearer tokens for the seeded identities
func (s *Seeder) PrintTokens(users map[string]uuid.UUID) {
	fmt.Println("\n  Development tokens (signed with JWT_SECRET):")
	for _, key := range []string{"admin", "user1", "user2"} {
		role := "USER"
		if key == "admin" {
			role = "ADMIN"
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": users[key].String(),
			"email":   key + "@findmyrave.local",
			"role":    role,
			"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
		}).SignedString([]byte(s.cfg.JWT.Secret))
		if err != nil {
			log.Printf("Warning: failed to sign token for %s: %v", key, err)
			continue
		}
		fmt.Printf("    %s (%s): %s\n", key, role, token)
	}
}
