package listings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrListingNotFound   = errors.New("listing not found")
	ErrListingNotPending = errors.New("listing has already been moderated")
)

type Repository interface {
	Create(ctx context.Context, listing *Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	ListBySubmitter(ctx context.Context, userID uuid.UUID) ([]Listing, error)
	ListByStatus(ctx context.Context, status ListingStatus) ([]Listing, error)
	Moderate(ctx context.Context, id uuid.UUID, status ListingStatus, reviewer uuid.UUID, reason string, at time.Time) (*Listing, error)
	Delete(ctx context.Context, id uuid.UUID) (*Listing, error)
	SearchApproved(ctx context.Context, query SearchQuery) ([]Listing, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, listing *Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	var listing Listing
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (r *repository) ListBySubmitter(ctx context.Context, userID uuid.UUID) ([]Listing, error) {
	var listings []Listing
	err := r.db.WithContext(ctx).
		Where("submitted_by = ?", userID).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

// ListByStatus returns the moderation queue, oldest first. An empty status lists everything.
func (r *repository) ListByStatus(ctx context.Context, status ListingStatus) ([]Listing, error) {
	var listings []Listing
	db := r.db.WithContext(ctx).Model(&Listing{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("created_at ASC").Find(&listings).Error
	return listings, err
}

// Moderate moves a pending listing to status. The status guard sits in the
// UPDATE itself so two admins cannot both decide the same listing.
func (r *repository) Moderate(ctx context.Context, id uuid.UUID, status ListingStatus, reviewer uuid.UUID, reason string, at time.Time) (*Listing, error) {
	var listing Listing

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Listing{}).
			Where("id = ? AND status = ?", id, ListingStatusPending).
			Updates(map[string]interface{}{
				"status":           status,
				"reviewed_by":      reviewer,
				"reviewed_at":      at,
				"rejection_reason": reason,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update listing: %w", result.Error)
		}

		if err := tx.Where("id = ?", id).First(&listing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotFound
			}
			return err
		}
		if result.RowsAffected == 0 {
			return ErrListingNotPending
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &listing, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (*Listing, error) {
	var listing Listing

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&listing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotFound
			}
			return err
		}
		if err := tx.Where("id = ?", id).Delete(&Listing{}).Error; err != nil {
			return fmt.Errorf("failed to delete listing: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &listing, nil
}

func (r *repository) SearchApproved(ctx context.Context, query SearchQuery) ([]Listing, int64, error) {
	var listings []Listing
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Listing{}).Where("status = ?", ListingStatusApproved)

	if query.Keyword != "" {
		term := containsPattern(query.Keyword)
		db = db.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, term, term)
	}
	if query.Location != "" {
		term := containsPattern(query.Location)
		db = db.Where(`LOWER(town) LIKE ? ESCAPE '\' OR LOWER(location) LIKE ? ESCAPE '\'`, term, term)
	}
	if query.Genre != "" {
		// genres is a JSON array of keys
		db = db.Where("genres LIKE ?", `%"`+query.Genre+`"%`)
	}
	if !query.From.IsZero() {
		db = db.Where("start_date >= ?", query.From)
	}
	if !query.To.IsZero() {
		db = db.Where("start_date < ?", query.To)
	}

	if err := db.Session(&gorm.Session{}).Count(&totalCount).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	err := db.Order("start_date ASC").
		Offset(query.Offset).
		Limit(query.Limit).
		Find(&listings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search listings: %w", err)
	}

	return listings, totalCount, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern matches user text literally inside a LIKE ... ESCAPE '\' clause
func containsPattern(text string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(text)) + "%"
}
