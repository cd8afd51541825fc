package bookmarks

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBookmarkNotFound  = errors.New("bookmark not found")
	ErrAlreadyBookmarked = errors.New("event already bookmarked")
)

type Repository interface {
	Create(ctx context.Context, bookmark *Bookmark) error
	Exists(ctx context.Context, userID uuid.UUID, platform, eventID string) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Bookmark, error)
	Delete(ctx context.Context, userID uuid.UUID, platform, eventID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create relies on the (user, platform, event) unique index for racing inserts
func (r *repository) Create(ctx context.Context, bookmark *Bookmark) error {
	err := r.db.WithContext(ctx).Create(bookmark).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyBookmarked
	}
	return err
}

func (r *repository) Exists(ctx context.Context, userID uuid.UUID, platform, eventID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Bookmark{}).
		Where("user_id = ? AND platform = ? AND event_id = ?", userID, platform, eventID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Bookmark, error) {
	var bookmarks []Bookmark
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	return bookmarks, err
}

func (r *repository) Delete(ctx context.Context, userID uuid.UUID, platform, eventID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND platform = ? AND event_id = ?", userID, platform, eventID).
		Delete(&Bookmark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}
