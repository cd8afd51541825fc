package database

import (
	"findmyrave/internal/bookmarks"
	"findmyrave/internal/listings"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&listings.Listing{},
		&bookmarks.Bookmark{},
	)
}
