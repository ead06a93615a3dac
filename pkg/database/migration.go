package database

import (
	"github.com/greenhouse-labs/catalog/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Plant{},
		&model.Favorite{},
	)
}
