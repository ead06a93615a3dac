package database

import (
	"context"
	"errors"
	"strings"

	"github.com/greenhouse-labs/catalog/config"
	"github.com/greenhouse-labs/catalog/internal/constants"
	"github.com/greenhouse-labs/catalog/internal/model"
	"github.com/greenhouse-labs/catalog/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed creates the initial admin account when it does not exist yet.
func Seed(ctx context.Context, db *gorm.DB, cfg config.SeedConfig) error {
	if !cfg.Enabled {
		return nil
	}
	return SeedAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword)
}

// SeedAdmin creates the admin user if not exists
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing model.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		FirstName:    "Catalog",
		LastName:     "Admin",
		Email:        email,
		Password:     string(hashedPassword),
		Role:         constants.RoleAdmin,
		Status:       constants.StatusActive,
		TokenVersion: 1,
	}

	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}

	logger.GetLogger().Info("Seeded admin user", zap.String("email", email))
	return nil
}
