package database

import (
	"context"

	"github.com/greenhouse-labs/catalog/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// searchIndexes back the case-insensitive substring search of list endpoints
// with trigram indexes on LOWER(column).
var searchIndexes = []string{
	"CREATE EXTENSION IF NOT EXISTS pg_trgm",
	"CREATE INDEX IF NOT EXISTS idx_plants_name_trgm ON plants USING GIN (LOWER(name) gin_trgm_ops)",
	"CREATE INDEX IF NOT EXISTS idx_plants_scientific_name_trgm ON plants USING GIN (LOWER(scientific_name) gin_trgm_ops)",
	"CREATE INDEX IF NOT EXISTS idx_categories_name_trgm ON categories USING GIN (LOWER(name) gin_trgm_ops)",
	"CREATE INDEX IF NOT EXISTS idx_users_email_trgm ON users USING GIN (LOWER(email) gin_trgm_ops)",
}

// sortIndexes cover the default orderings together with the soft delete filter.
var sortIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_plants_created_at_live ON plants (created_at DESC, id) WHERE deleted_at IS NULL",
	"CREATE INDEX IF NOT EXISTS idx_plants_category_price ON plants (category_id, price) WHERE deleted_at IS NULL",
	"CREATE INDEX IF NOT EXISTS idx_users_created_at_live ON users (created_at DESC, id) WHERE deleted_at IS NULL",
	"CREATE INDEX IF NOT EXISTS idx_favorites_user_created ON favorites (user_id, created_at DESC)",
}

// CreateIndexes adds the PostgreSQL specific indexes AutoMigrate cannot
// express. Failures are logged and skipped so a missing extension does not
// block startup.
func CreateIndexes(ctx context.Context, db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	created := 0
	for _, stmt := range append(searchIndexes, sortIndexes...) {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			logger.GetLogger().Warn("Failed to create index", zap.String("statement", stmt), zap.Error(err))
			continue
		}
		created++
	}

	logger.GetLogger().Info("Database indexes ensured", zap.Int("applied", created))
	return nil
}
