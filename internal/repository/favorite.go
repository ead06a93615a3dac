package repository

import (
	"context"

	"github.com/greenhouse-labs/catalog/internal/model"
	ctxutil "github.com/greenhouse-labs/catalog/pkg/context"
	"github.com/greenhouse-labs/catalog/pkg/database"
	"github.com/greenhouse-labs/catalog/pkg/logger"
	"github.com/greenhouse-labs/catalog/pkg/metrics"
	"github.com/greenhouse-labs/catalog/pkg/querybuilder"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct {
	db      *gorm.DB
	metrics metrics.MetricsStore
}

func NewFavoriteRepository(db *gorm.DB, store metrics.MetricsStore) *FavoriteRepository {
	return &FavoriteRepository{db: db, metrics: store}
}

func (r *FavoriteRepository) GetByID(ctx context.Context, id uint) (*model.Favorite, error) {
	var favorite model.Favorite
	if err := r.db.WithContext(ctx).Preload("Plant.Category").First(&favorite, id).Error; err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, plantID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("user_id = ? AND plant_id = ?", userID, plantID).
		Count(&count).Error
	return count > 0, err
}

func (r *FavoriteRepository) List(ctx context.Context, params querybuilder.Params, cfg querybuilder.Config) (*querybuilder.Result[model.Favorite], error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "ListFavorites")

	coll := metrics.Instrument[model.Favorite](r.metrics, "favorites", database.NewGormCollection[model.Favorite](r.db, "Plant.Category"))
	result, err := querybuilder.Execute(ctx, coll, params, cfg)
	observeList(r.metrics, "favorites", err)
	return result, err
}

func (r *FavoriteRepository) Create(ctx context.Context, favorite *model.Favorite) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "CreateFavorite")

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(favorite).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create favorite").
			Uint("user_id", favorite.UserID).
			Uint("plant_id", favorite.PlantID).
			Err(err).
			Log()
		return err
	}
	return nil
}

// Delete removes the row permanently so the pair can be favorited again.
func (r *FavoriteRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&model.Favorite{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
