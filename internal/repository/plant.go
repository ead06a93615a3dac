package repository

import (
	"context"
	"time"

	"github.com/greenhouse-labs/catalog/internal/model"
	ctxutil "github.com/greenhouse-labs/catalog/pkg/context"
	"github.com/greenhouse-labs/catalog/pkg/database"
	"github.com/greenhouse-labs/catalog/pkg/logger"
	"github.com/greenhouse-labs/catalog/pkg/metrics"
	"github.com/greenhouse-labs/catalog/pkg/querybuilder"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlantRepository struct {
	db      *gorm.DB
	metrics metrics.MetricsStore
}

func NewPlantRepository(db *gorm.DB, store metrics.MetricsStore) *PlantRepository {
	return &PlantRepository{db: db, metrics: store}
}

// GetByID loads a plant with its category.
func (r *PlantRepository) GetByID(ctx context.Context, id uint) (*model.Plant, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetPlantByID")

	var plant model.Plant
	if err := r.db.WithContext(ctx).Preload("Category").First(&plant, id).Error; err != nil {
		logger.DebugWithContext(ctx, "Plant lookup failed").
			Uint("plant_id", id).
			Err(err).
			Log()
		return nil, err
	}
	return &plant, nil
}

func (r *PlantRepository) List(ctx context.Context, params querybuilder.Params, cfg querybuilder.Config) (*querybuilder.Result[model.Plant], error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "ListPlants")

	coll := metrics.Instrument[model.Plant](r.metrics, "plants", database.NewGormCollection[model.Plant](r.db, "Category"))
	result, err := querybuilder.Execute(ctx, coll, params, cfg)
	observeList(r.metrics, "plants", err)
	return result, err
}

// CountByCategory counts live plants referencing the category.
func (r *PlantRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Plant{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

func (r *PlantRepository) Create(ctx context.Context, plant *model.Plant) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "CreatePlant")

	start := time.Now()
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(plant).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create plant").
			String("name", plant.Name).
			Uint("category_id", plant.CategoryID).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Plant created").
		Uint("plant_id", plant.ID).
		Duration(time.Since(start)).
		Log()
	return nil
}

func (r *PlantRepository) Save(ctx context.Context, plant *model.Plant) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "SavePlant")

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(plant).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to save plant").
			Uint("plant_id", plant.ID).
			Err(err).
			Log()
		return err
	}
	return nil
}

// Delete soft deletes the plant and drops favorites pointing at it.
func (r *PlantRepository) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "DeletePlant")

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("plant_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Plant{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		logger.WarnWithContext(ctx, "Failed to delete plant").
			Uint("plant_id", id).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Plant deleted").
		Uint("plant_id", id).
		Log()
	return nil
}
