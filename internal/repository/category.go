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

type CategoryRepository struct {
	db      *gorm.DB
	metrics metrics.MetricsStore
}

func NewCategoryRepository(db *gorm.DB, store metrics.MetricsStore) *CategoryRepository {
	return &CategoryRepository{db: db, metrics: store}
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*model.Category, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetCategoryByID")

	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		logger.DebugWithContext(ctx, "Category lookup failed").
			Uint("category_id", id).
			Err(err).
			Log()
		return nil, err
	}
	return &category, nil
}

// Exists reports whether a live category uses name or slug, ignoring excludeID.
func (r *CategoryRepository) Exists(ctx context.Context, name, slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("(LOWER(name) = LOWER(?) OR slug = ?)", name, slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CategoryRepository) List(ctx context.Context, params querybuilder.Params, cfg querybuilder.Config) (*querybuilder.Result[model.Category], error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "ListCategories")

	coll := metrics.Instrument[model.Category](r.metrics, "categories", database.NewGormCollection[model.Category](r.db))
	result, err := querybuilder.Execute(ctx, coll, params, cfg)
	observeList(r.metrics, "categories", err)
	return result, err
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "CreateCategory")

	start := time.Now()
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create category").
			String("slug", category.Slug).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Category created").
		Uint("category_id", category.ID).
		String("slug", category.Slug).
		Duration(time.Since(start)).
		Log()
	return nil
}

func (r *CategoryRepository) Save(ctx context.Context, category *model.Category) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "SaveCategory")

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(category).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to save category").
			Uint("category_id", category.ID).
			Err(err).
			Log()
		return err
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "DeleteCategory")

	result := r.db.WithContext(ctx).Delete(&model.Category{}, id)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete category").
			Uint("category_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Category deleted").
		Uint("category_id", id).
		Log()
	return nil
}
