package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/greenhouse-labs/catalog/config"
	"github.com/greenhouse-labs/catalog/internal/constants"
	"github.com/greenhouse-labs/catalog/internal/dto"
	apperrors "github.com/greenhouse-labs/catalog/internal/errors"
	"github.com/greenhouse-labs/catalog/internal/model"
	"github.com/greenhouse-labs/catalog/internal/repository"
	ctxutil "github.com/greenhouse-labs/catalog/pkg/context"
	"github.com/greenhouse-labs/catalog/pkg/logger"
	"github.com/greenhouse-labs/catalog/pkg/querybuilder"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a display name, e.g. "Air Plants!" becomes
// "air-plants".
func Slugify(name string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

type CategoryService struct {
	repoCategory *repository.CategoryRepository
	repoPlant    *repository.PlantRepository
	cache        *CacheService
	listConfig   querybuilder.Config
}

func NewCategoryService(repo *repository.CategoryRepository, plants *repository.PlantRepository, cache *CacheService, limits config.QueryConfig) *CategoryService {
	return &CategoryService{
		repoCategory: repo,
		repoPlant:    plants,
		cache:        cache,
		listConfig:   dto.CategoryQueryConfig(limits),
	}
}

func (s *CategoryService) GetByID(ctx context.Context, id uint) (*dto.CategoryResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "GetCategoryByID")

	key := EntityKey(constants.CacheKeyCategory, id)
	var cached dto.CategoryResponse
	if s.cache.Get(ctx, key, &cached) {
		logger.DebugWithContext(ctx, "Category served from cache").Uint("category_id", id).Log()
		return &cached, nil
	}

	category, err := s.repoCategory.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrCategoryNotFound
		}
		logger.ErrorWithContext(ctx, "Failed to get category").
			Uint("category_id", id).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := dto.NewCategoryResponse(*category)
	s.cache.Set(ctx, key, response)
	return &response, nil
}

func (s *CategoryService) List(ctx context.Context, params querybuilder.Params) (*querybuilder.Result[dto.CategoryResponse], error) {
	ctx = ctxutil.WithOperation(ctx, "service", "ListCategories")

	result, err := s.repoCategory.List(ctx, params, s.listConfig)
	if err != nil {
		logger.WarnWithContext(ctx, "Category list query failed").Err(err).Log()
		return nil, apperrors.FromQueryError(err)
	}
	return querybuilder.MapResult(result, dto.NewCategoryResponse), nil
}

func (s *CategoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "CreateCategory")

	name := strings.TrimSpace(req.Name)
	slug := req.Slug
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		return nil, apperrors.WrapError(apperrors.ErrInvalidInput, errSlugRequired)
	}

	exists, err := s.repoCategory.Exists(ctx, name, slug, 0)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if exists {
		logger.WarnWithContext(ctx, "Category name or slug already taken").
			String("name", name).
			String("slug", slug).
			Log()
		return nil, apperrors.ErrCategoryExists
	}

	status := req.Status
	if status == "" {
		status = constants.StatusActive
	}

	category := &model.Category{
		Name:        name,
		Slug:        slug,
		Description: req.Description,
		Status:      status,
	}
	if err := s.repoCategory.Create(ctx, category); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.ErrCategoryExists
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := dto.NewCategoryResponse(*category)
	return &response, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "UpdateCategory")

	category, err := s.repoCategory.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	renamed := false
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		category.Name = strings.TrimSpace(*req.Name)
		renamed = true
	}
	if req.Slug != nil && *req.Slug != "" {
		category.Slug = *req.Slug
		renamed = true
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Status != nil {
		category.Status = *req.Status
	}

	if renamed {
		exists, err := s.repoCategory.Exists(ctx, category.Name, category.Slug, id)
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		if exists {
			return nil, apperrors.ErrCategoryExists
		}
	}

	if err := s.repoCategory.Save(ctx, category); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.ErrCategoryExists
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	// Cached plants embed their category.
	s.cache.Invalidate(ctx, EntityKey(constants.CacheKeyCategory, id))
	s.cache.InvalidatePrefix(ctx, constants.CacheKeyPlant)

	logger.InfoWithContext(ctx, "Category updated").
		Uint("category_id", id).
		Log()

	response := dto.NewCategoryResponse(*category)
	return &response, nil
}

// Delete removes a category that no live plant references.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "service", "DeleteCategory")

	if _, err := s.repoCategory.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	inUse, err := s.repoPlant.CountByCategory(ctx, id)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if inUse > 0 {
		logger.WarnWithContext(ctx, "Category still referenced by plants").
			Uint("category_id", id).
			Int64("plant_count", inUse).
			Log()
		return apperrors.ErrCategoryInUse
	}

	if err := s.repoCategory.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.Invalidate(ctx, EntityKey(constants.CacheKeyCategory, id))
	return nil
}
