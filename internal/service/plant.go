package service

import (
	"context"
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
	"gorm.io/datatypes"
)

type PlantService struct {
	repoPlant    *repository.PlantRepository
	repoCategory *repository.CategoryRepository
	cache        *CacheService
	listConfig   querybuilder.Config
}

func NewPlantService(repo *repository.PlantRepository, categories *repository.CategoryRepository, cache *CacheService, limits config.QueryConfig) *PlantService {
	return &PlantService{
		repoPlant:    repo,
		repoCategory: categories,
		cache:        cache,
		listConfig:   dto.PlantQueryConfig(limits),
	}
}

func (s *PlantService) GetByID(ctx context.Context, id uint) (*dto.PlantResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "GetPlantByID")

	key := EntityKey(constants.CacheKeyPlant, id)
	var cached dto.PlantResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	plant, err := s.repoPlant.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrPlantNotFound
		}
		logger.ErrorWithContext(ctx, "Failed to get plant").
			Uint("plant_id", id).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := dto.NewPlantResponse(*plant)
	s.cache.Set(ctx, key, response)
	return &response, nil
}

func (s *PlantService) List(ctx context.Context, params querybuilder.Params) (*querybuilder.Result[dto.PlantResponse], error) {
	ctx = ctxutil.WithOperation(ctx, "service", "ListPlants")

	result, err := s.repoPlant.List(ctx, params, s.listConfig)
	if err != nil {
		logger.WarnWithContext(ctx, "Plant list query failed").Err(err).Log()
		return nil, apperrors.FromQueryError(err)
	}

	logger.DebugWithContext(ctx, "Plants fetched").
		Int64("total", result.Pagination.TotalItems).
		Int("returned_count", len(result.Data)).
		Log()

	return querybuilder.MapResult(result, dto.NewPlantResponse), nil
}

// loadCategory returns the referenced category or ErrCategoryNotFound.
func (s *PlantService) loadCategory(ctx context.Context, id uint) (*model.Category, error) {
	category, err := s.repoCategory.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return category, nil
}

func (s *PlantService) Create(ctx context.Context, req *dto.CreatePlantRequest) (*dto.PlantResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "CreatePlant")

	category, err := s.loadCategory(ctx, req.CategoryID)
	if err != nil {
		logger.WarnWithContext(ctx, "Plant references unknown category").
			Uint("category_id", req.CategoryID).
			Err(err).
			Log()
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = constants.PlantStatusAvailable
	}

	plant := &model.Plant{
		Name:           strings.TrimSpace(req.Name),
		ScientificName: req.ScientificName,
		Description:    req.Description,
		CategoryID:     category.ID,
		Price:          req.Price,
		Stock:          req.Stock,
		Status:         status,
		ImageURL:       req.ImageURL,
		Care:           datatypes.NewJSONType(req.Care.Model()),
	}
	if err := s.repoPlant.Create(ctx, plant); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	plant.Category = category

	logger.InfoWithContext(ctx, "Plant created").
		Uint("plant_id", plant.ID).
		Uint("category_id", plant.CategoryID).
		Log()

	response := dto.NewPlantResponse(*plant)
	return &response, nil
}

func (s *PlantService) Update(ctx context.Context, id uint, req *dto.UpdatePlantRequest) (*dto.PlantResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "UpdatePlant")

	plant, err := s.repoPlant.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrPlantNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if req.CategoryID != nil && *req.CategoryID != plant.CategoryID {
		category, err := s.loadCategory(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		plant.CategoryID = category.ID
		plant.Category = category
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		plant.Name = strings.TrimSpace(*req.Name)
	}
	if req.ScientificName != nil {
		plant.ScientificName = *req.ScientificName
	}
	if req.Description != nil {
		plant.Description = *req.Description
	}
	if req.Price != nil {
		plant.Price = *req.Price
	}
	if req.Stock != nil {
		plant.Stock = *req.Stock
	}
	if req.Status != nil && *req.Status != "" {
		plant.Status = *req.Status
	}
	if req.ImageURL != nil {
		plant.ImageURL = *req.ImageURL
	}
	if req.Care != nil {
		plant.Care = datatypes.NewJSONType(req.Care.Model())
	}

	if err := s.repoPlant.Save(ctx, plant); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.cache.Invalidate(ctx, EntityKey(constants.CacheKeyPlant, id))

	response := dto.NewPlantResponse(*plant)
	return &response, nil
}

func (s *PlantService) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "service", "DeletePlant")

	if err := s.repoPlant.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return apperrors.ErrPlantNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.cache.Invalidate(ctx, EntityKey(constants.CacheKeyPlant, id))

	logger.InfoWithContext(ctx, "Plant deleted").Uint("plant_id", id).Log()
	return nil
}

// Exists reports whether a live plant has the given ID.
func (s *PlantService) Exists(ctx context.Context, id uint) (bool, error) {
	_, err := s.repoPlant.GetByID(ctx, id)
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, err
}
