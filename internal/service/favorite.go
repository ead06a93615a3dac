package service

import (
	"context"
	"strconv"

	"github.com/greenhouse-labs/catalog/config"
	"github.com/greenhouse-labs/catalog/internal/dto"
	apperrors "github.com/greenhouse-labs/catalog/internal/errors"
	"github.com/greenhouse-labs/catalog/internal/model"
	"github.com/greenhouse-labs/catalog/internal/repository"
	ctxutil "github.com/greenhouse-labs/catalog/pkg/context"
	"github.com/greenhouse-labs/catalog/pkg/logger"
	"github.com/greenhouse-labs/catalog/pkg/querybuilder"
)

type FavoriteService struct {
	repoFavorite *repository.FavoriteRepository
	plants       *PlantService
	listConfig   querybuilder.Config
}

func NewFavoriteService(repo *repository.FavoriteRepository, plants *PlantService, limits config.QueryConfig) *FavoriteService {
	return &FavoriteService{
		repoFavorite: repo,
		plants:       plants,
		listConfig:   dto.FavoriteQueryConfig(limits),
	}
}

// List returns favorites. Non-admin callers only ever see their own, whatever
// userId they ask for.
func (s *FavoriteService) List(ctx context.Context, params querybuilder.Params, actor Actor) (*querybuilder.Result[dto.FavoriteResponse], error) {
	ctx = ctxutil.WithOperation(ctx, "service", "ListFavorites")

	if !actor.IsAdmin() {
		scoped := make(querybuilder.Params, len(params)+1)
		for k, v := range params {
			scoped[k] = v
		}
		scoped["userId"] = strconv.FormatUint(uint64(actor.UserID), 10)
		params = scoped
	}

	result, err := s.repoFavorite.List(ctx, params, s.listConfig)
	if err != nil {
		logger.WarnWithContext(ctx, "Favorite list query failed").Err(err).Log()
		return nil, apperrors.FromQueryError(err)
	}
	return querybuilder.MapResult(result, dto.NewFavoriteResponse), nil
}

// Create marks a plant as a favorite of the actor.
func (s *FavoriteService) Create(ctx context.Context, req *dto.CreateFavoriteRequest, actor Actor) (*dto.FavoriteResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "CreateFavorite")

	exists, err := s.plants.Exists(ctx, req.PlantID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !exists {
		return nil, apperrors.ErrPlantNotFound
	}

	duplicate, err := s.repoFavorite.Exists(ctx, actor.UserID, req.PlantID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if duplicate {
		return nil, apperrors.ErrFavoriteExists
	}

	favorite := &model.Favorite{
		UserID:  actor.UserID,
		PlantID: req.PlantID,
		Note:    req.Note,
	}
	if err := s.repoFavorite.Create(ctx, favorite); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.ErrFavoriteExists
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	created, err := s.repoFavorite.GetByID(ctx, favorite.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Favorite created").
		Uint("favorite_id", favorite.ID).
		Uint("plant_id", favorite.PlantID).
		Log()

	response := dto.NewFavoriteResponse(*created)
	return &response, nil
}

// Delete removes a favorite owned by the actor. Admins may remove any.
func (s *FavoriteService) Delete(ctx context.Context, id uint, actor Actor) error {
	ctx = ctxutil.WithOperation(ctx, "service", "DeleteFavorite")

	favorite, err := s.repoFavorite.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return apperrors.ErrFavoriteNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !actor.CanAccessUser(favorite.UserID) {
		logger.WarnWithContext(ctx, "Attempt to delete another user's favorite").
			Uint("favorite_id", id).
			Uint("owner_id", favorite.UserID).
			Log()
		// Other users' favorites are reported as missing.
		return apperrors.ErrFavoriteNotFound
	}

	if err := s.repoFavorite.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return apperrors.ErrFavoriteNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}
