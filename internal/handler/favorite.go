package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/greenhouse-labs/catalog/internal/constants"
	"github.com/greenhouse-labs/catalog/internal/dto"
	"github.com/greenhouse-labs/catalog/internal/service"
	ctxutil "github.com/greenhouse-labs/catalog/pkg/context"
)

type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

func (h *FavoriteHandler) GetAll(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetAllFavorites")

	result, err := h.favoriteService.List(ctx, listParams(c), actorFrom(c))
	if err != nil {
		respondError(ctx, c, "Failed to fetch favorites", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *FavoriteHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateFavorite")

	req, ok := bindJSON[dto.CreateFavoriteRequest](ctx, c)
	if !ok {
		return
	}

	favorite, err := h.favoriteService.Create(ctx, req, actorFrom(c))
	if err != nil {
		respondError(ctx, c, "Failed to create favorite", err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildDataResponse(favorite))
}

func (h *FavoriteHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteFavorite")

	id, ok := parseID(ctx, c, "id")
	if !ok {
		return
	}

	if err := h.favoriteService.Delete(ctx, id, actorFrom(c)); err != nil {
		respondError(ctx, c, "Failed to delete favorite", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}
