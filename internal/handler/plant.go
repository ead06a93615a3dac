package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/greenhouse-labs/catalog/internal/constants"
	"github.com/greenhouse-labs/catalog/internal/dto"
	"github.com/greenhouse-labs/catalog/internal/service"
	ctxutil "github.com/greenhouse-labs/catalog/pkg/context"
	"github.com/greenhouse-labs/catalog/pkg/logger"
)

type PlantHandler struct {
	plantService *service.PlantService
}

func NewPlantHandler(plantService *service.PlantService) *PlantHandler {
	return &PlantHandler{plantService: plantService}
}

// GetAll lists plants with their category populated.
func (h *PlantHandler) GetAll(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetAllPlants")

	result, err := h.plantService.List(ctx, listParams(c))
	if err != nil {
		respondError(ctx, c, "Failed to fetch plants", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PlantHandler) GetByID(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetPlantByID")

	id, ok := parseID(ctx, c, "id")
	if !ok {
		return
	}

	plant, err := h.plantService.GetByID(ctx, id)
	if err != nil {
		respondError(ctx, c, "Failed to fetch plant", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(plant))
}

func (h *PlantHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreatePlant")

	req, ok := bindJSON[dto.CreatePlantRequest](ctx, c)
	if !ok {
		return
	}

	plant, err := h.plantService.Create(ctx, req)
	if err != nil {
		respondError(ctx, c, "Failed to create plant", err)
		return
	}

	logger.InfoWithContext(ctx, "Plant created").
		Uint("plant_id", plant.ID).
		Uint("category_id", plant.CategoryID).
		Log()

	c.JSON(http.StatusCreated, constants.BuildDataResponse(plant))
}

func (h *PlantHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdatePlant")

	id, ok := parseID(ctx, c, "id")
	if !ok {
		return
	}

	req, ok := bindJSON[dto.UpdatePlantRequest](ctx, c)
	if !ok {
		return
	}

	plant, err := h.plantService.Update(ctx, id, req)
	if err != nil {
		respondError(ctx, c, "Failed to update plant", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(plant))
}

func (h *PlantHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeletePlant")

	id, ok := parseID(ctx, c, "id")
	if !ok {
		return
	}

	if err := h.plantService.Delete(ctx, id); err != nil {
		respondError(ctx, c, "Failed to delete plant", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}
