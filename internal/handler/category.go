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

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) GetAll(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetAllCategories")

	result, err := h.categoryService.List(ctx, listParams(c))
	if err != nil {
		respondError(ctx, c, "Failed to fetch categories", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CategoryHandler) GetByID(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetCategoryByID")

	id, ok := parseID(ctx, c, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.GetByID(ctx, id)
	if err != nil {
		respondError(ctx, c, "Failed to fetch category", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(category))
}

func (h *CategoryHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateCategory")

	req, ok := bindJSON[dto.CreateCategoryRequest](ctx, c)
	if !ok {
		return
	}

	category, err := h.categoryService.Create(ctx, req)
	if err != nil {
		respondError(ctx, c, "Failed to create category", err)
		return
	}

	logger.InfoWithContext(ctx, "Category created").
		Uint("category_id", category.ID).
		String("slug", category.Slug).
		Log()

	c.JSON(http.StatusCreated, constants.BuildDataResponse(category))
}

func (h *CategoryHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateCategory")

	id, ok := parseID(ctx, c, "id")
	if !ok {
		return
	}

	req, ok := bindJSON[dto.UpdateCategoryRequest](ctx, c)
	if !ok {
		return
	}

	category, err := h.categoryService.Update(ctx, id, req)
	if err != nil {
		respondError(ctx, c, "Failed to update category", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(category))
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteCategory")

	id, ok := parseID(ctx, c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(ctx, id); err != nil {
		respondError(ctx, c, "Failed to delete category", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}
