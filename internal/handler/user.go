package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/greenhouse-labs/catalog/internal/constants"
	"github.com/greenhouse-labs/catalog/internal/dto"
	apperrors "github.com/greenhouse-labs/catalog/internal/errors"
	"github.com/greenhouse-labs/catalog/internal/service"
	ctxutil "github.com/greenhouse-labs/catalog/pkg/context"
	"github.com/greenhouse-labs/catalog/pkg/logger"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{userService: service}
}

func (h *UserHandler) GetByID(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetUserByID")

	id, ok := parseID(ctx, c, "id")
	if !ok {
		return
	}

	if !actorFrom(c).CanAccessUser(id) {
		respondError(ctx, c, "User lookup forbidden", apperrors.ErrForbidden)
		return
	}

	user, err := h.userService.GetByID(ctx, id)
	if err != nil {
		respondError(ctx, c, "Failed to fetch user", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(user))
}

// GetAll lists users through the generic list query parameters: page, limit,
// sort, search, startDate, endDate and the allowed filters.
func (h *UserHandler) GetAll(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetAllUsers")

	params := listParams(c)
	logger.InfoWithContext(ctx, "Get all users request").
		String("page", params.Get(constants.QueryParamPage)).
		String("limit", params.Get(constants.QueryParamLimit)).
		String("sort", params.Get(constants.QueryParamSort)).
		Log()

	result, err := h.userService.List(ctx, params)
	if err != nil {
		respondError(ctx, c, "Failed to fetch users", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateUser creates a new user
func (h *UserHandler) CreateUser(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateUser")

	req, ok := bindJSON[dto.CreateUserRequest](ctx, c)
	if !ok {
		return
	}

	user, err := h.userService.CreateUser(ctx, req)
	if err != nil {
		respondError(ctx, c, "Failed to create user", err)
		return
	}

	logger.InfoWithContext(ctx, "User created successfully").
		Uint("created_user_id", user.ID).
		Log()

	c.JSON(http.StatusCreated, constants.BuildDataResponse(user))
}

// UpdateUser updates user information (excluding email)
func (h *UserHandler) UpdateUser(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateUser")

	id, ok := parseID(ctx, c, "id")
	if !ok {
		return
	}

	req, ok := bindJSON[dto.UpdateUserRequest](ctx, c)
	if !ok {
		return
	}

	user, err := h.userService.UpdateUser(ctx, id, req, actorFrom(c))
	if err != nil {
		respondError(ctx, c, "Failed to update user", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(user))
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdatePassword")

	id, ok := parseID(ctx, c, "id")
	if !ok {
		return
	}

	req, ok := bindJSON[dto.UpdatePasswordRequest](ctx, c)
	if !ok {
		return
	}

	if err := h.userService.UpdatePassword(ctx, id, req, actorFrom(c)); err != nil {
		respondError(ctx, c, "Failed to update password", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Password updated successfully"))
}

// DeleteUser soft deletes a user. Admin only, never oneself.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteUser")

	id, ok := parseID(ctx, c, "id")
	if !ok {
		return
	}

	actor := actorFrom(c)
	if err := h.userService.DeleteUser(ctx, id, actor); err != nil {
		respondError(ctx, c, "Failed to delete user", err)
		return
	}

	logger.InfoWithContext(ctx, "User deleted successfully").
		Uint("target_user_id", id).
		Uint("requesting_user_id", actor.UserID).
		Log()

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}
