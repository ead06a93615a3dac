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

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Login")

	req, ok := bindJSON[dto.UserLoginRequest](ctx, c)
	if !ok {
		return
	}

	response, err := h.userService.LoginUser(ctx, req.Email, req.Password)
	if err != nil {
		respondError(ctx, c, "Login failed", err)
		return
	}

	logger.InfoWithContext(ctx, "User logged in successfully").
		Uint("logged_in_user_id", response.User.ID).
		Log()

	c.JSON(http.StatusOK, constants.BuildDataResponse(response))
}

// RefreshToken exchanges a refresh token for a new token pair
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "RefreshToken")

	req, ok := bindJSON[dto.RefreshTokenRequest](ctx, c)
	if !ok {
		return
	}

	response, err := h.userService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		respondError(ctx, c, "Token refresh failed", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(response))
}

// Logout handles user logout
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Logout")

	actor := actorFrom(c)
	if actor.UserID == 0 {
		respondError(ctx, c, "User not found in context during logout", apperrors.ErrUnauthorized)
		return
	}

	if err := h.userService.LogoutUser(ctx, actor.UserID); err != nil {
		respondError(ctx, c, "Logout failed", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Logged out successfully"))
}
