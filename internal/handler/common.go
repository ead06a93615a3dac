package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/greenhouse-labs/catalog/internal/constants"
	apperrors "github.com/greenhouse-labs/catalog/internal/errors"
	"github.com/greenhouse-labs/catalog/internal/service"
	"github.com/greenhouse-labs/catalog/pkg/logger"
	"github.com/greenhouse-labs/catalog/pkg/querybuilder"
	"github.com/greenhouse-labs/catalog/pkg/validation"
)

// parseID reads a positive numeric path parameter. On failure it writes a
// 400 response and returns false.
func parseID(ctx context.Context, c *gin.Context, param string) (uint, bool) {
	raw := c.Param(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		logger.WarnWithContext(ctx, "Invalid ID format").
			String("raw_id", raw).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid "+param, nil))
		return 0, false
	}
	return uint(id), true
}

// bindJSON returns the body decoded by the validation middleware, or binds
// and validates it here when the route has no such middleware.
func bindJSON[T any](ctx context.Context, c *gin.Context) (*T, bool) {
	if v, ok := c.Get(constants.GinKeyRequestBody); ok {
		if req, ok := v.(*T); ok {
			return req, true
		}
	}

	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid request body").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Validation failed", validation.Messages(err)))
		return nil, false
	}
	return &req, true
}

// actorFrom returns the caller identity set by the auth middleware. The zero
// Actor is returned on public routes.
func actorFrom(c *gin.Context) service.Actor {
	var actor service.Actor
	if v, ok := c.Get(constants.GinKeyUserID); ok {
		actor.UserID, _ = v.(uint)
	}
	actor.Role = c.GetString(constants.GinKeyRole)
	return actor
}

func listParams(c *gin.Context) querybuilder.Params {
	return querybuilder.ParamsFromValues(c.Request.URL.Query())
}

// respondError logs err and writes it using the domain error's status.
// Internal failures never expose their cause.
func respondError(ctx context.Context, c *gin.Context, msg string, err error) {
	status := apperrors.ToHTTPStatus(err)

	entry := logger.WarnWithContext(ctx, msg)
	if status >= http.StatusInternalServerError {
		entry = logger.ErrorWithContext(ctx, msg)
	}
	entry.Int("http_status", status).Err(err).Log()

	c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
}
