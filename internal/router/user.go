package router

import (
	"github.com/gin-gonic/gin"
	"github.com/greenhouse-labs/catalog/internal/constants"
	"github.com/greenhouse-labs/catalog/internal/dto"
	"github.com/greenhouse-labs/catalog/internal/middleware"
)

func (r *Router) userRoutes(version *gin.RouterGroup) {
	users := version.Group("/users")
	users.Use(r.jwtMw.RequireAuth())
	{
		admin := middleware.RequireRole(constants.RoleAdmin)

		users.GET("", admin, r.handlers.User.GetAll)
		users.POST("", admin, body[dto.CreateUserRequest](r.validMw), r.handlers.User.CreateUser)
		users.DELETE("/:id", admin, r.handlers.User.DeleteUser)

		// Self or admin; enforced by the service.
		users.GET("/:id", r.handlers.User.GetByID)
		users.PUT("/:id", body[dto.UpdateUserRequest](r.validMw), r.handlers.User.UpdateUser)
		users.PUT("/:id/password", body[dto.UpdatePasswordRequest](r.validMw), r.handlers.User.UpdatePassword)
	}
}
