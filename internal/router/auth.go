package router

import (
	"github.com/gin-gonic/gin"
	"github.com/greenhouse-labs/catalog/internal/dto"
)

func (r *Router) authRoutes(version *gin.RouterGroup) {
	auth := version.Group("/auth")
	{
		auth.POST("/login", body[dto.UserLoginRequest](r.validMw), r.handlers.Auth.Login)
		auth.POST("/refresh", body[dto.RefreshTokenRequest](r.validMw), r.handlers.Auth.RefreshToken)

		protected := auth.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.POST("/logout", r.handlers.Auth.Logout)
		}
	}
}
