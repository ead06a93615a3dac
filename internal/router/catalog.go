package router

import (
	"github.com/gin-gonic/gin"
	"github.com/greenhouse-labs/catalog/internal/constants"
	"github.com/greenhouse-labs/catalog/internal/dto"
	"github.com/greenhouse-labs/catalog/internal/middleware"
)

func (r *Router) categoryRoutes(version *gin.RouterGroup) {
	categories := version.Group("/categories")
	{
		categories.GET("", r.handlers.Category.GetAll)
		categories.GET("/:id", r.handlers.Category.GetByID)

		admin := categories.Group("")
		admin.Use(r.jwtMw.RequireAuth(), middleware.RequireRole(constants.RoleAdmin))
		{
			admin.POST("", body[dto.CreateCategoryRequest](r.validMw), r.handlers.Category.Create)
			admin.PUT("/:id", body[dto.UpdateCategoryRequest](r.validMw), r.handlers.Category.Update)
			admin.DELETE("/:id", r.handlers.Category.Delete)
		}
	}
}

func (r *Router) plantRoutes(version *gin.RouterGroup) {
	plants := version.Group("/plants")
	{
		plants.GET("", r.handlers.Plant.GetAll)
		plants.GET("/:id", r.handlers.Plant.GetByID)

		admin := plants.Group("")
		admin.Use(r.jwtMw.RequireAuth(), middleware.RequireRole(constants.RoleAdmin))
		{
			admin.POST("", body[dto.CreatePlantRequest](r.validMw), r.handlers.Plant.Create)
			admin.PUT("/:id", body[dto.UpdatePlantRequest](r.validMw), r.handlers.Plant.Update)
			admin.DELETE("/:id", r.handlers.Plant.Delete)
		}
	}
}

func (r *Router) favoriteRoutes(version *gin.RouterGroup) {
	favorites := version.Group("/favorites")
	favorites.Use(r.jwtMw.RequireAuth())
	{
		favorites.GET("", r.handlers.Favorite.GetAll)
		favorites.POST("", body[dto.CreateFavoriteRequest](r.validMw), r.handlers.Favorite.Create)
		favorites.DELETE("/:id", r.handlers.Favorite.Delete)
	}
}
