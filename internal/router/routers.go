package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/greenhouse-labs/catalog/config"
	"github.com/greenhouse-labs/catalog/internal/constants"
	"github.com/greenhouse-labs/catalog/internal/handler"
	"github.com/greenhouse-labs/catalog/internal/middleware"
	"github.com/greenhouse-labs/catalog/pkg/metrics"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	User     *handler.UserHandler
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Plant    *handler.PlantHandler
	Favorite *handler.FavoriteHandler
	Health   *handler.HealthHandler
}

type Router struct {
	handlers Handlers

	validMw *middleware.ValidationMiddleware
	jwtMw   *middleware.JWTMiddleware
	metrics metrics.MetricsStore
	Config  *config.Config
}

func NewRouter(
	handlers Handlers,
	validMw *middleware.ValidationMiddleware,
	jwtMw *middleware.JWTMiddleware,
	metricsStore metrics.MetricsStore,
	config *config.Config,
) *Router {
	return &Router{
		handlers: handlers,
		validMw:  validMw,
		jwtMw:    jwtMw,
		metrics:  metricsStore,
		Config:   config,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestContext())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics(r.metrics))
	router.Use(middleware.CORS(r.Config.App.CORSOrigins))
	router.Use(middleware.RequestTimeout(r.Config.App.Timeout))

	if r.metrics != nil {
		router.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}

	api := router.Group("/api")
	{
		api.GET("/health", r.handlers.Health.HealthCheck)
		api.GET("/health/live", r.handlers.Health.BasicHealth)

		v1 := api.Group("/v1")
		{
			window := time.Duration(r.Config.RateLimit.Duration) * time.Second
			v1.Use(middleware.RateLimit(r.Config.RateLimit.Request, window))

			r.authRoutes(v1)
			r.userRoutes(v1)
			r.categoryRoutes(v1)
			r.plantRoutes(v1)
			r.favoriteRoutes(v1)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, constants.BuildErrorResponse(constants.MsgRouteNotFound, nil))
	})

	return router
}

// body returns the validation middleware for a request DTO type.
func body[T any](mw *middleware.ValidationMiddleware) gin.HandlerFunc {
	return mw.ValidateRequestBody(func() interface{} { return new(T) })
}
