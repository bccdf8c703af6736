package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/samsarastore/samsara/internal/api/v1"
	"github.com/samsarastore/samsara/internal/rest/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Health      *v1.HealthHandler
	Eligibility *v1.EligibilityHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.RequestContext())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Health)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	subscriptions := router.Group("/subscriptions")
	{
		subscriptions.GET("/:id/cancellation-eligibility", handlers.Eligibility.GetCancellationEligibility)
	}
}
