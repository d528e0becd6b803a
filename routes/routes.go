package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/goldjoker92/vigiApp-sub000/config"
	"github.com/goldjoker92/vigiApp-sub000/dedup"
	"github.com/goldjoker92/vigiApp-sub000/geoquery"
	"github.com/goldjoker92/vigiApp-sub000/handlers"
)

func SetupRouter(cfg *config.Config, dedupSvc *dedup.Service, querySvc *geoquery.Service) *gin.Engine {
	r := gin.Default()

	r.GET("/health", handlers.Health)

	// api routes
	api := r.Group("/api/vigi")
	{
		api.POST("/reports", func(c *gin.Context) {
			handlers.SubmitReport(c, dedupSvc)
		})
		api.GET("/footprints", func(c *gin.Context) {
			handlers.QueryFootprints(c, querySvc, cfg.Server.APIKey, cfg.Query.RequestTimeout)
		})
	}

	return r
}
