// Package api wires the HTTP routes. The API is thin plumbing over
// the report engine: upload a dataset, run an analysis, download the
// export.
package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fleetops/fleet-analytics/internal/config"
	"github.com/fleetops/fleet-analytics/internal/dataset"
	"github.com/fleetops/fleet-analytics/internal/handler"
	"github.com/fleetops/fleet-analytics/internal/middleware"
	"github.com/fleetops/fleet-analytics/internal/service"
)

// SetupRouter builds the gin engine with all routes registered.
func SetupRouter(cfg *config.Config, log *logrus.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)

	r := gin.New()
	r.Use(middleware.Logger(log))
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	store := dataset.NewStore()
	datasets := service.NewDatasetService(store, log)
	reports := service.NewReportService(store, log)

	datasetHandler := handler.NewDatasetHandler(datasets)
	reportHandler := handler.NewReportHandler(reports)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Fleet Analytics API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		ds := api.Group("/datasets")
		{
			ds.POST("", datasetHandler.Upload)
			ds.GET("", datasetHandler.List)
			ds.DELETE("/:id", datasetHandler.Delete)

			ds.GET("/:id/reports", reportHandler.List)
			ds.GET("/:id/reports/:analysis", reportHandler.Run)
			ds.GET("/:id/reports/:analysis/export", reportHandler.Export)
		}
	}

	return r
}
