// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/seoulbrew/sitescope/internal/api/handlers"
	"github.com/seoulbrew/sitescope/internal/api/middleware"
	"github.com/seoulbrew/sitescope/internal/service"
)

type Services struct {
	DongService      *service.DongService
	BrandService     *service.BrandService
	RecommendService *service.RecommendService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.DongService != nil {
			dongHandler := handlers.NewDongHandler(services.DongService)
			dongGroup := apiGroup.Group("/dongs")
			{
				dongGroup.GET("", dongHandler.ListDongs)
				dongGroup.GET("/vitality", dongHandler.GetVitalityDistribution)
				dongGroup.GET("/:code", dongHandler.GetDong)
			}
			apiGroup.GET("/map/points", dongHandler.GetMapPoints)
		}

		if services.BrandService != nil {
			brandHandler := handlers.NewBrandHandler(services.BrandService)
			brandGroup := apiGroup.Group("/brands")
			{
				brandGroup.GET("", brandHandler.ListBrands)
				brandGroup.GET("/profiles", brandHandler.ListProfiles)
				brandGroup.GET("/:brand/profile", brandHandler.GetProfile)
			}
		}

		if services.RecommendService != nil {
			recommendHandler := handlers.NewRecommendHandler(services.RecommendService)
			apiGroup.GET("/recommendations", recommendHandler.GetRecommendations)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
