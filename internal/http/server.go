// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Loganocm/Parlor/internal/http/handlers"
	"github.com/Loganocm/Parlor/internal/http/middleware"
	"github.com/Loganocm/Parlor/internal/maps"
	"github.com/Loganocm/Parlor/internal/modules/recommend"
)

const apiVersion = "1.0.0"

type ServerDeps struct {
	Recommend   *recommend.Service
	Places      *maps.PlacesService
	CORSOrigins []string
	Environment string
	Logger      *zap.Logger
}

type Server struct {
	recommend   *recommend.Service
	places      *maps.PlacesService
	corsOrigins []string
	environment string
	logger      *zap.Logger
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		recommend:   deps.Recommend,
		places:      deps.Places,
		corsOrigins: deps.CORSOrigins,
		environment: deps.Environment,
		logger:      deps.Logger,
	}
}

func (s *Server) Routes() http.Handler {
	if s.environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.Logging(s.logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Parlor Pizza Recommendation API",
			"version": apiVersion,
			"status":  "operational",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	placesHandler := handlers.NewPlacesHandler(s.places)
	r.GET("/api/media/*resourceName", placesHandler.Media)
	r.GET("/api/places/autocomplete", placesHandler.Autocomplete)
	r.GET("/api/places/details/:placeId", placesHandler.Details)
	r.POST("/api/geocode", placesHandler.Geocode)

	recHandler := handlers.NewRecommendationHandler(s.recommend)
	r.POST("/api/pizza-recommendations", recHandler.Recommendations)
	r.GET("/api/restaurants/:id/summary", recHandler.Summary)

	return r
}
