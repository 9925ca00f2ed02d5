package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(h *Handler, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	// Trusted proxies (deployments sit behind a proxy)
	r.SetTrustedProxies([]string{"0.0.0.0/0"})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/destinations/:city", h.Destination)
		api.GET("/seasons", h.Seasons)

		api.POST("/sessions", h.CreateSession)
		s := api.Group("/sessions/:id")
		{
			s.DELETE("", h.DeleteSession)
			s.POST("/travelers", h.AddTraveler)
			s.GET("/travelers", h.ListTravelers)
			s.DELETE("/travelers", h.ClearTravelers)
			s.POST("/flights", h.SearchFlights)
			s.POST("/itinerary", h.BuildItinerary)
			s.POST("/budget", h.EstimateBudget)
			s.POST("/plan.pdf", h.DownloadPlan)
		}
	}
	return r
}
