package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelpro/services"
	"travelpro/sessions"
)

type Handler struct {
	sessions     *sessions.Store
	fares        *services.FareEstimator
	destinations *services.DestinationAggregator
	seasons      *services.SeasonalAdvisor
	itineraries  *services.ItineraryBuilder
	defaultLang  string
}

type Deps struct {
	Sessions     *sessions.Store
	Fares        *services.FareEstimator
	Destinations *services.DestinationAggregator
	Seasons      *services.SeasonalAdvisor
	Itineraries  *services.ItineraryBuilder
	Language     string
}

func New(d Deps) *Handler {
	if d.Sessions == nil {
		d.Sessions = sessions.NewStore()
	}
	if d.Itineraries == nil {
		d.Itineraries = services.NewItineraryBuilder(nil)
	}
	if d.Fares == nil {
		d.Fares = services.NewFareEstimator(nil, nil)
	}
	if d.Language == "" {
		d.Language = "es"
	}
	return &Handler{
		sessions:     d.Sessions,
		fares:        d.Fares,
		destinations: d.Destinations,
		seasons:      d.Seasons,
		itineraries:  d.Itineraries,
		defaultLang:  d.Language,
	}
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func (h *Handler) session(c *gin.Context) (*sessions.Session, bool) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return sess, true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error(), "code": "invalid_input"})
}

// writeError maps domain errors onto HTTP responses.
func writeError(c *gin.Context, err error) {
	var (
		dateErr services.DateError
		cityErr services.UnknownCityError
	)

	switch {
	case errors.As(err, &dateErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":          err.Error(),
			"code":           string(dateErr.Kind),
			"suggested_date": dateErr.Suggested,
		})
	case errors.As(err, &cityErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":            err.Error(),
			"code":             "unknown_city",
			"unknown":          cityErr.Names,
			"supported_cities": cityErr.Supported,
		})
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_input"})
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "not_found"})
	default:
		log.Printf("❌ Unexpected error on %s: %v", c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error", "code": "internal"})
	}
}
