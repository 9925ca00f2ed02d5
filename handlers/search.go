package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelpro/services"
)

type FlightSearchRequest struct {
	Origin      string `json:"origin" binding:"required"`
	Destination string `json:"destination" binding:"required"`
	DepartDate  string `json:"depart_date" binding:"required"`
	ReturnDate  string `json:"return_date"`
}

func (h *Handler) SearchFlights(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req FlightSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.fares.Search(c.Request.Context(), sess.Travelers, services.FareRequest{
		Origin:      req.Origin,
		Destination: req.Destination,
		DepartDate:  req.DepartDate,
		ReturnDate:  req.ReturnDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": res, "text": services.RenderFares(res)})
}

func (h *Handler) Destination(c *gin.Context) {
	if h.destinations == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Destination lookup is not configured", "code": "unavailable"})
		return
	}

	lang := c.DefaultQuery("lang", h.defaultLang)
	brief, err := h.destinations.Describe(c.Request.Context(), c.Param("city"), lang)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": brief, "text": services.RenderDestination(brief)})
}

func (h *Handler) Seasons(c *gin.Context) {
	advisor := h.seasons
	if advisor == nil {
		advisor = services.NewSeasonalAdvisor(nil)
	}

	plan, err := advisor.Recommend(c.Request.Context(), c.Query("destination"), c.Query("month"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": plan, "text": services.RenderSeasonal(plan)})
}
