package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelpro/services"
)

type PlanRequest struct {
	Destination string `json:"destination" binding:"required"`
	Days        int    `json:"days"`
	Tier        string `json:"tier"`
}

func (h *Handler) BuildItinerary(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	it, err := h.itineraries.Build(sess.Travelers, req.Destination, req.Days, req.Tier)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": it, "text": services.RenderItinerary(it)})
}

func (h *Handler) EstimateBudget(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	bd, err := services.EstimateBudget(sess.Travelers, req.Destination, req.Days, req.Tier)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": bd, "text": services.RenderBudget(bd)})
}
