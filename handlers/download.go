package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelpro/services"
)

type DownloadRequest struct {
	PlanRequest
	TravelerName string `json:"traveler_name"`
}

func (h *Handler) DownloadPlan(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	it, err := h.itineraries.Build(sess.Travelers, req.Destination, req.Days, req.Tier)
	if err != nil {
		writeError(c, err)
		return
	}
	bd, err := services.EstimateBudget(sess.Travelers, req.Destination, req.Days, req.Tier)
	if err != nil {
		writeError(c, err)
		return
	}

	pdfBytes, err := services.GeneratePlanPDF(services.PlanData{
		PreparedFor: req.TravelerName,
		Travelers:   sess.Travelers.List(),
		Itinerary:   it,
		Budget:      bd,
	})
	if err != nil {
		log.Printf("❌ PDF generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF", "code": "internal"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=travelpro-plan.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "Travel Pro API",
		"sessions": h.sessions.Len(),
	})
}
