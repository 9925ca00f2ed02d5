package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelpro/services"
)

type AddTravelerRequest struct {
	Name string `json:"name" binding:"required"`
	Age  *int   `json:"age" binding:"required"`
}

func (h *Handler) CreateSession(c *gin.Context) {
	sess := h.sessions.Create()
	c.JSON(http.StatusCreated, gin.H{"session_id": sess.ID})
}

func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AddTraveler(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req AddTravelerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	t, err := sess.Travelers.Add(req.Name, *req.Age)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"traveler": t,
		"text":     "✅ " + t.Name + " registered as " + string(t.Category),
	})
}

func (h *Handler) ListTravelers(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	list := sess.Travelers.List()
	counts := sess.Travelers.CountByCategory()
	c.JSON(http.StatusOK, gin.H{
		"travelers": list,
		"counts":    sess.Travelers.Counts(),
		"text":      services.RenderTravelers(list, counts),
	})
}

func (h *Handler) ClearTravelers(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.Travelers.Clear()
	c.JSON(http.StatusOK, gin.H{"text": "🗑️ Traveler list cleared"})
}
