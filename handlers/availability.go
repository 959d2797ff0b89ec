package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shutterhub/models"
)

// GetAvailabilityHandler returns the blocked intervals on a resource within
// the requested window (?from=&to=, RFC 3339).
func (h *BookingHandler) GetAvailabilityHandler(c *gin.Context) {
	resourceID := c.Param("id")

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'from' timestamp", "details": err.Error()})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'to' timestamp", "details": err.Error()})
		return
	}

	blocked, err := h.Service.QueryAvailability(c.Request.Context(), resourceID, models.Interval{Start: from.UTC(), End: to.UTC()})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"resource_id": resourceID,
		"blocked":     blocked,
	})
}
