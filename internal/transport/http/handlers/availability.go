package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/you/facility-booking/internal/service"
)

type AvailabilityHandler struct {
	avail *service.AvailabilitySvc
	log   *zap.Logger
}

func NewAvailabilityHandler(avail *service.AvailabilitySvc, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{avail: avail, log: log}
}

// GET /v1/courts/:id/availability?date=2024-06-02&exclude_reservation=...
func (h *AvailabilityHandler) Day(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}
	opts := service.ResolveOpts{ExcludeResvID: c.Query("exclude_reservation")}
	if sub, ok := c.Get("sub"); ok {
		opts.ForUserID, _ = sub.(string)
	}

	// one "now" per request keeps the pipeline deterministic
	slots, err := h.avail.Day(c.Request.Context(), c.Param("id"), date, time.Now().UTC(), opts)
	if err != nil {
		h.log.Warn("resolve availability failed",
			zap.String("court_id", c.Param("id")),
			zap.String("date", date),
			zap.Error(err))
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}
