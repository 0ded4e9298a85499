package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/facility-booking/internal/domain"
	"github.com/you/facility-booking/internal/service"
)

type CourtHandler struct {
	courts *service.CourtSvc
}

func NewCourtHandler(courts *service.CourtSvc) *CourtHandler {
	return &CourtHandler{courts: courts}
}

type courtPayload struct {
	Name                string `json:"name" binding:"required"`
	Venue               string `json:"venue"`
	OpenFrom            string `json:"open_from" binding:"required"` // HH:mm
	OpenTo              string `json:"open_to" binding:"required"`   // HH:mm
	SlotDurationMinutes int32  `json:"slot_duration_minutes"`
	BookingWindowDays   int32  `json:"booking_window_days"`
	BookingRolling      bool   `json:"booking_rolling"`
	OnePerUserPerDay    bool   `json:"one_per_user_per_day"`
}

// POST /v1/courts (OWNER/ADMIN)
func (h *CourtHandler) Create(c *gin.Context) {
	var in courtPayload
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sub, _ := c.Get("sub")
	ownerID, _ := sub.(string)
	court, err := h.courts.Create(c.Request.Context(), domain.Court{
		Name:                in.Name,
		Venue:               in.Venue,
		OpenFrom:            in.OpenFrom,
		OpenTo:              in.OpenTo,
		SlotDurationMinutes: in.SlotDurationMinutes,
		BookingWindowDays:   in.BookingWindowDays,
		BookingRolling:      in.BookingRolling,
		OnePerUserPerDay:    in.OnePerUserPerDay,
		OwnerID:             ownerID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, court)
}

// GET /v1/courts/:id
func (h *CourtHandler) Get(c *gin.Context) {
	court, err := h.courts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, court)
}

// GET /v1/courts?page=1&page_size=20&venue=...
func (h *CourtHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	out, err := h.courts.List(c.Request.Context(), int32(page-1), int32(size), c.Query("venue"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courts": out})
}

// PUT /v1/courts/:id (OWNER/ADMIN)
func (h *CourtHandler) Update(c *gin.Context) {
	var in courtPayload
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	court, err := h.courts.Update(c.Request.Context(), domain.Court{
		ID:                  c.Param("id"),
		Name:                in.Name,
		Venue:               in.Venue,
		OpenFrom:            in.OpenFrom,
		OpenTo:              in.OpenTo,
		SlotDurationMinutes: in.SlotDurationMinutes,
		BookingWindowDays:   in.BookingWindowDays,
		BookingRolling:      in.BookingRolling,
		OnePerUserPerDay:    in.OnePerUserPerDay,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, court)
}

// DELETE /v1/courts/:id (ADMIN)
func (h *CourtHandler) Delete(c *gin.Context) {
	if err := h.courts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /v1/courts/:id/blocks (OWNER/ADMIN)
func (h *CourtHandler) AddOneOffBlock(c *gin.Context) {
	var in struct {
		Date   string `json:"date" binding:"required"` // YYYY-MM-DD
		Start  string `json:"start"`                   // HH:mm, empty = whole day
		End    string `json:"end"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.courts.AddOneOffBlock(c.Request.Context(), c.Param("id"), in.Date, in.Start, in.End, in.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GET /v1/courts/:id/blocks
func (h *CourtHandler) ListOneOffBlocks(c *gin.Context) {
	out, err := h.courts.ListOneOffBlocks(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocks": out})
}

// DELETE /v1/blocks/:id (OWNER/ADMIN)
func (h *CourtHandler) RemoveOneOffBlock(c *gin.Context) {
	if err := h.courts.RemoveOneOffBlock(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /v1/courts/:id/weekly-blocks (OWNER/ADMIN)
func (h *CourtHandler) AddRecurringBlock(c *gin.Context) {
	var in struct {
		DayOfWeek *int32 `json:"day_of_week" binding:"required"` // 0=Sunday..6=Saturday
		Start     string `json:"start" binding:"required"`       // HH:mm
		End       string `json:"end" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.courts.AddRecurringBlock(c.Request.Context(), c.Param("id"), *in.DayOfWeek, in.Start, in.End)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GET /v1/courts/:id/weekly-blocks
func (h *CourtHandler) ListRecurringBlocks(c *gin.Context) {
	out, err := h.courts.ListRecurringBlocks(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocks": out})
}

// PATCH /v1/weekly-blocks/:id (OWNER/ADMIN)
func (h *CourtHandler) SetRecurringBlockActive(c *gin.Context) {
	var in struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.courts.SetRecurringBlockActive(c.Request.Context(), c.Param("id"), *in.Active); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
