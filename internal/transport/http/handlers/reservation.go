package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/you/facility-booking/internal/domain"
	"github.com/you/facility-booking/internal/service"
)

type ReservationHandler struct {
	resv  *service.ReservationSvc
	avail *service.AvailabilitySvc
	log   *zap.Logger
}

func NewReservationHandler(resv *service.ReservationSvc, avail *service.AvailabilitySvc, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{resv: resv, avail: avail, log: log}
}

// POST /v1/reservations
// Either points at a grid slot (timeslot_id) or supplies the free-form
// court/date/start/end picked in the resident flow, which is materialized
// find-or-create before commit.
func (h *ReservationHandler) Create(c *gin.Context) {
	var in struct {
		TimeslotID string `json:"timeslot_id"`
		CourtID    string `json:"court_id"`
		Date       string `json:"date"`  // YYYY-MM-DD
		Start      string `json:"start"` // HH:mm
		End        string `json:"end"`   // HH:mm
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sub, _ := c.Get("sub")
	userID, _ := sub.(string)

	timeslotID := in.TimeslotID
	if timeslotID == "" {
		if in.CourtID == "" || in.Date == "" || in.Start == "" || in.End == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "timeslot_id or court_id/date/start/end required"})
			return
		}
		slot, err := h.avail.EnsureSlot(c.Request.Context(), in.CourtID, in.Date, in.Start, in.End)
		if err != nil {
			fail(c, err)
			return
		}
		timeslotID = slot.ID
	}

	res, err := h.resv.Commit(c.Request.Context(), timeslotID, userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /v1/reservations/:id
func (h *ReservationHandler) Get(c *gin.Context) {
	res, err := h.resv.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /v1/reservations?page=1&page_size=20&user_id=...&court_id=...&date=YYYY-MM-DD
func (h *ReservationHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	out, total, err := h.resv.List(c.Request.Context(), int32(page-1), int32(size),
		c.Query("user_id"), c.Query("court_id"), c.Query("date"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": out, "total": total})
}

// POST /v1/reservations/:id/confirm (OWNER/ADMIN)
func (h *ReservationHandler) Confirm(c *gin.Context) {
	h.transition(c, domain.StatusConfirmed)
}

// POST /v1/reservations/:id/cancel
func (h *ReservationHandler) Cancel(c *gin.Context) {
	h.transition(c, domain.StatusCancelled)
}

// POST /v1/reservations/:id/complete (OWNER/ADMIN)
func (h *ReservationHandler) Complete(c *gin.Context) {
	h.transition(c, domain.StatusCompleted)
}

// POST /v1/reservations/:id/no-show (OWNER/ADMIN)
func (h *ReservationHandler) NoShow(c *gin.Context) {
	h.transition(c, domain.StatusNoShow)
}

// POST /v1/reservations/:id/check-in {"code": "..."}
func (h *ReservationHandler) CheckIn(c *gin.Context) {
	var in struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.resv.CheckIn(c.Request.Context(), c.Param("id"), in.Code)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReservationHandler) transition(c *gin.Context, to domain.Status) {
	res, err := h.resv.Transition(c.Request.Context(), c.Param("id"), to)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
