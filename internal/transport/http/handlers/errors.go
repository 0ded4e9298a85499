package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/facility-booking/internal/domain"
)

// fail maps domain errors to HTTP responses. Conflicts get the actionable
// message; unexpected storage errors stay generic.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "this slot was just booked, please choose another"})
	case errors.Is(err, domain.ErrCourtNotFound), errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrBadTransition),
		errors.Is(err, domain.ErrBadCheckInCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "temporary failure, please try again later"})
	}
}
