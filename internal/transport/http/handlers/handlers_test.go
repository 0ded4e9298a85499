package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/facility-booking/internal/domain"
	"github.com/you/facility-booking/internal/repository"
	"github.com/you/facility-booking/internal/service"
	"github.com/you/facility-booking/internal/transport/http/middlewares"
	"github.com/you/facility-booking/pkg/auth"
)

type nopPublisher struct{}

func (nopPublisher) PublishJSON(context.Context, string, any) error { return nil }

func newTestRouter(t *testing.T, mods ...func(*domain.Court)) (*gin.Engine, *domain.Court) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "handlers-test-secret")

	dsn := filepath.Join(t.TempDir(), "api.db") + "?_busy_timeout=5000"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	courtRepo := repository.NewCourtRepo(gdb)
	slotRepo := repository.NewTimeslotRepo(gdb)
	blockRepo := repository.NewBlockRepo(gdb)
	resvRepo := repository.NewReservationRepo(gdb)
	require.NoError(t, courtRepo.Migrate())
	require.NoError(t, slotRepo.Migrate())
	require.NoError(t, blockRepo.Migrate())
	require.NoError(t, resvRepo.Migrate())

	log := zap.NewNop()
	availSvc := service.NewAvailabilitySvc(courtRepo, slotRepo, blockRepo, resvRepo, log)
	resvSvc := service.NewReservationSvc(resvRepo, slotRepo, nopPublisher{}, log)

	court := &domain.Court{
		Name: "Court A", OpenFrom: "09:00", OpenTo: "11:00",
		SlotDurationMinutes: 60, BookingWindowDays: 30,
	}
	for _, mod := range mods {
		mod(court)
	}
	require.NoError(t, courtRepo.Create(context.Background(), court))

	ah := NewAvailabilityHandler(availSvc, log)
	rh := NewReservationHandler(resvSvc, availSvc, log)

	// routes carry the same middleware as the server entrypoint
	r := gin.New()
	r.GET("/v1/courts/:id/availability", middlewares.OptionalJWTAuth(), ah.Day)
	secured := r.Group("", middlewares.JWTAuth())
	secured.POST("/v1/reservations", rh.Create)
	return r, court
}

func bearer(t *testing.T, sub string) string {
	t.Helper()
	tok, err := auth.CreateAccessToken(sub, "USER", time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestAvailabilityEndpoint(t *testing.T) {
	r, court := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/courts/"+court.ID+"/availability?date="+todayUTC(), nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Date  string                 `json:"date"`
		Slots []domain.AvailableSlot `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Slots, 2) // 09:00-10:00, 10:00-11:00
	for _, s := range body.Slots {
		assert.True(t, s.Bookable)
	}
}

func TestAvailabilityEndpointRequiresDate(t *testing.T) {
	r, court := newTestRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/courts/"+court.ID+"/availability", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReservationConflictOverHTTP(t *testing.T) {
	r, court := newTestRouter(t)
	payload := `{"court_id":"` + court.ID + `","date":"` + todayUTC() + `","start":"09:00","end":"10:00"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/reservations", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, "user-1"))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/v1/reservations", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, "user-2"))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "just booked")
}

func TestAvailabilityAppliesPerUserDayCap(t *testing.T) {
	r, court := newTestRouter(t, func(c *domain.Court) { c.OnePerUserPerDay = true })
	date := todayUTC()

	payload := `{"court_id":"` + court.ID + `","date":"` + date + `","start":"09:00","end":"10:00"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/reservations", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, "user-1"))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// the booked user sees nothing else that day
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/courts/"+court.ID+"/availability?date="+date, nil)
	req.Header.Set("Authorization", bearer(t, "user-1"))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Slots []domain.AvailableSlot `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Slots)

	// anonymous callers still see the day, the booking annotated
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/courts/"+court.ID+"/availability?date="+date, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Slots, 2)
	bookable := 0
	for _, s := range body.Slots {
		if s.Bookable {
			bookable++
		}
	}
	assert.Equal(t, 1, bookable)
}

func todayUTC() string {
	return time.Now().UTC().Format(domain.DateLayout)
}
