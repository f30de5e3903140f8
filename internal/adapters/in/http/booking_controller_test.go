package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clinicdesk/slot-booking-service/internal/adapters/out/logger"
	"github.com/clinicdesk/slot-booking-service/internal/adapters/out/memory"
	"github.com/clinicdesk/slot-booking-service/internal/config"
	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
	"github.com/clinicdesk/slot-booking-service/internal/core/services/admin_auth_service"
	"github.com/clinicdesk/slot-booking-service/internal/core/services/booking_service"
	"github.com/clinicdesk/slot-booking-service/internal/core/services/slot_generator_service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestRouter(t *testing.T, mutate func(cfg *config.Config)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Auth.Admins = []config.ConfigAdmin{{Username: "admin", PasswordHash: string(hash)}}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour
	cfg.RateLimit.RPS = 100
	cfg.RateLimit.Burst = 100
	if mutate != nil {
		mutate(cfg)
	}

	log := logger.NewNopLogger()
	service := booking_service.NewBookingService(
		slot_generator_service.NewGenerator(domain.DefaultOperatingWindow, config.MatchModeLabel),
		memory.NewBookingStore(log),
		nil,
		nil,
		log,
		time.UTC,
	)

	router := gin.New()
	NewBookingController(service, admin_auth_service.NewAdminAuthService(cfg, log), cfg, log).RegisterRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func validCandidate() map[string]interface{} {
	return map[string]interface{}{
		"patientName": "Jane Roe",
		"contact":     "jane@example.com",
		"date":        "2024-06-10",
		"slotLabel":   "10:00 - 10:30",
	}
}

func TestHealth(t *testing.T) {
	w := doRequest(newTestRouter(t, nil), http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAppointmentTypes(t *testing.T) {
	w := doRequest(newTestRouter(t, nil), http.MethodGet, "/api/v1/appointment-types", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var types []domain.AppointmentType
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &types))
	assert.Equal(t, domain.AppointmentTypes, types)
}

func TestGetSlots(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/slots?date=2024-06-10&duration=60", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var slots []domain.Slot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &slots))
	require.Len(t, slots, 10)
	assert.Equal(t, "09:30 - 10:30", slots[0].Label)
	assert.False(t, slots[0].Booked)

	w = doRequest(router, http.MethodGet, "/api/v1/slots?date=2024-06-10&duration=30&debug=true", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var debugResp SlotsDebugResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &debugResp))
	assert.Len(t, debugResp.Slots, 21)
	assert.NotEmpty(t, debugResp.Debug)
}

func TestGetSlots_BadRequest(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name  string
		query string
		code  string
	}{
		{name: "bad date", query: "date=10.06.2024&duration=30", code: "InvalidDate"},
		{name: "missing date", query: "duration=30", code: "InvalidDate"},
		{name: "unknown duration", query: "date=2024-06-10&duration=45", code: "InvalidDuration"},
		{name: "non numeric duration", query: "date=2024-06-10&duration=long", code: "InvalidDuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, "/api/v1/slots?"+tt.query, nil, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Code)
		})
	}
}

func TestAdmitBooking(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/bookings", validCandidate(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Booking domain.Booking `json:"booking"`
		Message string         `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Appointment booked for Jane Roe on 2024-06-10 at 10:00 - 10:30", resp.Message)
	assert.Equal(t, 30, resp.Booking.DurationMinutes)

	w = doRequest(router, http.MethodPost, "/api/v1/bookings", validCandidate(), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SlotAlreadyBooked", decodeError(t, w).Code)

	w = doRequest(router, http.MethodGet, "/api/v1/slots?date=2024-06-10&duration=30", nil, nil)
	var slots []domain.Slot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &slots))
	assert.True(t, slots[1].Booked)
}

func TestAdmitBooking_BadRequest(t *testing.T) {
	router := newTestRouter(t, nil)

	missing := validCandidate()
	missing["patientName"] = "   "
	w := doRequest(router, http.MethodPost, "/api/v1/bookings", missing, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MissingField", decodeError(t, w).Code)

	unknown := validCandidate()
	unknown["slotLabel"] = "10:15 - 10:45"
	w = doRequest(router, http.MethodPost, "/api/v1/bookings", unknown, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UnknownSlot", decodeError(t, w).Code)

	w = doRequest(router, http.MethodPost, "/api/v1/bookings", "not an object", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, codeMalformedRequest, decodeError(t, w).Code)
}

func TestAdmitBooking_RateLimited(t *testing.T) {
	router := newTestRouter(t, func(cfg *config.Config) {
		cfg.RateLimit.RPS = 0.001
		cfg.RateLimit.Burst = 1
	})

	w := doRequest(router, http.MethodPost, "/api/v1/bookings", validCandidate(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/bookings", validCandidate(), nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, codeTooManyRequests, decodeError(t, w).Code)
}

func TestAdminBookings(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/bookings", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/admin/login", map[string]string{"username": "admin", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "InvalidCredentials", decodeError(t, w).Code)

	w = doRequest(router, http.MethodPost, "/api/v1/admin/login", map[string]string{"username": "admin", "password": "s3cret"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var token struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	require.NotEmpty(t, token.Token)
	auth := map[string]string{"Authorization": "Bearer " + token.Token}

	second := validCandidate()
	second["date"] = "2024-06-11"
	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/v1/bookings", validCandidate(), nil).Code)
	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/v1/bookings", second, nil).Code)

	w = doRequest(router, http.MethodGet, "/api/v1/bookings", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	var bookings []domain.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookings))
	assert.Len(t, bookings, 2)

	w = doRequest(router, http.MethodGet, "/api/v1/bookings?date=2024-06-11", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookings))
	require.Len(t, bookings, 1)
	assert.Equal(t, "2024-06-11", bookings[0].Date.String())

	w = doRequest(router, http.MethodGet, "/api/v1/bookings", nil, map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
