package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/clinicdesk/slot-booking-service/internal/config"
	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
	"github.com/clinicdesk/slot-booking-service/internal/core/ports/in"
	"github.com/clinicdesk/slot-booking-service/internal/core/ports/out"
	"github.com/gin-gonic/gin"
)

type BookingController struct {
	useCase     in.BookingUseCase
	authUseCase in.AdminAuthUseCase
	cfg         *config.Config
	logger      out.LoggerPort
	limiter     *ipRateLimiter
}

func NewBookingController(useCase in.BookingUseCase, authUseCase in.AdminAuthUseCase, cfg *config.Config, logger out.LoggerPort) *BookingController {
	return &BookingController{
		useCase:     useCase,
		authUseCase: authUseCase,
		cfg:         cfg,
		logger:      logger,
		limiter:     newIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.MaxClients),
	}
}

func (c *BookingController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", c.health)

	api := router.Group("/api/v1")
	{
		api.GET("/appointment-types", c.appointmentTypes)
		api.GET("/slots", c.getSlots)
		api.POST("/bookings", c.rateLimit(), c.admitBooking)
		api.POST("/admin/login", c.rateLimit(), c.adminLogin)
	}

	admin := api.Group("")
	admin.Use(c.adminAuth())
	{
		admin.GET("/bookings", c.listBookings)
	}
}

type BookingResponse struct {
	Booking *domain.Booking `json:"booking"`
	Message string          `json:"message"`
}

type SlotsDebugResponse struct {
	Slots []domain.Slot      `json:"slots"`
	Debug []domain.DebugInfo `json:"debug"`
}

func (c *BookingController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (c *BookingController) appointmentTypes(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.useCase.AppointmentTypes())
}

func (c *BookingController) getSlots(ctx *gin.Context) {
	durationMinutes, err := strconv.Atoi(ctx.Query("duration"))
	if err != nil {
		c.writeError(ctx, fmt.Errorf("%w: %q", domain.ErrInvalidDuration, ctx.Query("duration")))
		return
	}

	slots, debugInfo, err := c.useCase.GetSlots(ctx.Request.Context(), ctx.Query("date"), durationMinutes)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	if ctx.Query("debug") == "true" {
		ctx.JSON(http.StatusOK, SlotsDebugResponse{Slots: slots, Debug: debugInfo})
		return
	}

	ctx.JSON(http.StatusOK, slots)
}

func (c *BookingController) admitBooking(ctx *gin.Context) {
	var candidate domain.BookingCandidate
	if err := ctx.ShouldBindJSON(&candidate); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeMalformedRequest})
		return
	}

	booking, err := c.useCase.AdmitBooking(ctx.Request.Context(), candidate)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, BookingResponse{
		Booking: booking,
		Message: fmt.Sprintf("Appointment booked for %s on %s at %s", booking.PatientName, booking.Date, booking.SlotLabel),
	})
}

func (c *BookingController) listBookings(ctx *gin.Context) {
	bookings, err := c.useCase.ListBookings(ctx.Request.Context(), ctx.Query("date"))
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, bookings)
}
