package http

import (
	"errors"
	"net/http"

	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
	"github.com/clinicdesk/slot-booking-service/internal/core/ports/out"
	"github.com/gin-gonic/gin"
)

const (
	codeMalformedRequest = "MalformedRequest"
	codeTooManyRequests  = "TooManyRequests"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrSlotAlreadyBooked):
		return http.StatusConflict
	case errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrUnknownSlot):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (c *BookingController) writeError(ctx *gin.Context, err error) {
	status, body := c.errorResponse(ctx, err)
	ctx.JSON(status, body)
}

func (c *BookingController) abortWithError(ctx *gin.Context, err error) {
	status, body := c.errorResponse(ctx, err)
	ctx.AbortWithStatusJSON(status, body)
}

func (c *BookingController) errorResponse(ctx *gin.Context, err error) (int, ErrorResponse) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		c.logger.Error("http.request.failed", out.LogFields{
			"path":  ctx.FullPath(),
			"error": err.Error(),
		})
		// Внутренние подробности наружу не отдаем
		return status, ErrorResponse{Error: "internal error", Code: domain.ErrorCode(err)}
	}

	return status, ErrorResponse{Error: err.Error(), Code: domain.ErrorCode(err)}
}
