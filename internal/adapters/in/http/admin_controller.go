package http

import (
	"net/http"
	"strings"

	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
	"github.com/clinicdesk/slot-booking-service/internal/core/ports/out"
	"github.com/gin-gonic/gin"
)

const adminClaimsKey = "adminClaims"

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (c *BookingController) adminLogin(ctx *gin.Context) {
	var req AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeMalformedRequest})
		return
	}

	token, err := c.authUseCase.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, token)
}

// adminAuth пропускает только запросы с действующим токеном администратора
func (c *BookingController) adminAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			ctx.Header("WWW-Authenticate", "Bearer")
			c.abortWithError(ctx, domain.ErrInvalidCredentials)
			return
		}

		claims, err := c.authUseCase.Verify(token)
		if err != nil {
			c.logger.Warn("http.admin.unauthorized", out.LogFields{
				"path":  ctx.FullPath(),
				"error": err.Error(),
			})
			ctx.Header("WWW-Authenticate", "Bearer")
			c.abortWithError(ctx, domain.ErrInvalidCredentials)
			return
		}

		ctx.Set(adminClaimsKey, claims)
		ctx.Next()
	}
}
