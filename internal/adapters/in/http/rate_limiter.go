package http

import (
	"net/http"
	"sync"

	"github.com/clinicdesk/slot-booking-service/internal/core/ports/out"
	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// Сколько клиентов помним одновременно, давно неактивные вытесняются
const defaultRateLimitClients = 10000

type ipRateLimiter struct {
	// Защищает связку Get+Add, сам lru.Cache потокобезопасен
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
	rps      rate.Limit
	burst    int
}

func newIPRateLimiter(rps float64, burst, maxClients int) *ipRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	if maxClients <= 0 {
		maxClients = defaultRateLimitClients
	}

	// Ошибку lru.New возвращает только для неположительного размера
	limiters, _ := lru.New[string, *rate.Limiter](maxClients)

	return &ipRateLimiter{
		limiters: limiters,
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

// allow при rps <= 0 ограничение отключено
func (l *ipRateLimiter) allow(ip string) bool {
	if l.rps <= 0 {
		return true
	}

	l.mu.Lock()
	limiter, exists := l.limiters.Get(ip)
	if !exists {
		limiter = rate.NewLimiter(l.rps, l.burst)
		l.limiters.Add(ip, limiter)
	}
	l.mu.Unlock()

	return limiter.Allow()
}

func (c *BookingController) rateLimit() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !c.limiter.allow(ctx.ClientIP()) {
			c.logger.Warn("http.rate_limit.exceeded", out.LogFields{
				"ip":   ctx.ClientIP(),
				"path": ctx.FullPath(),
			})
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error: "too many requests",
				Code:  codeTooManyRequests,
			})
			return
		}

		ctx.Next()
	}
}
