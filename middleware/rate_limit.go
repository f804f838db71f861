package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func RateLimitMiddleware() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: time.Minute,
		Limit:  120,
	}

	// In-memory store for rate limiting (consider external store for production)
	store := memory.NewStore()

	instance := limiter.New(store, rate)

	return ginlimiter.NewMiddleware(instance)
}
