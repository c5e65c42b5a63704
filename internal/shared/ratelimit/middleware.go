package ratelimit

import (
	"fmt"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	sharedModel "github.com/iots1/contacts-api/internal/shared/models"
	"github.com/iots1/contacts-api/internal/shared/utils"
)

// KeyFunc derives the rate-limit identity for a request. Typical keys are
// the authenticated user id or the client IP.
type KeyFunc func(c *fiber.Ctx) string

// KeyByIP keys the limit on the client IP address.
func KeyByIP(c *fiber.Ctx) string {
	return c.IP()
}

// KeyByUser keys the limit on the authenticated user id stored in Locals,
// falling back to the client IP for anonymous requests.
func KeyByUser(c *fiber.Ctx) string {
	if id, ok := c.Locals("userID").(int64); ok {
		return fmt.Sprintf("uid:%d", id)
	}
	return c.IP()
}

// NewMiddleware returns a Fiber handler that limits each identity to max
// requests per window on the wrapped route. Exceeding the limit yields 429
// with a Retry-After header. Redis outages fail open: a broken limiter must
// not take the API down with it.
func NewMiddleware(limiter *Limiter, route string, max int, window time.Duration, keyFn KeyFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("%s:%s", route, keyFn(c))

		ok, retryAfter, err := limiter.Allow(c.Context(), key, max, window)
		if err != nil {
			utils.Logger.Warn("Rate limiter unavailable, allowing request",
				zap.String("route", route), zap.Error(err))
			return c.Next()
		}
		if !ok {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", seconds))
			utils.Logger.Warn("Request rate limited",
				zap.String("route", route), zap.String("key", key))
			return c.Status(fiber.StatusTooManyRequests).JSON(sharedModel.CommonErrorResponse{
				Success:   false,
				Timestamp: time.Now().UTC(),
				Message:   "Too many requests",
				Code:      fiber.StatusTooManyRequests * 1000,
				Method:    c.Method(),
				Path:      c.Path(),
			})
		}
		return c.Next()
	}
}
