package middleware

import (
	"time"

	"github.com/fadilmartias/pitch-evaluator/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// LimitConfig bounds how often one client may hit the routes it guards.
type LimitConfig struct {
	Max     int
	Window  time.Duration
	Message string
	// PerPath counts each route separately instead of per client only.
	PerPath bool
}

// RateLimiter is the global per-client limit.
func RateLimiter(max int, expiration time.Duration) fiber.Handler {
	return Limit(LimitConfig{Max: max, Window: expiration})
}

func Limit(cfg LimitConfig) fiber.Handler {
	if cfg.Max == 0 {
		cfg.Max = 50
	}
	if cfg.Window == 0 {
		cfg.Window = 1 * time.Minute
	}
	if cfg.Message == "" {
		cfg.Message = "Too many requests"
	}
	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if cfg.PerPath {
				return c.IP() + " " + c.Path()
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusTooManyRequests,
				Message: cfg.Message,
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
