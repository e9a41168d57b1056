package middleware

import (
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

var errTooManyAttempts = apperror.New(fiber.StatusTooManyRequests, "terlalu banyak percobaan, coba lagi beberapa saat lagi")

// AttemptLimiter membatasi percobaan login/registrasi per IP.
func AttemptLimiter(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return errTooManyAttempts
		},
	})
}
