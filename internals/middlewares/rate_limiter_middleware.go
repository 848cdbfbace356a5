package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func newLimiter(max int, exp time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: exp,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success":    false,
				"message":    message,
				"error_code": "TOO_MANY_REQUESTS",
			})
		},
	})
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter() fiber.Handler {
	return newLimiter(100, 1*time.Minute, "Previše zahteva. Pokušajte ponovo kasnije.")
}

// Rate limiter untuk login admin (lebih ketat)
func LoginRateLimiter() fiber.Handler {
	return newLimiter(5, 1*time.Minute, "Previše pokušaja prijave. Pokušajte za nekoliko minuta.")
}

// Rate limiter untuk form registrasi event (upload foto berat)
func RegistrationRateLimiter() fiber.Handler {
	return newLimiter(5, 10*time.Minute, "Previše prijava sa ove adrese. Pokušajte kasnije.")
}

// Rate limiter untuk checkout / order
func CheckoutRateLimiter() fiber.Handler {
	return newLimiter(10, 5*time.Minute, "Previše narudžbina za kratko vreme. Pokušajte kasnije.")
}
