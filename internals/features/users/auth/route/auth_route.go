package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mahallku_backend/internals/features/users/auth/controller"
	"mahallku_backend/internals/middlewares"
)

// AuthRoutes: login & verify-otp publik (rate-limited), logout butuh JWT —
// dipasang oleh caller di group ber-auth.
func AuthRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/verify-otp", middlewares.LoginRateLimiter(), ctrl.VerifyOtp)
}

func AuthProtectedRoutes(group fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)
	group.Post("/auth/logout", ctrl.Logout)
}
