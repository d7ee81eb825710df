package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mahallku_backend/internals/features/activity_logs/controller"
)

func ActivityLogAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewActivityLogController(db)

	admin.Get("/activity-logs", ctrl.GetActivityLogs)
}
