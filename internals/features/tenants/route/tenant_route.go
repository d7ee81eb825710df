package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mahallku_backend/internals/features/tenants/controller"
)

func TenantSuperRoutes(super fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTenantController(db)

	// 🕌 Group: /tenants — khusus super
	tenant := super.Group("/tenants")
	tenant.Get("/", ctrl.GetTenants)
	tenant.Post("/", ctrl.CreateTenant)
	tenant.Get("/:id", ctrl.GetTenantByID)
	tenant.Put("/:id", ctrl.UpdateTenant)
	tenant.Patch("/:id/status", ctrl.UpdateTenantStatus)
	tenant.Delete("/:id", ctrl.DeleteTenant)
}
