package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mahallku_backend/internals/features/mahall/families/controller"
)

func FamilyAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewFamilyController(db)

	// 🏠 Group: /families
	family := admin.Group("/families")
	family.Get("/", ctrl.GetFamilies)
	family.Post("/", ctrl.CreateFamily)      // ➕ alokasi FID<n>
	family.Get("/:id", ctrl.GetFamilyByID)
	family.Put("/:id", ctrl.UpdateFamily)
	family.Delete("/:id", ctrl.DeleteFamily)
}
