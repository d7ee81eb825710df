package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mahallku_backend/internals/features/mahall/members/controller"
)

func MemberAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewMemberController(db)

	// 👤 Group: /members
	member := admin.Group("/members")
	member.Get("/", ctrl.GetMembers)
	member.Post("/", ctrl.CreateMember) // ➕ alokasi <FID>-<k>
	member.Get("/:id", ctrl.GetMemberByID)
	member.Put("/:id", ctrl.UpdateMember)
	member.Patch("/:id/status", ctrl.UpdateMemberStatus) // cascade ke akun
	member.Delete("/:id", ctrl.DeleteMember)             // soft delete
}
