package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mahallku_backend/internals/features/users/user/controller"
)

func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)

	// 🔐 Group: /users
	user := admin.Group("/users")
	user.Get("/", ctrl.GetUsers)
	user.Post("/", ctrl.CreateUser) // role member lewat linkage service
	user.Get("/:id", ctrl.GetUserByID)
	user.Put("/:id", ctrl.UpdateUser)
	user.Patch("/:id/status", ctrl.UpdateUserStatus) // cascade ke member
	user.Delete("/:id", ctrl.DeleteUser)             // soft delete
}
