// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityLogRoute "mahallku_backend/internals/features/activity_logs/route"
	familyRoute "mahallku_backend/internals/features/mahall/families/route"
	memberRoute "mahallku_backend/internals/features/mahall/members/route"
	paymentRoute "mahallku_backend/internals/features/payments/route"
	tenantRoute "mahallku_backend/internals/features/tenants/route"
	authRoute "mahallku_backend/internals/features/users/auth/route"
	userRoute "mahallku_backend/internals/features/users/user/route"

	"mahallku_backend/internals/constants"
	authMiddleware "mahallku_backend/internals/middlewares/auth"
	"mahallku_backend/internals/middlewares/tenantctx"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	log.Println("[INFO] Setting up Payment webhook...")
	paymentRoute.PaymentWebhookRoutes(app, db)

	// ===================== PRIVATE (semua role) =====================
	// urutan wajib: auth dulu (claims) → resolver scope → handler
	private := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
		tenantctx.Resolve(),
	)
	authRoute.AuthProtectedRoutes(private, db)

	// ===================== ADMIN (staff tenant) =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("dashboard"), constants.StaffRoles...),
		tenantctx.Resolve(),
	)
	familyRoute.FamilyAdminRoutes(admin, db)
	memberRoute.MemberAdminRoutes(admin, db)
	userRoute.UserAdminRoutes(admin, db)
	paymentRoute.PaymentAdminRoutes(admin, db)
	activityLogRoute.ActivityLogAdminRoutes(admin, db)

	// ===================== SUPER =====================
	log.Println("[INFO] Setting up SUPER group...")
	super := app.Group("/api/s",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorSuper("tenant"), constants.SuperOnly...),
		tenantctx.Resolve(),
	)
	tenantRoute.TenantSuperRoutes(super, db)
}
