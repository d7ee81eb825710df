package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mahallku_backend/internals/features/payments/controller"
)

func PaymentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPaymentController(db)

	// 💰 Group: /payments
	payment := admin.Group("/payments")
	payment.Get("/", ctrl.GetPayments)
	payment.Post("/", ctrl.CreatePayment)
}

// Webhook Midtrans — publik, diverifikasi lewat order id.
func PaymentWebhookRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPaymentController(db)
	app.Post("/api/payments/notification", ctrl.HandleNotification)
}
