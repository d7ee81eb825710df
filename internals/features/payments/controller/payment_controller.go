package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	familyModel "mahallku_backend/internals/features/mahall/families/model"
	"mahallku_backend/internals/features/payments/dto"
	"mahallku_backend/internals/features/payments/model"
	"mahallku_backend/internals/features/payments/service"
	helper "mahallku_backend/internals/helpers"
	"mahallku_backend/internals/middlewares/tenantctx"
)

var validate = validator.New()

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

// 🟢 CREATE — POST /api/a/payments → record pending + snap token
func (pc *PaymentController) CreatePayment(c *fiber.Ctx) error {
	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if !req.PaymentAmount.IsPositive() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nominal harus lebih dari nol")
	}

	var fam familyModel.FamilyModel
	if err := pc.DB.WithContext(c.UserContext()).
		Where("family_id = ?", req.FamilyID).
		First(&fam).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Family tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data family")
	}
	if !tenantctx.FromCtx(c).Owns(fam.FamilyTenantID) {
		return helper.JsonError(c, fiber.StatusForbidden, "Akses ditolak")
	}

	payment := req.ToModel()
	payment.PaymentTenantID = fam.FamilyTenantID
	payment.PaymentOrderID = fmt.Sprintf("MHL-%s-%d", fam.FamilyMahallID, time.Now().UnixNano())

	if err := pc.DB.WithContext(c.UserContext()).Create(payment).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan pembayaran")
	}

	payerName := req.PayerName
	if payerName == "" {
		payerName = fam.FamilyName
	}
	token, err := service.GenerateSnapToken(*payment, payerName)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal membuat token pembayaran")
	}

	return helper.JsonWithCode(c, fiber.StatusCreated, "Pembayaran dibuat", fiber.Map{
		"payment":    payment,
		"snap_token": token,
	})
}

// 🔵 LIST — GET /api/a/payments
func (pc *PaymentController) GetPayments(c *fiber.Ctx) error {
	scope := tenantctx.FromCtx(c)
	paging := helper.ResolvePaging(c, 25, 200)

	q := pc.DB.WithContext(c.UserContext()).
		Model(&model.PaymentModel{}).
		Scopes(scope.Filter("payment_tenant_id"))

	if status := c.Query("status"); status != "" {
		q = q.Where("payment_status = ?", status)
	}
	if familyID := c.Query("family_id"); familyID != "" {
		if id, err := uuid.Parse(familyID); err == nil {
			q = q.Where("payment_family_id = ?", id)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var payments []model.PaymentModel
	if err := q.Order("payment_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&payments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data pembayaran")
	}
	return helper.JsonList(c, payments, helper.BuildPagination(paging, total))
}

// 🔔 WEBHOOK — POST /api/payments/notification (tanpa auth, diskip auth
// middleware)
func (pc *PaymentController) HandleNotification(c *fiber.Ctx) error {
	var notif dto.MidtransNotification
	if err := c.BodyParser(&notif); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if notif.OrderID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "order_id kosong")
	}

	var status string
	switch notif.TransactionStatus {
	case "capture", "settlement":
		status = model.PaymentStatusPaid
	case "deny", "cancel", "expire", "failure":
		status = model.PaymentStatusFailed
	default:
		// pending dsb. — biarkan
		return helper.JsonOK(c, "OK", nil)
	}

	result := pc.DB.WithContext(c.UserContext()).
		Model(&model.PaymentModel{}).
		Where("payment_order_id = ?", notif.OrderID).
		Update("payment_status", status)
	if result.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui status")
	}
	if result.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Order tidak ditemukan")
	}

	return helper.JsonOK(c, "OK", nil)
}
