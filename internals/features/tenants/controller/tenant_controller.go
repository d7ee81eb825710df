package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"mahallku_backend/internals/constants"
	"mahallku_backend/internals/features/tenants/dto"
	"mahallku_backend/internals/features/tenants/model"
	helper "mahallku_backend/internals/helpers"
)

var validate = validator.New()

// TenantController: lifecycle tenant — khusus aktor super (dijaga juga di
// route group, ini lapis kedua).
type TenantController struct {
	DB *gorm.DB
}

func NewTenantController(db *gorm.DB) *TenantController {
	return &TenantController{DB: db}
}

func (tc *TenantController) requireSuper(c *fiber.Ctx) error {
	if !helper.IsSuper(c) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorSuper("tenant"))
	}
	return nil
}

// 🟢 CREATE — POST /api/s/tenants
func (tc *TenantController) CreateTenant(c *fiber.Ctx) error {
	if err := tc.requireSuper(c); err != nil {
		return err
	}

	var req dto.CreateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// kode unik global
	var count int64
	if err := tc.DB.WithContext(c.UserContext()).Model(&model.TenantModel{}).
		Where("tenant_code = ?", req.TenantCode).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data tenant")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Kode tenant sudah dipakai")
	}

	tenant := req.ToModel()
	if err := tc.DB.WithContext(c.UserContext()).Create(tenant).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan tenant")
	}
	return helper.JsonWithCode(c, fiber.StatusCreated, "Tenant berhasil dibuat", tenant)
}

// 🔵 LIST — GET /api/s/tenants
func (tc *TenantController) GetTenants(c *fiber.Ctx) error {
	if err := tc.requireSuper(c); err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 25, 200)
	q := tc.DB.WithContext(c.UserContext()).Model(&model.TenantModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("tenant_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var tenants []model.TenantModel
	if err := q.Order("tenant_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&tenants).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data tenant")
	}
	return helper.JsonList(c, tenants, helper.BuildPagination(paging, total))
}

// 🔵 DETAIL — GET /api/s/tenants/:id
func (tc *TenantController) GetTenantByID(c *fiber.Ctx) error {
	if err := tc.requireSuper(c); err != nil {
		return err
	}

	tenant, errResp := tc.find(c)
	if errResp != nil {
		return errResp
	}
	return helper.JsonOK(c, "OK", tenant)
}

// 🟡 UPDATE — PUT /api/s/tenants/:id (nama/settings/modul)
func (tc *TenantController) UpdateTenant(c *fiber.Ctx) error {
	if err := tc.requireSuper(c); err != nil {
		return err
	}

	var req dto.UpdateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	tenant, errResp := tc.find(c)
	if errResp != nil {
		return errResp
	}

	req.ApplyToModel(tenant)
	if err := tc.DB.WithContext(c.UserContext()).Save(tenant).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan perubahan")
	}
	return helper.JsonOK(c, "Tenant berhasil diperbarui", tenant)
}

// 🟡 PATCH /api/s/tenants/:id/status — suspend/activate
func (tc *TenantController) UpdateTenantStatus(c *fiber.Ctx) error {
	if err := tc.requireSuper(c); err != nil {
		return err
	}

	var req dto.UpdateTenantStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	tenant, errResp := tc.find(c)
	if errResp != nil {
		return errResp
	}

	if err := tc.DB.WithContext(c.UserContext()).Model(tenant).
		Update("tenant_status", req.Status).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan status")
	}
	tenant.TenantStatus = req.Status
	return helper.JsonOK(c, "Status tenant berhasil diperbarui", tenant)
}

// 🔴 DELETE — DELETE /api/s/tenants/:id
func (tc *TenantController) DeleteTenant(c *fiber.Ctx) error {
	if err := tc.requireSuper(c); err != nil {
		return err
	}

	tenant, errResp := tc.find(c)
	if errResp != nil {
		return errResp
	}

	if err := tc.DB.WithContext(c.UserContext()).Delete(tenant).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus tenant")
	}
	return helper.JsonOK(c, "Tenant berhasil dihapus", nil)
}

func (tc *TenantController) find(c *fiber.Ctx) (*model.TenantModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var tenant model.TenantModel
	if err := tc.DB.WithContext(c.UserContext()).
		Where("tenant_id = ?", id).
		First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Tenant tidak ditemukan")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data tenant")
	}
	return &tenant, nil
}
