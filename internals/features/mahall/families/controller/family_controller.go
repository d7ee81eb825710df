package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"mahallku_backend/internals/features/mahall/families/dto"
	"mahallku_backend/internals/features/mahall/families/model"
	"mahallku_backend/internals/features/mahall/families/service"
	helper "mahallku_backend/internals/helpers"
	"mahallku_backend/internals/middlewares/tenantctx"
)

var validate = validator.New()

type FamilyController struct {
	DB *gorm.DB
}

func NewFamilyController(db *gorm.DB) *FamilyController {
	return &FamilyController{DB: db}
}

// 🟢 CREATE FAMILY — POST /api/a/families
// mahall_id (FID<n>) dialokasikan di sini, sekali, sebelum insert.
func (fc *FamilyController) CreateFamily(c *fiber.Ctx) error {
	var req dto.CreateFamilyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	scope := tenantctx.FromCtx(c)
	tenantID := scope.EffectiveTenant(req.TenantID)
	if tenantID == nil {
		// tulisan tanpa scope hanya mungkin dari super yang lupa menyebut tenant
		return helper.JsonError(c, fiber.StatusBadRequest, "Tenant tujuan wajib disebut")
	}

	fam := req.ToModel()
	fam.FamilyTenantID = *tenantID

	if err := service.CreateFamily(fc.DB.WithContext(c.UserContext()), fam); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan family")
	}

	return helper.JsonWithCode(c, fiber.StatusCreated, "Family berhasil dibuat", fam)
}

// 🔵 LIST FAMILIES — GET /api/a/families
func (fc *FamilyController) GetFamilies(c *fiber.Ctx) error {
	scope := tenantctx.FromCtx(c)
	paging := helper.ResolvePaging(c, 25, 200)

	q := fc.DB.WithContext(c.UserContext()).
		Model(&model.FamilyModel{}).
		Scopes(scope.Filter("family_tenant_id"))

	if status := c.Query("status"); status != "" {
		q = q.Where("family_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var families []model.FamilyModel
	if err := q.Order("family_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&families).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data family")
	}

	return helper.JsonList(c, families, helper.BuildPagination(paging, total))
}

// 🔵 DETAIL — GET /api/a/families/:id
func (fc *FamilyController) GetFamilyByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	fam, errResp := fc.findScoped(c, id)
	if errResp != nil {
		return errResp
	}
	return helper.JsonOK(c, "OK", fam)
}

// 🟡 UPDATE — PUT /api/a/families/:id (partial)
func (fc *FamilyController) UpdateFamily(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateFamilyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	fam, errResp := fc.findScoped(c, id)
	if errResp != nil {
		return errResp
	}

	req.ApplyToModel(fam)
	if err := fc.DB.WithContext(c.UserContext()).Save(fam).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan perubahan")
	}

	return helper.JsonOK(c, "Family berhasil diperbarui", fam)
}

// 🔴 DELETE — DELETE /api/a/families/:id
func (fc *FamilyController) DeleteFamily(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	fam, errResp := fc.findScoped(c, id)
	if errResp != nil {
		return errResp
	}

	if err := fc.DB.WithContext(c.UserContext()).Delete(fam).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus family")
	}
	return helper.JsonOK(c, "Family berhasil dihapus", nil)
}

// findScoped ambil family by id + tolak akses lintas tenant.
func (fc *FamilyController) findScoped(c *fiber.Ctx, id uuid.UUID) (*model.FamilyModel, error) {
	var fam model.FamilyModel
	if err := fc.DB.WithContext(c.UserContext()).
		Where("family_id = ?", id).
		First(&fam).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Family tidak ditemukan")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data family")
	}

	if !tenantctx.FromCtx(c).Owns(fam.FamilyTenantID) {
		return nil, helper.JsonError(c, fiber.StatusForbidden, "Akses ditolak")
	}
	return &fam, nil
}
