package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	familyModel "mahallku_backend/internals/features/mahall/families/model"
	"mahallku_backend/internals/features/mahall/members/dto"
	"mahallku_backend/internals/features/mahall/members/model"
	"mahallku_backend/internals/features/mahall/members/service"
	helper "mahallku_backend/internals/helpers"
	"mahallku_backend/internals/middlewares/tenantctx"
)

var validate = validator.New()

type MemberController struct {
	DB      *gorm.DB
	Linkage *service.LinkageService
}

func NewMemberController(db *gorm.DB) *MemberController {
	return &MemberController{DB: db, Linkage: service.NewLinkageService(db)}
}

// 🟢 CREATE MEMBER — POST /api/a/members
// mahall_id <FID>-<k> dialokasikan dari family induk; nama family
// disalin (denormalisasi).
func (mc *MemberController) CreateMember(c *fiber.Ctx) error {
	var req dto.CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var fam familyModel.FamilyModel
	if err := mc.DB.WithContext(c.UserContext()).
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

	member := req.ToModel()
	if err := service.CreateMember(mc.DB.WithContext(c.UserContext()), &fam, member); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan member")
	}

	return helper.JsonWithCode(c, fiber.StatusCreated, "Member berhasil dibuat", member)
}

// 🔵 LIST — GET /api/a/members
// Default menyembunyikan member deleted; ?status=deleted untuk melihat
// tombstone.
func (mc *MemberController) GetMembers(c *fiber.Ctx) error {
	scope := tenantctx.FromCtx(c)
	paging := helper.ResolvePaging(c, 25, 200)

	q := mc.DB.WithContext(c.UserContext()).
		Model(&model.MemberModel{}).
		Scopes(scope.Filter("member_tenant_id"))

	if status := c.Query("status"); status != "" {
		q = q.Where("member_status = ?", status)
	} else {
		q = q.Where("member_status <> ?", model.MemberStatusDeleted)
	}
	if familyID := c.Query("family_id"); familyID != "" {
		q = q.Where("member_family_id = ?", familyID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var members []model.MemberModel
	if err := q.Order("member_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&members).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data member")
	}

	return helper.JsonList(c, members, helper.BuildPagination(paging, total))
}

// 🔵 DETAIL — GET /api/a/members/:id (tombstone tetap kelihatan)
func (mc *MemberController) GetMemberByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	member, errResp := mc.findScoped(c, id)
	if errResp != nil {
		return errResp
	}
	return helper.JsonOK(c, "OK", member)
}

// 🟡 UPDATE — PUT /api/a/members/:id (data diri, bukan status)
func (mc *MemberController) UpdateMember(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	member, errResp := mc.findScoped(c, id)
	if errResp != nil {
		return errResp
	}

	req.ApplyToModel(member)

	// refresh salinan nama family — denormalisasi disegarkan tiap update
	var fam familyModel.FamilyModel
	if err := mc.DB.WithContext(c.UserContext()).
		Select("family_name").
		Where("family_id = ?", member.MemberFamilyID).
		First(&fam).Error; err == nil {
		member.MemberFamilyName = fam.FamilyName
	}

	if err := mc.DB.WithContext(c.UserContext()).Save(member).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan perubahan")
	}
	return helper.JsonOK(c, "Member berhasil diperbarui", member)
}

// 🟡 PATCH /api/a/members/:id/status — {status} + cascade ke akun tertaut.
// Response hanya member; efek ke user kelihatan lewat fetch user.
func (mc *MemberController) UpdateMemberStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateMemberStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if _, errResp := mc.findScoped(c, id); errResp != nil {
		return errResp
	}

	member, err := mc.Linkage.UpdateMemberStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return mapLinkageError(c, err)
	}
	return helper.JsonOK(c, "Status member berhasil diperbarui", member)
}

// 🔴 DELETE /api/a/members/:id — soft delete + cascade nonaktifkan akun.
func (mc *MemberController) DeleteMember(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if _, errResp := mc.findScoped(c, id); errResp != nil {
		return errResp
	}

	member, err := mc.Linkage.DeleteMember(c.UserContext(), id)
	if err != nil {
		return mapLinkageError(c, err)
	}
	return helper.JsonOK(c, "Member berhasil dihapus", member)
}

func (mc *MemberController) findScoped(c *fiber.Ctx, id uuid.UUID) (*model.MemberModel, error) {
	var member model.MemberModel
	if err := mc.DB.WithContext(c.UserContext()).
		Where("member_id = ?", id).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Member tidak ditemukan")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data member")
	}

	if !tenantctx.FromCtx(c).Owns(member.MemberTenantID) {
		return nil, helper.JsonError(c, fiber.StatusForbidden, "Akses ditolak")
	}
	return &member, nil
}

// mapLinkageError memetakan sentinel service ke status HTTP.
func mapLinkageError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrMemberNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTenantMismatch):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrMemberAlreadyLinked),
		errors.Is(err, service.ErrPhoneTaken):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidStatus):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}
