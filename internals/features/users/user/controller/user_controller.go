package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"mahallku_backend/internals/constants"
	linkage "mahallku_backend/internals/features/mahall/members/service"
	"mahallku_backend/internals/features/users/user/dto"
	"mahallku_backend/internals/features/users/user/model"
	helper "mahallku_backend/internals/helpers"
	"mahallku_backend/internals/middlewares/tenantctx"
)

var validate = validator.New()

type UserController struct {
	DB      *gorm.DB
	Linkage *linkage.LinkageService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Linkage: linkage.NewLinkageService(db)}
}

// 🟢 CREATE USER — POST /api/a/users
// Role member lewat LinkageService (cek member, tenant, duplikat tautan &
// phone — semua sebelum insert). Role lain create biasa.
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	role, ok := constants.ParseRole(req.UserRole)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Role tidak dikenal")
	}

	scope := tenantctx.FromCtx(c)

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	// ===== role member: wajib member_id, serahkan ke linkage service =====
	if role == constants.RoleMember {
		if req.MemberID == nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "member_id wajib untuk akun member")
		}
		tenantID := scope.EffectiveTenant(req.TenantID)
		if tenantID == nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Tenant tujuan wajib disebut")
		}

		user, err := uc.Linkage.CreateMemberUser(c.UserContext(), *tenantID, *req.MemberID, linkage.CreateMemberUserInput{
			FullName:     req.UserFullName,
			Phone:        req.UserPhone,
			PasswordHash: string(hashed),
			CanView:      req.UserCanView,
			CanAdd:       req.UserCanAdd,
			CanEdit:      req.UserCanEdit,
			CanDelete:    req.UserCanDelete,
		})
		if err != nil {
			return mapLinkageError(c, err)
		}
		return helper.JsonWithCode(c, fiber.StatusCreated, "Akun member berhasil dibuat", user)
	}

	// ===== role staff biasa =====
	if req.UserPhone == "" || req.UserFullName == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nama dan phone wajib diisi")
	}
	if role == constants.RoleSuper && !scope.Elevated {
		return helper.JsonError(c, fiber.StatusForbidden, "Hanya super yang boleh membuat akun super")
	}

	user := req.ToModel()
	user.UserPassword = string(hashed)

	if role == constants.RoleSuper {
		// super tanpa tenant; phone harus unik global
		var count int64
		if err := uc.DB.WithContext(c.UserContext()).Model(&model.UserModel{}).
			Where("user_phone = ?", req.UserPhone).
			Count(&count).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data user")
		}
		if count > 0 {
			return helper.JsonError(c, fiber.StatusConflict, "Phone sudah terdaftar")
		}
	} else {
		tenantID := scope.EffectiveTenant(req.TenantID)
		if tenantID == nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Tenant tujuan wajib disebut")
		}
		user.UserTenantID = tenantID

		var count int64
		if err := uc.DB.WithContext(c.UserContext()).Model(&model.UserModel{}).
			Where("user_tenant_id = ? AND user_phone = ?", *tenantID, req.UserPhone).
			Count(&count).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data user")
		}
		if count > 0 {
			return helper.JsonError(c, fiber.StatusConflict, "Phone sudah terdaftar di tenant ini")
		}
	}

	if err := uc.DB.WithContext(c.UserContext()).Create(user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan user")
	}
	return helper.JsonWithCode(c, fiber.StatusCreated, "User berhasil dibuat", user)
}

// 🔵 LIST — GET /api/a/users
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	scope := tenantctx.FromCtx(c)
	paging := helper.ResolvePaging(c, 25, 200)

	q := uc.DB.WithContext(c.UserContext()).
		Model(&model.UserModel{}).
		Scopes(scope.Filter("user_tenant_id"))

	if role := c.Query("role"); role != "" {
		q = q.Where("user_role = ?", role)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("user_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var users []model.UserModel
	if err := q.Order("user_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data user")
	}

	return helper.JsonList(c, users, helper.BuildPagination(paging, total))
}

// 🔵 DETAIL — GET /api/a/users/:id
func (uc *UserController) GetUserByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	user, errResp := uc.findScoped(c, id)
	if errResp != nil {
		return errResp
	}
	return helper.JsonOK(c, "OK", user)
}

// 🟡 UPDATE — PUT /api/a/users/:id (profil + permission)
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	user, errResp := uc.findScoped(c, id)
	if errResp != nil {
		return errResp
	}

	oldPhone := user.UserPhone
	req.ApplyToModel(user)

	// ganti phone lewat cek unik yang sama dengan create — biar bentrok
	// jadi 409, bukan meledak di unique index
	if user.UserPhone != oldPhone {
		q := uc.DB.WithContext(c.UserContext()).Model(&model.UserModel{}).
			Where("user_phone = ? AND user_id <> ?", user.UserPhone, user.UserID)
		if user.UserTenantID != nil {
			q = q.Where("user_tenant_id = ?", *user.UserTenantID)
		}

		var count int64
		if err := q.Count(&count).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data user")
		}
		if count > 0 {
			if user.UserTenantID != nil {
				return helper.JsonError(c, fiber.StatusConflict, "Phone sudah terdaftar di tenant ini")
			}
			return helper.JsonError(c, fiber.StatusConflict, "Phone sudah terdaftar")
		}
	}

	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
		}
		user.UserPassword = string(hashed)
	}

	if err := uc.DB.WithContext(c.UserContext()).Save(user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan perubahan")
	}
	return helper.JsonOK(c, "User berhasil diperbarui", user)
}

// 🟡 PATCH /api/a/users/:id/status — {status} + cascade balik ke member
// (member deleted tidak pernah dihidupkan lagi lewat jalur ini).
func (uc *UserController) UpdateUserStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if _, errResp := uc.findScoped(c, id); errResp != nil {
		return errResp
	}

	user, err := uc.Linkage.UpdateUserStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return mapLinkageError(c, err)
	}
	return helper.JsonOK(c, "Status user berhasil diperbarui", user)
}

// 🔴 DELETE /api/a/users/:id — soft delete; akun member menyeret member
// tertautnya ke deleted.
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if _, errResp := uc.findScoped(c, id); errResp != nil {
		return errResp
	}

	user, err := uc.Linkage.DeleteUser(c.UserContext(), id)
	if err != nil {
		return mapLinkageError(c, err)
	}
	return helper.JsonOK(c, "User berhasil dihapus", user)
}

func (uc *UserController) findScoped(c *fiber.Ctx, id uuid.UUID) (*model.UserModel, error) {
	var user model.UserModel
	if err := uc.DB.WithContext(c.UserContext()).
		Where("user_id = ?", id).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data user")
	}

	scope := tenantctx.FromCtx(c)
	if user.UserTenantID != nil && !scope.Owns(*user.UserTenantID) {
		return nil, helper.JsonError(c, fiber.StatusForbidden, "Akses ditolak")
	}
	if user.UserTenantID == nil && !scope.Elevated {
		// akun super hanya boleh disentuh super
		return nil, helper.JsonError(c, fiber.StatusForbidden, "Akses ditolak")
	}
	return &user, nil
}

func mapLinkageError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, linkage.ErrMemberNotFound),
		errors.Is(err, linkage.ErrUserNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, linkage.ErrTenantMismatch):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, linkage.ErrMemberAlreadyLinked),
		errors.Is(err, linkage.ErrPhoneTaken):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, linkage.ErrInvalidStatus):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}
