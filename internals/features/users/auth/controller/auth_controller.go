package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	tenantModel "mahallku_backend/internals/features/tenants/model"
	authModel "mahallku_backend/internals/features/users/auth/model"
	authService "mahallku_backend/internals/features/users/auth/service"
	userModel "mahallku_backend/internals/features/users/user/model"
	helper "mahallku_backend/internals/helpers"
)

var validate = validator.New()

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type loginRequest struct {
	Phone      string `json:"phone" validate:"required,min=8,max=20"`
	Password   string `json:"password" validate:"required,min=6"`
	TenantCode string `json:"tenant_code" validate:"omitempty,max=30"`
}

type verifyOtpRequest struct {
	Phone      string `json:"phone" validate:"required,min=8,max=20"`
	Code       string `json:"code" validate:"required,min=4,max=8"`
	TenantCode string `json:"tenant_code" validate:"omitempty,max=30"`
}

// candidatesByPhone mencari semua akun dengan phone ini. Phone hanya unik
// PER TENANT — phone yang sama bisa terdaftar di beberapa mahall, jadi
// lookup tidak boleh berhenti di baris pertama. tenant_code opsional
// mempersempit ke satu mahall.
func (ac *AuthController) candidatesByPhone(c *fiber.Ctx, phone, tenantCode string) ([]userModel.UserModel, error) {
	q := ac.DB.WithContext(c.UserContext()).Where("user_phone = ?", phone)

	if code := strings.TrimSpace(tenantCode); code != "" {
		var tenant tenantModel.TenantModel
		if err := ac.DB.WithContext(c.UserContext()).
			Where("tenant_code = ?", code).
			First(&tenant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		q = q.Where("user_tenant_id = ?", tenant.TenantID)
	}

	var users []userModel.UserModel
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// 🔓 POST /api/auth/login — phone + password → access token
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	req.Phone = strings.TrimSpace(req.Phone)
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	candidates, err := ac.candidatesByPhone(c, req.Phone, req.TenantCode)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data user")
	}

	// password yang menentukan akun mana yang dimaksud saat phone terdaftar
	// di lebih dari satu mahall
	var user *userModel.UserModel
	for i := range candidates {
		if bcrypt.CompareHashAndPassword([]byte(candidates[i].UserPassword), []byte(req.Password)) == nil {
			user = &candidates[i]
			break
		}
	}
	if user == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Phone atau password salah")
	}
	if user.UserStatus != userModel.UserStatusActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	token, err := authService.GenerateAccessToken(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"access_token": token,
		"user":         user,
	})
}

// 🔓 POST /api/auth/verify-otp — phone + kode → access token
func (ac *AuthController) VerifyOtp(c *fiber.Ctx) error {
	var req verifyOtpRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var otp authModel.OtpCode
	if err := ac.DB.WithContext(c.UserContext()).
		Where("phone = ? AND code = ? AND used = FALSE AND expired_at > ?", req.Phone, req.Code, time.Now()).
		Order("created_at DESC").
		First(&otp).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Kode OTP salah atau kedaluwarsa")
	}

	candidates, err := ac.candidatesByPhone(c, req.Phone, req.TenantCode)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data user")
	}
	if len(candidates) == 0 {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	// tanpa password tidak ada yang membedakan dua akun se-phone —
	// pemilik phone di beberapa mahall wajib menyebut tenant_code
	if len(candidates) > 1 {
		return helper.JsonError(c, fiber.StatusBadRequest,
			"Phone terdaftar di lebih dari satu mahall, sertakan tenant_code")
	}
	user := candidates[0]
	if user.UserStatus != userModel.UserStatusActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	// tandai OTP terpakai (sekali pakai)
	if err := ac.DB.Model(&otp).Update("used", true).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses OTP")
	}

	token, err := authService.GenerateAccessToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.JsonOK(c, "Verifikasi berhasil", fiber.Map{
		"access_token": token,
		"user":         user,
	})
}

// 🔒 POST /api/auth/logout — blacklist token sampai exp
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	auth := strings.TrimSpace(c.Get("Authorization"))
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak ditemukan")
	}
	tokenString := strings.Trim(fields[1], "\"'")

	// exp dari claim dipakai sebagai umur blacklist
	expiredAt := time.Now().Add(24 * time.Hour)
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			expiredAt = time.Unix(int64(exp), 0)
		}
	}

	entry := authModel.TokenBlacklist{Token: tokenString, ExpiredAt: expiredAt}
	if err := ac.DB.WithContext(c.UserContext()).Create(&entry).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal logout")
	}

	return helper.JsonOK(c, "Logout berhasil", nil)
}
