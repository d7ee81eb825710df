// internals/features/users/auth/service/token_service.go
package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"mahallku_backend/internals/configs"
	userModel "mahallku_backend/internals/features/users/user/model"
)

const accessTokenTTL = 24 * time.Hour

// GenerateAccessToken membuat access token berisi identitas + scope tenant.
func GenerateAccessToken(u *userModel.UserModel) (string, error) {
	if configs.JWTSecret == "" {
		return "", fmt.Errorf("JWT_SECRET belum diset")
	}

	claims := jwt.MapClaims{
		"sub":  u.UserID.String(),
		"role": u.UserRole.String(),
		"exp":  time.Now().Add(accessTokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}
	if u.UserTenantID != nil {
		claims["tenant_id"] = u.UserTenantID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
