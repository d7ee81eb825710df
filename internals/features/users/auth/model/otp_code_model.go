package model

import (
	"time"

	"github.com/google/uuid"
)

// OtpCode menyimpan kode OTP login via phone. Pengiriman SMS di luar
// backend ini; kode diisi oleh proses lain.
type OtpCode struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Phone     string    `gorm:"size:20;not null;index" json:"phone"`
	Code      string    `gorm:"size:8;not null" json:"-"`
	Used      bool      `gorm:"not null;default:false" json:"used"`
	ExpiredAt time.Time `gorm:"not null" json:"expired_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (OtpCode) TableName() string {
	return "otp_codes"
}
