package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// PaymentModel: iuran/kontribusi satu family.
type PaymentModel struct {
	PaymentID      uuid.UUID       `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`
	PaymentOrderID string          `gorm:"column:payment_order_id;size:64;unique;not null" json:"payment_order_id"`
	PaymentAmount  decimal.Decimal `gorm:"column:payment_amount;type:numeric(14,2);not null" json:"payment_amount"`
	PaymentPurpose string          `gorm:"column:payment_purpose;size:100" json:"payment_purpose"`
	PaymentStatus  string          `gorm:"column:payment_status;type:varchar(10);not null;default:'pending'" json:"payment_status"`

	PaymentTenantID uuid.UUID `gorm:"column:payment_tenant_id;type:uuid;not null;index" json:"payment_tenant_id"`
	PaymentFamilyID uuid.UUID `gorm:"column:payment_family_id;type:uuid;not null;index" json:"payment_family_id"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
}

func (PaymentModel) TableName() string {
	return "payments"
}
