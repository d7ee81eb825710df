package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mahallku_backend/internals/features/payments/model"
)

type CreatePaymentRequest struct {
	FamilyID       uuid.UUID       `json:"family_id" validate:"required"`
	PaymentAmount  decimal.Decimal `json:"payment_amount" validate:"required"`
	PaymentPurpose string          `json:"payment_purpose" validate:"omitempty,max=100"`
	PayerName      string          `json:"payer_name" validate:"omitempty,max=100"`
}

func (r *CreatePaymentRequest) Normalize() {
	r.PaymentPurpose = strings.TrimSpace(r.PaymentPurpose)
	r.PayerName = strings.TrimSpace(r.PayerName)
}

func (r *CreatePaymentRequest) ToModel() *model.PaymentModel {
	return &model.PaymentModel{
		PaymentAmount:   r.PaymentAmount,
		PaymentPurpose:  r.PaymentPurpose,
		PaymentStatus:   model.PaymentStatusPending,
		PaymentFamilyID: r.FamilyID,
	}
}

// MidtransNotification — payload webhook yang kita pakai saja.
type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
}
