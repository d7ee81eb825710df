package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	FamilyStatusApproved   = "approved"
	FamilyStatusUnapproved = "unapproved"
	FamilyStatusPending    = "pending"
)

// FamilyModel: satu rumah tangga dalam satu tenant.
// family_mahall_id format FID<n>, diberikan sekali saat create dan tidak
// pernah dipakai ulang.
type FamilyModel struct {
	FamilyID       uuid.UUID `gorm:"column:family_id;type:uuid;default:gen_random_uuid();primaryKey" json:"family_id"`
	FamilyMahallID string    `gorm:"column:family_mahall_id;size:20;uniqueIndex:idx_families_tenant_mahall" json:"family_mahall_id"`
	FamilyName     string    `gorm:"column:family_name;size:100;not null" json:"family_name"`

	FamilyHouseName string `gorm:"column:family_house_name;size:100" json:"family_house_name"`
	FamilyAddress   string `gorm:"column:family_address;size:255" json:"family_address"`
	FamilyPlace     string `gorm:"column:family_place;size:100" json:"family_place"`
	FamilyPincode   string `gorm:"column:family_pincode;size:10" json:"family_pincode"`

	FamilyStatus string `gorm:"column:family_status;type:varchar(12);not null;default:'pending'" json:"family_status"`

	FamilyTenantID uuid.UUID `gorm:"column:family_tenant_id;type:uuid;not null;index;uniqueIndex:idx_families_tenant_mahall" json:"family_tenant_id"`

	FamilyCreatedAt time.Time `gorm:"column:family_created_at;autoCreateTime" json:"family_created_at"`
	FamilyUpdatedAt time.Time `gorm:"column:family_updated_at;autoUpdateTime" json:"family_updated_at"`
}

func (FamilyModel) TableName() string {
	return "families"
}
