package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MemberStatusActive   = "active"
	MemberStatusInactive = "inactive"
	MemberStatusDeleted  = "deleted" // soft delete: record tetap ada
)

// MemberModel: anggota sebuah family. member_mahall_id format
// <familyMahallID>-<k> dengan k urutan pembuatan di family tsb.
// member_family_name denormalisasi dari family (disalin saat create/update,
// bukan join live).
type MemberModel struct {
	MemberID       uuid.UUID `gorm:"column:member_id;type:uuid;default:gen_random_uuid();primaryKey" json:"member_id"`
	MemberMahallID string    `gorm:"column:member_mahall_id;size:30;index" json:"member_mahall_id"`
	MemberName     string    `gorm:"column:member_name;size:100;not null" json:"member_name"`
	MemberPhone    string    `gorm:"column:member_phone;size:20" json:"member_phone"`

	MemberFamilyName string `gorm:"column:member_family_name;size:100" json:"member_family_name"`

	MemberStatus string `gorm:"column:member_status;type:varchar(10);not null;default:'active'" json:"member_status"`

	MemberTenantID uuid.UUID `gorm:"column:member_tenant_id;type:uuid;not null;index" json:"member_tenant_id"`
	MemberFamilyID uuid.UUID `gorm:"column:member_family_id;type:uuid;not null;index" json:"member_family_id"`

	MemberCreatedAt time.Time `gorm:"column:member_created_at;autoCreateTime" json:"member_created_at"`
	MemberUpdatedAt time.Time `gorm:"column:member_updated_at;autoUpdateTime" json:"member_updated_at"`
}

func (MemberModel) TableName() string {
	return "members"
}

// ValidMemberStatus: enumerasi status yang diterima endpoint.
func ValidMemberStatus(s string) bool {
	switch s {
	case MemberStatusActive, MemberStatusInactive, MemberStatusDeleted:
		return true
	}
	return false
}
