package model

import (
	"time"

	"github.com/google/uuid"

	"mahallku_backend/internals/constants"
)

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// UserModel merepresentasikan tabel users di database.
// Phone unik per tenant (index komposit); untuk role super tenant_id NULL
// dan keunikan phone dicek global di service.
type UserModel struct {
	UserID       uuid.UUID      `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`
	UserFullName string         `gorm:"column:user_full_name;size:100;not null" json:"user_full_name"`
	UserPhone    string         `gorm:"column:user_phone;size:20;not null;uniqueIndex:idx_users_tenant_phone" json:"user_phone"`
	UserPassword string         `gorm:"column:user_password;not null" json:"-"`
	UserRole     constants.Role `gorm:"column:user_role;type:varchar(20);not null" json:"user_role"`
	UserStatus   string         `gorm:"column:user_status;type:varchar(10);not null;default:'active'" json:"user_status"`

	// NULL hanya untuk role super
	UserTenantID *uuid.UUID `gorm:"column:user_tenant_id;type:uuid;uniqueIndex:idx_users_tenant_phone" json:"user_tenant_id,omitempty"`

	// Terisi hanya untuk role member → tepat satu member per user
	UserMemberID *uuid.UUID `gorm:"column:user_member_id;type:uuid;index" json:"user_member_id,omitempty"`

	// Flag permission dashboard
	UserCanView   bool `gorm:"column:user_can_view;not null;default:true" json:"user_can_view"`
	UserCanAdd    bool `gorm:"column:user_can_add;not null;default:false" json:"user_can_add"`
	UserCanEdit   bool `gorm:"column:user_can_edit;not null;default:false" json:"user_can_edit"`
	UserCanDelete bool `gorm:"column:user_can_delete;not null;default:false" json:"user_can_delete"`

	UserCreatedAt time.Time `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// IsMemberRole true kalau user ini akun tertaut member.
func (u *UserModel) IsMemberRole() bool {
	return u.UserRole == constants.RoleMember
}
