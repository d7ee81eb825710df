package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	TenantStatusActive    = "active"
	TenantStatusSuspended = "suspended"
	TenantStatusInactive  = "inactive"
)

// TenantModel: batas isolasi data. Semua entitas lain menyimpan
// tenant reference ke tabel ini.
type TenantModel struct {
	TenantID     uuid.UUID `gorm:"column:tenant_id;type:uuid;default:gen_random_uuid();primaryKey" json:"tenant_id"`
	TenantCode   string    `gorm:"column:tenant_code;size:30;unique;not null" json:"tenant_code"`
	TenantName   string    `gorm:"column:tenant_name;size:100;not null" json:"tenant_name"`
	TenantStatus string    `gorm:"column:tenant_status;type:varchar(10);not null;default:'active'" json:"tenant_status"`

	// Setting bebas per tenant: default nominal iuran, tabel grade, dst.
	TenantSettings datatypes.JSON `gorm:"column:tenant_settings;type:jsonb" json:"tenant_settings,omitempty"`

	// Modul dashboard yang diaktifkan
	TenantModules pq.StringArray `gorm:"column:tenant_modules;type:text[]" json:"tenant_modules,omitempty"`

	TenantCreatedAt time.Time `gorm:"column:tenant_created_at;autoCreateTime" json:"tenant_created_at"`
	TenantUpdatedAt time.Time `gorm:"column:tenant_updated_at;autoUpdateTime" json:"tenant_updated_at"`
}

func (TenantModel) TableName() string {
	return "tenants"
}
