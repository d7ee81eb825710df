package dto

import (
	"strings"

	"github.com/lib/pq"
	"gorm.io/datatypes"

	"mahallku_backend/internals/features/tenants/model"
)

type CreateTenantRequest struct {
	TenantCode     string         `json:"tenant_code" validate:"required,min=2,max=30,alphanum"`
	TenantName     string         `json:"tenant_name" validate:"required,min=2,max=100"`
	TenantSettings datatypes.JSON `json:"tenant_settings,omitempty"`
	TenantModules  []string       `json:"tenant_modules,omitempty"`
}

func (r *CreateTenantRequest) Normalize() {
	r.TenantCode = strings.ToLower(strings.TrimSpace(r.TenantCode))
	r.TenantName = strings.TrimSpace(r.TenantName)
}

func (r *CreateTenantRequest) ToModel() *model.TenantModel {
	return &model.TenantModel{
		TenantCode:     r.TenantCode,
		TenantName:     r.TenantName,
		TenantStatus:   model.TenantStatusActive,
		TenantSettings: r.TenantSettings,
		TenantModules:  pq.StringArray(r.TenantModules),
	}
}

type UpdateTenantRequest struct {
	TenantName     *string        `json:"tenant_name,omitempty" validate:"omitempty,min=2,max=100"`
	TenantSettings datatypes.JSON `json:"tenant_settings,omitempty"`
	TenantModules  []string       `json:"tenant_modules,omitempty"`
}

func (r *UpdateTenantRequest) ApplyToModel(m *model.TenantModel) {
	if r.TenantName != nil && strings.TrimSpace(*r.TenantName) != "" {
		m.TenantName = strings.TrimSpace(*r.TenantName)
	}
	if len(r.TenantSettings) > 0 {
		m.TenantSettings = r.TenantSettings
	}
	if r.TenantModules != nil {
		m.TenantModules = pq.StringArray(r.TenantModules)
	}
}

// UpdateTenantStatusRequest — suspend/activate/nonaktifkan tenant
type UpdateTenantStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended inactive"`
}
