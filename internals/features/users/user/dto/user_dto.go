package dto

import (
	"strings"

	"github.com/google/uuid"

	"mahallku_backend/internals/constants"
	"mahallku_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateUserRequest — create by admin/super.
// Role member wajib menyebut member_id; phone kosong akan disalin dari
// member tertaut.
type CreateUserRequest struct {
	UserFullName string     `json:"user_full_name" validate:"omitempty,min=2,max=100"`
	UserPhone    string     `json:"user_phone" validate:"omitempty,min=8,max=20"`
	Password     string     `json:"password" validate:"required,min=6"`
	UserRole     string     `json:"user_role" validate:"required,oneof=super tenant_admin survey institute member"`
	MemberID     *uuid.UUID `json:"member_id,omitempty"`
	TenantID     *uuid.UUID `json:"tenantId,omitempty"` // hanya dipakai super

	UserCanView   *bool `json:"user_can_view,omitempty"`
	UserCanAdd    *bool `json:"user_can_add,omitempty"`
	UserCanEdit   *bool `json:"user_can_edit,omitempty"`
	UserCanDelete *bool `json:"user_can_delete,omitempty"`
}

func (r *CreateUserRequest) Normalize() {
	r.UserFullName = strings.TrimSpace(r.UserFullName)
	r.UserPhone = strings.TrimSpace(r.UserPhone)
	r.UserRole = strings.TrimSpace(r.UserRole)
}

// ToModel — untuk role NON-member (role member lewat linkage service).
// Ingat: hash password di controller.
func (r *CreateUserRequest) ToModel() *model.UserModel {
	role, _ := constants.ParseRole(r.UserRole)
	m := &model.UserModel{
		UserFullName: r.UserFullName,
		UserPhone:    r.UserPhone,
		UserRole:     role,
		UserStatus:   model.UserStatusActive,
		UserCanView:  true,
	}
	if r.UserCanView != nil {
		m.UserCanView = *r.UserCanView
	}
	if r.UserCanAdd != nil {
		m.UserCanAdd = *r.UserCanAdd
	}
	if r.UserCanEdit != nil {
		m.UserCanEdit = *r.UserCanEdit
	}
	if r.UserCanDelete != nil {
		m.UserCanDelete = *r.UserCanDelete
	}
	return m
}

// UpdateUserRequest — partial update profil & permission (status lewat
// endpoint sendiri).
type UpdateUserRequest struct {
	UserFullName *string `json:"user_full_name,omitempty" validate:"omitempty,min=2,max=100"`
	UserPhone    *string `json:"user_phone,omitempty" validate:"omitempty,min=8,max=20"`
	Password     *string `json:"password,omitempty" validate:"omitempty,min=6"`

	UserCanView   *bool `json:"user_can_view,omitempty"`
	UserCanAdd    *bool `json:"user_can_add,omitempty"`
	UserCanEdit   *bool `json:"user_can_edit,omitempty"`
	UserCanDelete *bool `json:"user_can_delete,omitempty"`
}

func (r *UpdateUserRequest) Normalize() {
	if r.UserFullName != nil {
		v := strings.TrimSpace(*r.UserFullName)
		r.UserFullName = &v
	}
	if r.UserPhone != nil {
		v := strings.TrimSpace(*r.UserPhone)
		r.UserPhone = &v
	}
}

func (r *UpdateUserRequest) ApplyToModel(m *model.UserModel) {
	if r.UserFullName != nil && *r.UserFullName != "" {
		m.UserFullName = *r.UserFullName
	}
	if r.UserPhone != nil && *r.UserPhone != "" {
		m.UserPhone = *r.UserPhone
	}
	if r.UserCanView != nil {
		m.UserCanView = *r.UserCanView
	}
	if r.UserCanAdd != nil {
		m.UserCanAdd = *r.UserCanAdd
	}
	if r.UserCanEdit != nil {
		m.UserCanEdit = *r.UserCanEdit
	}
	if r.UserCanDelete != nil {
		m.UserCanDelete = *r.UserCanDelete
	}
}

// UpdateUserStatusRequest — body PATCH /users/:id/status
type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}
