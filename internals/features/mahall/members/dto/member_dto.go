package dto

import (
	"strings"

	"github.com/google/uuid"

	"mahallku_backend/internals/features/mahall/members/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateMemberRequest — mahall id & nama family diisi server dari family
// induk, bukan dari klien.
type CreateMemberRequest struct {
	MemberName  string    `json:"member_name" validate:"required,min=2,max=100"`
	MemberPhone string    `json:"member_phone" validate:"omitempty,min=8,max=20"`
	FamilyID    uuid.UUID `json:"family_id" validate:"required"`
}

func (r *CreateMemberRequest) Normalize() {
	r.MemberName = strings.TrimSpace(r.MemberName)
	r.MemberPhone = strings.TrimSpace(r.MemberPhone)
}

func (r *CreateMemberRequest) ToModel() *model.MemberModel {
	return &model.MemberModel{
		MemberName:   r.MemberName,
		MemberPhone:  r.MemberPhone,
		MemberStatus: model.MemberStatusActive,
	}
}

// UpdateMemberRequest — partial update data diri (status lewat endpoint
// sendiri supaya cascade-nya jelas).
type UpdateMemberRequest struct {
	MemberName  *string `json:"member_name,omitempty" validate:"omitempty,min=2,max=100"`
	MemberPhone *string `json:"member_phone,omitempty" validate:"omitempty,min=8,max=20"`
}

func (r *UpdateMemberRequest) Normalize() {
	if r.MemberName != nil {
		v := strings.TrimSpace(*r.MemberName)
		r.MemberName = &v
	}
	if r.MemberPhone != nil {
		v := strings.TrimSpace(*r.MemberPhone)
		r.MemberPhone = &v
	}
}

func (r *UpdateMemberRequest) ApplyToModel(m *model.MemberModel) {
	if r.MemberName != nil && *r.MemberName != "" {
		m.MemberName = *r.MemberName
	}
	if r.MemberPhone != nil {
		m.MemberPhone = *r.MemberPhone
	}
}

// UpdateMemberStatusRequest — body PATCH /members/:id/status
type UpdateMemberStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive deleted"`
}
