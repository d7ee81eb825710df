package dto

import (
	"strings"

	"github.com/google/uuid"

	"mahallku_backend/internals/features/mahall/families/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateFamilyRequest — mahall id TIDAK diterima dari klien, selalu
// dialokasikan server saat insert.
type CreateFamilyRequest struct {
	FamilyName      string     `json:"family_name" validate:"required,min=2,max=100"`
	FamilyHouseName string     `json:"family_house_name" validate:"omitempty,max=100"`
	FamilyAddress   string     `json:"family_address" validate:"omitempty,max=255"`
	FamilyPlace     string     `json:"family_place" validate:"omitempty,max=100"`
	FamilyPincode   string     `json:"family_pincode" validate:"omitempty,max=10"`
	FamilyStatus    string     `json:"family_status" validate:"omitempty,oneof=approved unapproved pending"`
	TenantID        *uuid.UUID `json:"tenantId,omitempty"` // hanya dipakai super
}

func (r *CreateFamilyRequest) Normalize() {
	r.FamilyName = strings.TrimSpace(r.FamilyName)
	r.FamilyHouseName = strings.TrimSpace(r.FamilyHouseName)
	r.FamilyAddress = strings.TrimSpace(r.FamilyAddress)
	r.FamilyPlace = strings.TrimSpace(r.FamilyPlace)
	r.FamilyPincode = strings.TrimSpace(r.FamilyPincode)
}

func (r *CreateFamilyRequest) ToModel() *model.FamilyModel {
	m := &model.FamilyModel{
		FamilyName:      r.FamilyName,
		FamilyHouseName: r.FamilyHouseName,
		FamilyAddress:   r.FamilyAddress,
		FamilyPlace:     r.FamilyPlace,
		FamilyPincode:   r.FamilyPincode,
		FamilyStatus:    model.FamilyStatusPending,
	}
	if r.FamilyStatus != "" {
		m.FamilyStatus = r.FamilyStatus
	}
	return m
}

// UpdateFamilyRequest — partial update (pointer untuk bedakan omit vs null)
type UpdateFamilyRequest struct {
	FamilyName      *string `json:"family_name,omitempty" validate:"omitempty,min=2,max=100"`
	FamilyHouseName *string `json:"family_house_name,omitempty" validate:"omitempty,max=100"`
	FamilyAddress   *string `json:"family_address,omitempty" validate:"omitempty,max=255"`
	FamilyPlace     *string `json:"family_place,omitempty" validate:"omitempty,max=100"`
	FamilyPincode   *string `json:"family_pincode,omitempty" validate:"omitempty,max=10"`
	FamilyStatus    *string `json:"family_status,omitempty" validate:"omitempty,oneof=approved unapproved pending"`
}

func (r *UpdateFamilyRequest) Normalize() {
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		return &v
	}
	r.FamilyName = trim(r.FamilyName)
	r.FamilyHouseName = trim(r.FamilyHouseName)
	r.FamilyAddress = trim(r.FamilyAddress)
	r.FamilyPlace = trim(r.FamilyPlace)
	r.FamilyPincode = trim(r.FamilyPincode)
}

// ApplyToModel menyalin field yang dikirim saja.
func (r *UpdateFamilyRequest) ApplyToModel(m *model.FamilyModel) {
	if r.FamilyName != nil && *r.FamilyName != "" {
		m.FamilyName = *r.FamilyName
	}
	if r.FamilyHouseName != nil {
		m.FamilyHouseName = *r.FamilyHouseName
	}
	if r.FamilyAddress != nil {
		m.FamilyAddress = *r.FamilyAddress
	}
	if r.FamilyPlace != nil {
		m.FamilyPlace = *r.FamilyPlace
	}
	if r.FamilyPincode != nil {
		m.FamilyPincode = *r.FamilyPincode
	}
	if r.FamilyStatus != nil && *r.FamilyStatus != "" {
		m.FamilyStatus = *r.FamilyStatus
	}
}
