package service

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	familyModel "mahallku_backend/internals/features/mahall/families/model"
	"mahallku_backend/internals/features/mahall/members/model"
)

// NextMemberMahallID menghitung <familyMahallID>-<k>, k = jumlah member
// yang pernah dibuat di family itu + 1 (termasuk yang berstatus deleted —
// posisi urutan tidak pernah dipakai ulang).
//
// Family tanpa mahall id (data lama sebelum penomoran ada) → member tidak
// mendapat id, bukan error.
//
// Dipanggil di dalam transaksi insert; baris family induk dikunci FOR
// UPDATE supaya hitungan tidak balapan dengan create member lain.
func NextMemberMahallID(tx *gorm.DB, fam *familyModel.FamilyModel) (string, error) {
	if fam.FamilyMahallID == "" {
		return "", nil
	}

	var locked familyModel.FamilyModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("family_id = ?", fam.FamilyID).
		First(&locked).Error; err != nil {
		return "", err
	}

	var count int64
	if err := tx.Model(&model.MemberModel{}).
		Where("member_family_id = ?", fam.FamilyID).
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%d", fam.FamilyMahallID, count+1), nil
}

// CreateMember mengalokasikan mahall id + menyalin nama family
// (denormalisasi) lalu insert dalam satu transaksi.
func CreateMember(db *gorm.DB, fam *familyModel.FamilyModel, m *model.MemberModel) error {
	return db.Transaction(func(tx *gorm.DB) error {
		mahallID, err := NextMemberMahallID(tx, fam)
		if err != nil {
			return err
		}
		m.MemberMahallID = mahallID
		m.MemberFamilyName = fam.FamilyName
		m.MemberFamilyID = fam.FamilyID
		m.MemberTenantID = fam.FamilyTenantID
		return tx.Create(m).Error
	})
}
