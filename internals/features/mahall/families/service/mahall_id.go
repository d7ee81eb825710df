package service

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mahallku_backend/internals/features/mahall/families/model"
	tenantModel "mahallku_backend/internals/features/tenants/model"
)

// Pola mahall id family. Id lama yang tidak cocok pola dianggap tidak ada
// → penomoran mulai lagi dari 1, bukan error.
var fidPattern = regexp.MustCompile(`^FID(\d+)$`)

// NextFamilyMahallID menghitung FID<n> berikutnya untuk satu tenant:
// baca family yang paling baru dibuat, parse angkanya, +1.
//
// Harus dipanggil di dalam transaksi insert — baris TENANT induk yang
// dikunci FOR UPDATE (bukan family terakhir: baris itu bisa belum ada
// untuk tenant kosong, dan insert baru dari transaksi lain tidak kelihatan
// oleh read yang menunggu lock). Tenant selalu ada, jadi dua create
// bersamaan di tenant yang sama antre di satu baris yang sama.
func NextFamilyMahallID(tx *gorm.DB, tenantID uuid.UUID) (string, error) {
	var parent tenantModel.TenantModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ?", tenantID).
		First(&parent).Error; err != nil {
		return "", err
	}

	var last model.FamilyModel
	err := tx.
		Where("family_tenant_id = ?", tenantID).
		Order("family_created_at DESC").
		First(&last).Error

	n := 1
	switch {
	case err == nil:
		if parsed, ok := ParseFamilyMahallID(last.FamilyMahallID); ok {
			n = parsed + 1
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// family pertama di tenant ini
	default:
		return "", err
	}

	return fmt.Sprintf("FID%d", n), nil
}

// ParseFamilyMahallID membaca angka dari FID<n>; false kalau format lain.
func ParseFamilyMahallID(mahallID string) (int, bool) {
	m := fidPattern.FindStringSubmatch(mahallID)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// CreateFamily mengalokasikan mahall id lalu insert dalam satu transaksi.
func CreateFamily(db *gorm.DB, fam *model.FamilyModel) error {
	return db.Transaction(func(tx *gorm.DB) error {
		mahallID, err := NextFamilyMahallID(tx, fam.FamilyTenantID)
		if err != nil {
			return err
		}
		fam.FamilyMahallID = mahallID
		return tx.Create(fam).Error
	})
}
