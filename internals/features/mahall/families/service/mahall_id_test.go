package service

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mahallku_backend/internals/features/mahall/families/model"
)

// newMockDB membuat *gorm.DB postgres di atas koneksi sqlmock.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func familyRows(mahallID string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"family_id", "family_mahall_id", "family_name", "family_tenant_id"}).
		AddRow(uuid.New(), mahallID, "Keluarga Uji", uuid.New())
}

func expectTenantLock(mock sqlmock.Sqlmock, tenantID uuid.UUID) {
	mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE tenant_id = \$1.*FOR UPDATE`).
		WithArgs(tenantID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"tenant_id", "tenant_code"}).
			AddRow(tenantID, "MHL01"))
}

func TestParseFamilyMahallID(t *testing.T) {
	tests := []struct {
		in     string
		wantN  int
		wantOK bool
	}{
		{"FID1", 1, true},
		{"FID42", 42, true},
		{"FID007", 7, true},
		{"", 0, false},
		{"FID", 0, false},
		{"FIDx", 0, false},
		{"fid9", 0, false},      // case-sensitive
		{"FID9-1", 0, false},    // id member, bukan family
		{"LEGACY-12", 0, false}, // format lama
	}

	for _, tt := range tests {
		n, ok := ParseFamilyMahallID(tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
		assert.Equal(t, tt.wantN, n, "input %q", tt.in)
	}
}

func TestNextFamilyMahallID(t *testing.T) {
	tenantID := uuid.New()

	t.Run("lanjut dari family terakhir", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()

		expectTenantLock(mock, tenantID)
		mock.ExpectQuery(`SELECT \* FROM "families" WHERE family_tenant_id = \$1 ORDER BY family_created_at DESC`).
			WithArgs(tenantID, 1).
			WillReturnRows(familyRows("FID7"))

		got, err := NextFamilyMahallID(db, tenantID)
		require.NoError(t, err)
		assert.Equal(t, "FID8", got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tenant kosong mulai dari 1", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()

		expectTenantLock(mock, tenantID)
		mock.ExpectQuery(`SELECT \* FROM "families"`).
			WithArgs(tenantID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		got, err := NextFamilyMahallID(db, tenantID)
		require.NoError(t, err)
		assert.Equal(t, "FID1", got)
	})

	t.Run("id lama rusak dianggap mulai dari 1, bukan error", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()

		expectTenantLock(mock, tenantID)
		mock.ExpectQuery(`SELECT \* FROM "families"`).
			WithArgs(tenantID, 1).
			WillReturnRows(familyRows("LEGACY-99"))

		got, err := NextFamilyMahallID(db, tenantID)
		require.NoError(t, err)
		assert.Equal(t, "FID1", got)
	})

	t.Run("alokasi + insert satu transaksi", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()

		mock.ExpectBegin()
		expectTenantLock(mock, tenantID)
		mock.ExpectQuery(`SELECT \* FROM "families"`).
			WithArgs(tenantID, 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectQuery(`INSERT INTO "families"`).
			WillReturnRows(sqlmock.NewRows([]string{"family_id"}).AddRow(uuid.New()))
		mock.ExpectCommit()

		fam := &model.FamilyModel{
			FamilyName:     "Keluarga Baru",
			FamilyStatus:   model.FamilyStatusPending,
			FamilyTenantID: tenantID,
		}
		err := CreateFamily(db, fam)
		require.NoError(t, err)
		assert.Equal(t, "FID1", fam.FamilyMahallID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("baris tenant induk dikunci, juga saat tenant belum punya family", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()

		// lock di baris family terakhir tidak cukup: tenant kosong tidak
		// punya baris untuk dikunci, dan insert dari transaksi lain tidak
		// kelihatan oleh read yang baru lepas dari antrean lock. Baris
		// tenant selalu ada — create bersamaan antre di situ.
		mock.ExpectQuery(`SELECT \* FROM "tenants".*FOR UPDATE`).
			WithArgs(tenantID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"tenant_id"}).AddRow(tenantID))
		mock.ExpectQuery(`SELECT \* FROM "families"`).
			WithArgs(tenantID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		got, err := NextFamilyMahallID(db, tenantID)
		require.NoError(t, err)
		assert.Equal(t, "FID1", got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tenant tidak ada → error, tanpa alokasi", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()

		mock.ExpectQuery(`SELECT \* FROM "tenants"`).
			WithArgs(tenantID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := NextFamilyMahallID(db, tenantID)
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
