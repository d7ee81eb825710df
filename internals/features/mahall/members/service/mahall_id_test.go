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

	familyModel "mahallku_backend/internals/features/mahall/families/model"
	"mahallku_backend/internals/features/mahall/members/model"
)

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

func testFamily(mahallID string) *familyModel.FamilyModel {
	return &familyModel.FamilyModel{
		FamilyID:       uuid.New(),
		FamilyMahallID: mahallID,
		FamilyName:     "Keluarga Uji",
		FamilyTenantID: uuid.New(),
	}
}

func TestNextMemberMahallID(t *testing.T) {
	t.Run("suffix = jumlah member + 1", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()

		fam := testFamily("FID7")

		mock.ExpectQuery(`SELECT \* FROM "families" WHERE family_id = \$1.*FOR UPDATE`).
			WithArgs(fam.FamilyID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"family_id", "family_mahall_id"}).
				AddRow(fam.FamilyID, fam.FamilyMahallID))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "members" WHERE member_family_id = \$1`).
			WithArgs(fam.FamilyID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		got, err := NextMemberMahallID(db, fam)
		require.NoError(t, err)
		assert.Equal(t, "FID7-4", got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("member pertama dapat -1", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()

		fam := testFamily("FID7")

		mock.ExpectQuery(`FOR UPDATE`).
			WithArgs(fam.FamilyID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"family_id"}).AddRow(fam.FamilyID))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "members"`).
			WithArgs(fam.FamilyID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		got, err := NextMemberMahallID(db, fam)
		require.NoError(t, err)
		assert.Equal(t, "FID7-1", got)
	})

	t.Run("family tanpa mahall id → member tanpa id, tanpa query", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()

		fam := testFamily("")

		got, err := NextMemberMahallID(db, fam)
		require.NoError(t, err)
		assert.Equal(t, "", got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateMember(t *testing.T) {
	t.Run("denormalisasi + tenant/family ref dari induk", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()

		fam := testFamily("FID2")

		mock.ExpectBegin()
		mock.ExpectQuery(`FOR UPDATE`).
			WithArgs(fam.FamilyID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"family_id"}).AddRow(fam.FamilyID))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "members"`).
			WithArgs(fam.FamilyID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`INSERT INTO "members"`).
			WillReturnRows(sqlmock.NewRows([]string{"member_id"}).AddRow(uuid.New()))
		mock.ExpectCommit()

		m := &model.MemberModel{MemberName: "Abdul", MemberStatus: model.MemberStatusActive}
		err := CreateMember(db, fam, m)
		require.NoError(t, err)

		assert.Equal(t, "FID2-2", m.MemberMahallID)
		assert.Equal(t, fam.FamilyName, m.MemberFamilyName)
		assert.Equal(t, fam.FamilyID, m.MemberFamilyID)
		assert.Equal(t, fam.FamilyTenantID, m.MemberTenantID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
