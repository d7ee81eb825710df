package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mahallku_backend/internals/features/mahall/members/model"
	userModel "mahallku_backend/internals/features/users/user/model"
)

func memberRows(memberID, tenantID uuid.UUID, status, phone string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"member_id", "member_tenant_id", "member_name", "member_phone", "member_status"}).
		AddRow(memberID, tenantID, "Abdul Karim", phone, status)
}

func userRows(userID, memberID uuid.UUID, role, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"user_id", "user_member_id", "user_role", "user_status"}).
		AddRow(userID, memberID, role, status)
}

func TestCreateMemberUser(t *testing.T) {
	ctx := context.Background()

	t.Run("member tidak ada → ErrMemberNotFound", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()
		svc := NewLinkageService(db)

		memberID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "members" WHERE member_id = \$1`).
			WithArgs(memberID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"member_id"}))

		_, err := svc.CreateMemberUser(ctx, uuid.New(), memberID, CreateMemberUserInput{})
		assert.ErrorIs(t, err, ErrMemberNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tenant beda → ditolak tanpa insert", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()
		svc := NewLinkageService(db)

		memberID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "members"`).
			WithArgs(memberID, 1).
			WillReturnRows(memberRows(memberID, uuid.New(), model.MemberStatusActive, "0811"))

		_, err := svc.CreateMemberUser(ctx, uuid.New(), memberID, CreateMemberUserInput{})
		assert.ErrorIs(t, err, ErrTenantMismatch)
		// ExpectationsWereMet memastikan tidak ada query lanjutan (count/insert)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("member sudah punya akun → ErrMemberAlreadyLinked", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()
		svc := NewLinkageService(db)

		tenantID := uuid.New()
		memberID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "members"`).
			WithArgs(memberID, 1).
			WillReturnRows(memberRows(memberID, tenantID, model.MemberStatusActive, "0811"))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE user_member_id = \$1 AND user_role = \$2`).
			WithArgs(memberID, "member").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		_, err := svc.CreateMemberUser(ctx, tenantID, memberID, CreateMemberUserInput{})
		assert.ErrorIs(t, err, ErrMemberAlreadyLinked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("phone bentrok di tenant yang sama → ErrPhoneTaken", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()
		svc := NewLinkageService(db)

		tenantID := uuid.New()
		memberID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "members"`).
			WithArgs(memberID, 1).
			WillReturnRows(memberRows(memberID, tenantID, model.MemberStatusActive, "0811"))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE user_member_id`).
			WithArgs(memberID, "member").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE user_tenant_id = \$1 AND user_phone = \$2`).
			WithArgs(tenantID, "0899").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		_, err := svc.CreateMemberUser(ctx, tenantID, memberID, CreateMemberUserInput{Phone: "0899"})
		assert.ErrorIs(t, err, ErrPhoneTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sukses: phone fallback dari member, permission default view-only", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()
		svc := NewLinkageService(db)

		tenantID := uuid.New()
		memberID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "members"`).
			WithArgs(memberID, 1).
			WillReturnRows(memberRows(memberID, tenantID, model.MemberStatusActive, "0811"))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE user_member_id`).
			WithArgs(memberID, "member").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE user_tenant_id`).
			WithArgs(tenantID, "0811").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`INSERT INTO "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(uuid.New()))

		user, err := svc.CreateMemberUser(ctx, tenantID, memberID, CreateMemberUserInput{PasswordHash: "$2a$hash"})
		require.NoError(t, err)

		assert.Equal(t, "0811", user.UserPhone)
		assert.Equal(t, "Abdul Karim", user.UserFullName) // fallback nama member
		assert.True(t, user.UserCanView)
		assert.False(t, user.UserCanAdd)
		assert.False(t, user.UserCanEdit)
		assert.False(t, user.UserCanDelete)
		require.NotNil(t, user.UserMemberID)
		assert.Equal(t, memberID, *user.UserMemberID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateMemberStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("status tidak dikenal → ErrInvalidStatus tanpa query", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()
		svc := NewLinkageService(db)

		_, err := svc.UpdateMemberStatus(ctx, uuid.New(), "archived")
		assert.ErrorIs(t, err, ErrInvalidStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inactive → akun tertaut ikut inactive", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()
		svc := NewLinkageService(db)

		memberID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "members"`).
			WithArgs(memberID, 1).
			WillReturnRows(memberRows(memberID, uuid.New(), model.MemberStatusActive, "0811"))
		mock.ExpectExec(`UPDATE "members" SET`).
			WithArgs(model.MemberStatusInactive, sqlmock.AnyArg(), memberID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "users" SET .* WHERE user_member_id = \$3 AND user_role = \$4`).
			WithArgs(userModel.UserStatusInactive, sqlmock.AnyArg(), memberID, "member").
			WillReturnResult(sqlmock.NewResult(0, 1))

		member, err := svc.UpdateMemberStatus(ctx, memberID, model.MemberStatusInactive)
		require.NoError(t, err)
		assert.Equal(t, model.MemberStatusInactive, member.MemberStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteMember = status deleted, akun jadi inactive", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()
		svc := NewLinkageService(db)

		memberID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "members"`).
			WithArgs(memberID, 1).
			WillReturnRows(memberRows(memberID, uuid.New(), model.MemberStatusActive, "0811"))
		mock.ExpectExec(`UPDATE "members" SET`).
			WithArgs(model.MemberStatusDeleted, sqlmock.AnyArg(), memberID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "users" SET`).
			WithArgs(userModel.UserStatusInactive, sqlmock.AnyArg(), memberID, "member").
			WillReturnResult(sqlmock.NewResult(0, 1))

		member, err := svc.DeleteMember(ctx, memberID)
		require.NoError(t, err)
		assert.Equal(t, model.MemberStatusDeleted, member.MemberStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cascade gagal: status member TETAP tersimpan, error tetap naik", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()
		svc := NewLinkageService(db)

		memberID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "members"`).
			WithArgs(memberID, 1).
			WillReturnRows(memberRows(memberID, uuid.New(), model.MemberStatusActive, "0811"))
		mock.ExpectExec(`UPDATE "members" SET`).
			WithArgs(model.MemberStatusInactive, sqlmock.AnyArg(), memberID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnError(assert.AnError)

		member, err := svc.UpdateMemberStatus(ctx, memberID, model.MemberStatusInactive)
		require.Error(t, err)
		require.NotNil(t, member)
		assert.Equal(t, model.MemberStatusInactive, member.MemberStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateUserStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("user inactive → member ikut inactive", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()
		svc := NewLinkageService(db)

		userID := uuid.New()
		memberID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE user_id = \$1`).
			WithArgs(userID, 1).
			WillReturnRows(userRows(userID, memberID, "member", userModel.UserStatusActive))
		mock.ExpectExec(`UPDATE "users" SET`).
			WithArgs(userModel.UserStatusInactive, sqlmock.AnyArg(), userID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "members" SET .* WHERE member_id = \$3`).
			WithArgs(model.MemberStatusInactive, sqlmock.AnyArg(), memberID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		user, err := svc.UpdateUserStatus(ctx, userID, userModel.UserStatusInactive)
		require.NoError(t, err)
		assert.Equal(t, userModel.UserStatusInactive, user.UserStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("user active hanya menghidupkan member yang inactive", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()
		svc := NewLinkageService(db)

		userID := uuid.New()
		memberID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WithArgs(userID, 1).
			WillReturnRows(userRows(userID, memberID, "member", userModel.UserStatusInactive))
		mock.ExpectExec(`UPDATE "users" SET`).
			WithArgs(userModel.UserStatusActive, sqlmock.AnyArg(), userID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		// guard member_status = inactive di WHERE: member deleted tidak tersentuh
		mock.ExpectExec(`UPDATE "members" SET .* WHERE member_id = \$3 AND member_status = \$4`).
			WithArgs(model.MemberStatusActive, sqlmock.AnyArg(), memberID, model.MemberStatusInactive).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := svc.UpdateUserStatus(ctx, userID, userModel.UserStatusActive)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("role non-member tidak punya cascade", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()
		svc := NewLinkageService(db)

		userID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WithArgs(userID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "user_role", "user_status"}).
				AddRow(userID, "tenant_admin", userModel.UserStatusActive))
		mock.ExpectExec(`UPDATE "users" SET`).
			WithArgs(userModel.UserStatusInactive, sqlmock.AnyArg(), userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		_, err := svc.UpdateUserStatus(ctx, userID, userModel.UserStatusInactive)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("akun member: user inactive, member DELETED", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()
		svc := NewLinkageService(db)

		userID := uuid.New()
		memberID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WithArgs(userID, 1).
			WillReturnRows(userRows(userID, memberID, "member", userModel.UserStatusActive))
		mock.ExpectExec(`UPDATE "users" SET`).
			WithArgs(userModel.UserStatusInactive, sqlmock.AnyArg(), userID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "members" SET`).
			WithArgs(model.MemberStatusDeleted, sqlmock.AnyArg(), memberID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		user, err := svc.DeleteUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, userModel.UserStatusInactive, user.UserStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("akun non-member: hanya user yang dinonaktifkan", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()
		svc := NewLinkageService(db)

		userID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WithArgs(userID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "user_role", "user_status"}).
				AddRow(userID, "survey", userModel.UserStatusActive))
		mock.ExpectExec(`UPDATE "users" SET`).
			WithArgs(userModel.UserStatusInactive, sqlmock.AnyArg(), userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		_, err := svc.DeleteUser(ctx, userID)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
