package controller

import (
	"bytes"
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mahallku_backend/internals/middlewares/tenantctx"
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

// newAdminApp memasang locals seolah admin tenant sudah lewat auth,
// lalu resolver scope seperti di route admin.
func newAdminApp(db *gorm.DB, tenantID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", "tenant_admin")
		c.Locals("tenant_id", tenantID.String())
		return c.Next()
	})
	app.Use(tenantctx.Resolve())

	ctrl := NewUserController(db)
	app.Put("/api/a/users/:id", ctrl.UpdateUser)
	return app
}

func existingUserRows(userID, tenantID uuid.UUID, phone string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"user_id", "user_tenant_id", "user_full_name", "user_phone", "user_role", "user_status",
	}).AddRow(userID, tenantID, "Staff Lama", phone, "survey", "active")
}

func putJSON(t *testing.T, app *fiber.App, path, payload string) int {
	t.Helper()

	req := httptest.NewRequest("PUT", path, bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestUpdateUserPhone(t *testing.T) {
	t.Run("phone bentrok di tenant → 409, bukan meledak di index", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()

		tenantID := uuid.New()
		userID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE user_id = \$1`).
			WithArgs(userID, 1).
			WillReturnRows(existingUserRows(userID, tenantID, "08110000"))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
			WithArgs("08990000", userID, tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		app := newAdminApp(db, tenantID)
		status := putJSON(t, app, "/api/a/users/"+userID.String(), `{"user_phone":"08990000"}`)

		assert.Equal(t, fiber.StatusConflict, status)
		// tanpa ekspektasi UPDATE: bentrok tidak boleh sampai Save
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("phone baru bebas → tersimpan", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()

		tenantID := uuid.New()
		userID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE user_id = \$1`).
			WithArgs(userID, 1).
			WillReturnRows(existingUserRows(userID, tenantID, "08110000"))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
			WithArgs("08990000", userID, tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		app := newAdminApp(db, tenantID)
		status := putJSON(t, app, "/api/a/users/"+userID.String(), `{"user_phone":"08990000"}`)

		assert.Equal(t, fiber.StatusOK, status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("phone tidak berubah → tanpa cek unik", func(t *testing.T) {
		db, mock, raw := newMockDB(t)
		defer raw.Close()

		tenantID := uuid.New()
		userID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE user_id = \$1`).
			WithArgs(userID, 1).
			WillReturnRows(existingUserRows(userID, tenantID, "08110000"))
		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		app := newAdminApp(db, tenantID)
		status := putJSON(t, app, "/api/a/users/"+userID.String(), `{"user_full_name":"Staff Baru"}`)

		assert.Equal(t, fiber.StatusOK, status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
