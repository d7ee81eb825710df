package tenantctx

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newScopeApp membangun app mini: pasang locals seolah sudah lewat auth,
// jalankan Resolve, lalu tangkap Scope yang dilihat handler.
func newScopeApp(role string, actorTenant *uuid.UUID, captured *Scope) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals("role", role)
		}
		if actorTenant != nil {
			c.Locals("tenant_id", actorTenant.String())
		}
		return c.Next()
	})
	app.Use(Resolve())
	app.All("/r", func(c *fiber.Ctx) error {
		*captured = FromCtx(c)
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestResolve(t *testing.T) {
	t.Run("super tanpa hint → unscoped elevated", func(t *testing.T) {
		var scope Scope
		app := newScopeApp("super", nil, &scope)

		req := httptest.NewRequest("GET", "/r", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.True(t, scope.Elevated)
		assert.Nil(t, scope.TenantID)
	})

	t.Run("super + x-tenant-id → impersonasi tenant itu", func(t *testing.T) {
		var scope Scope
		app := newScopeApp("super", nil, &scope)
		target := uuid.New()

		req := httptest.NewRequest("GET", "/r", nil)
		req.Header.Set("x-tenant-id", target.String())
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.True(t, scope.Elevated)
		require.NotNil(t, scope.TenantID)
		assert.Equal(t, target, *scope.TenantID)
	})

	t.Run("aktor ber-tenant: hint DIABAIKAN, terkunci di tenant sendiri", func(t *testing.T) {
		own := uuid.New()
		other := uuid.New()
		var scope Scope
		app := newScopeApp("tenant_admin", &own, &scope)

		req := httptest.NewRequest("GET", "/r?tenantId="+other.String(), nil)
		req.Header.Set("x-tenant-id", other.String())
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.False(t, scope.Elevated)
		require.NotNil(t, scope.TenantID)
		assert.Equal(t, own, *scope.TenantID)
	})

	t.Run("prioritas hint: header menang atas query", func(t *testing.T) {
		fromHeader := uuid.New()
		fromQuery := uuid.New()
		var scope Scope
		app := newScopeApp("super", nil, &scope)

		req := httptest.NewRequest("GET", "/r?tenantId="+fromQuery.String(), nil)
		req.Header.Set("x-tenant-id", fromHeader.String())
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.NotNil(t, scope.TenantID)
		assert.Equal(t, fromHeader, *scope.TenantID)
	})

	t.Run("hint dari body untuk method bertubuh", func(t *testing.T) {
		fromBody := uuid.New()
		var scope Scope
		app := newScopeApp("super", nil, &scope)

		body := bytes.NewBufferString(`{"tenantId":"` + fromBody.String() + `"}`)
		req := httptest.NewRequest("POST", "/r", body)
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.NotNil(t, scope.TenantID)
		assert.Equal(t, fromBody, *scope.TenantID)
	})

	t.Run("body DIABAIKAN pada GET", func(t *testing.T) {
		var scope Scope
		app := newScopeApp("super", nil, &scope)

		// httptest GET tanpa body; simulasinya cukup: tanpa hint manapun
		req := httptest.NewRequest("GET", "/r", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Nil(t, scope.TenantID)
	})

	t.Run("hint rusak bukan error, cuma diabaikan", func(t *testing.T) {
		var scope Scope
		app := newScopeApp("super", nil, &scope)

		req := httptest.NewRequest("GET", "/r", nil)
		req.Header.Set("x-tenant-id", "bukan-uuid")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Nil(t, scope.TenantID)
	})

	t.Run("tanpa auth sama sekali: scope kosong", func(t *testing.T) {
		var scope Scope
		app := newScopeApp("", nil, &scope)

		req := httptest.NewRequest("GET", "/r", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.False(t, scope.Elevated)
		assert.Nil(t, scope.TenantID)
	})
}

func TestScopeHelpers(t *testing.T) {
	tenantA := uuid.New()
	tenantB := uuid.New()

	t.Run("Owns", func(t *testing.T) {
		assert.True(t, Scope{Elevated: true}.Owns(tenantA))
		assert.True(t, Scope{TenantID: &tenantA}.Owns(tenantA))
		assert.False(t, Scope{TenantID: &tenantA}.Owns(tenantB))
		assert.False(t, Scope{}.Owns(tenantA))
	})

	t.Run("EffectiveTenant: aktor ber-tenant dipaksa ke tenantnya", func(t *testing.T) {
		s := Scope{TenantID: &tenantA}
		got := s.EffectiveTenant(&tenantB)
		require.NotNil(t, got)
		assert.Equal(t, tenantA, *got)
	})

	t.Run("EffectiveTenant: super pakai body, fallback hint", func(t *testing.T) {
		s := Scope{Elevated: true, TenantID: &tenantA}
		got := s.EffectiveTenant(&tenantB)
		require.NotNil(t, got)
		assert.Equal(t, tenantB, *got)

		got = s.EffectiveTenant(nil)
		require.NotNil(t, got)
		assert.Equal(t, tenantA, *got)
	})

	t.Run("EffectiveTenant: super tanpa apa-apa → nil", func(t *testing.T) {
		s := Scope{Elevated: true}
		assert.Nil(t, s.EffectiveTenant(nil))
	})
}
