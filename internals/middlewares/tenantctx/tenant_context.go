// internals/middlewares/tenantctx/tenant_context.go
//
// Resolver scope tenant. Jalan setelah auth middleware, sebelum handler
// resource. Hasilnya satu nilai Scope eksplisit di Locals — handler ambil
// lewat FromCtx lalu pasang sendiri ke query/tulisan, tidak ada mutasi
// diam-diam terhadap request.
package tenantctx

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"mahallku_backend/internals/constants"
)

const localsKey = "tenant_scope"

// Scope adalah hasil resolusi: tenant efektif (nil = unscoped, lihat semua
// tenant — hanya berarti untuk super) + flag elevated.
type Scope struct {
	TenantID *uuid.UUID
	Elevated bool
}

// Resolve menurunkan Scope dari claim aktor + hint eksplisit.
// Urutan prioritas hint: header x-tenant-id → query tenantId → body tenantId.
//
//  1. super: Elevated=true; hint ada → TenantID=hint (impersonasi view),
//     tidak ada → nil (unscoped).
//  2. aktor ber-tenant: TenantID=tenant aktor, hint DIABAIKAN (tidak bisa
//     keluar dari tenant sendiri).
//  3. sisanya (anomali: tanpa tenant, bukan super): pakai hint kalau ada.
//
// Tidak pernah gagal — tanpa scope bukan error.
func Resolve() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope := Scope{}

		roleRaw, _ := c.Locals("role").(string)
		role, hasRole := constants.ParseRole(roleRaw)

		actorTenant := parseUUIDPtr(localString(c, "tenant_id"))
		hint := explicitHint(c)

		switch {
		case hasRole && role.IsElevated():
			scope.Elevated = true
			scope.TenantID = hint
		case actorTenant != nil:
			scope.TenantID = actorTenant
		default:
			scope.TenantID = hint
		}

		c.Locals(localsKey, scope)
		return c.Next()
	}
}

// FromCtx mengambil Scope hasil Resolve; zero value kalau middleware
// belum terpasang (unscoped, non-elevated).
func FromCtx(c *fiber.Ctx) Scope {
	if s, ok := c.Locals(localsKey).(Scope); ok {
		return s
	}
	return Scope{}
}

/* ======== Pemakaian di handler ======== */

// Filter mengembalikan gorm scope: WHERE <column> = tenant efektif.
// No-op saat unscoped (super tanpa hint).
func (s Scope) Filter(column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if s.TenantID == nil {
			return db
		}
		return db.Where(column+" = ?", *s.TenantID)
	}
}

// EffectiveTenant menentukan tenant target sebuah tulisan.
// Aktor ber-tenant selalu dipaksa ke tenant-nya sendiri; super boleh
// menyebut tenant di body (fallback ke hint scope).
func (s Scope) EffectiveTenant(bodyTenant *uuid.UUID) *uuid.UUID {
	if !s.Elevated && s.TenantID != nil {
		return s.TenantID
	}
	if bodyTenant != nil {
		return bodyTenant
	}
	return s.TenantID
}

// Owns cek apakah scope ini boleh menyentuh record milik tenant tertentu.
func (s Scope) Owns(tenantID uuid.UUID) bool {
	if s.Elevated {
		return true
	}
	return s.TenantID != nil && *s.TenantID == tenantID
}

/* ======== internal ======== */

func explicitHint(c *fiber.Ctx) *uuid.UUID {
	if v := strings.TrimSpace(c.Get("x-tenant-id")); v != "" {
		if id := parseUUIDPtr(v); id != nil {
			return id
		}
	}
	if v := strings.TrimSpace(c.Query("tenantId")); v != "" {
		if id := parseUUIDPtr(v); id != nil {
			return id
		}
	}
	// body hanya dibaca untuk method bertubuh
	switch c.Method() {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		var body struct {
			TenantID string `json:"tenantId"`
		}
		if err := c.BodyParser(&body); err == nil {
			if id := parseUUIDPtr(strings.TrimSpace(body.TenantID)); id != nil {
				return id
			}
		}
	}
	return nil
}

func localString(c *fiber.Ctx, key string) string {
	v, _ := c.Locals(key).(string)
	return v
}

func parseUUIDPtr(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
