// internals/middlewares/audit/audit_middleware.go
//
// Interceptor aktivitas best-effort. Membungkus seluruh request, mencatat
// SETELAH response siap, dan menyerahkan record ke Recorder tanpa blokir —
// response caller tidak pernah diubah atau ditunda oleh pencatatan.
package audit

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	logModel "mahallku_backend/internals/features/activity_logs/model"
	logService "mahallku_backend/internals/features/activity_logs/service"
	"mahallku_backend/internals/middlewares/tenantctx"
)

// Path yang tidak pernah dicatat (health check & jalur kredensial).
var skipPaths = map[string]struct{}{
	"/health":              {},
	"/api/auth/login":      {},
	"/api/auth/verify-otp": {},
}

func AuditMiddleware(recorder *logService.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		// body harus disalin sebelum Next — buffer fasthttp dipakai ulang
		reqBody := append([]byte(nil), c.Body()...)
		start := time.Now()

		err := c.Next()

		// error handler fiber belum jalan di titik ini; pakai status dari
		// response, fallback dari *fiber.Error
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		rec := buildRecord(c, reqBody, status, time.Since(start))
		recorder.Enqueue(rec)

		return err
	}
}

func buildRecord(c *fiber.Ctx, reqBody []byte, status int, elapsed time.Duration) *logModel.ActivityLogModel {
	action, entity := DeriveAction(c.Method(), c.Path())
	sanitized, redacted := SanitizeBody(reqBody)

	rec := &logModel.ActivityLogModel{
		LogAction:         action,
		LogEntity:         entity,
		LogEntityID:       ParseEntityID(c.Params("id"), reqBody),
		LogMethod:         c.Method(),
		LogPath:           c.Path(),
		LogIP:             CallerIP(c.Get("X-Forwarded-For"), c.Get("X-Real-IP"), c.IP()),
		LogUserAgent:      c.Get("User-Agent"),
		LogStatusCode:     status,
		LogDurationMS:     elapsed.Milliseconds(),
		LogRedactedFields: redacted,
	}
	if sanitized != nil {
		rec.LogRequestBody = datatypes.JSON(sanitized)
	}
	if outcome := SummarizeOutcome(status, c.Response().Body()); outcome != nil {
		rec.LogOutcome = datatypes.JSON(outcome)
	}

	// actor dari auth middleware; id rusak dibuang, bukan error
	if raw, ok := c.Locals("user_id").(string); ok {
		if id, err := uuid.Parse(raw); err == nil {
			rec.LogActorID = &id
		}
	}

	// tenant dari scope hasil resolver (sudah bentuk kanonik)
	if scope := tenantctx.FromCtx(c); scope.TenantID != nil {
		rec.LogTenantID = scope.TenantID
	}

	return rec
}
