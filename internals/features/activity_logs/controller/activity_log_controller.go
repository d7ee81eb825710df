package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mahallku_backend/internals/features/activity_logs/model"
	helper "mahallku_backend/internals/helpers"
	"mahallku_backend/internals/middlewares/tenantctx"
)

type ActivityLogController struct {
	DB *gorm.DB
}

func NewActivityLogController(db *gorm.DB) *ActivityLogController {
	return &ActivityLogController{DB: db}
}

// 🔵 LIST — GET /api/a/activity-logs
// Satu-satunya jalan baca log; entitas yang dicatat tidak pernah
// menautkan log-nya sendiri.
func (ac *ActivityLogController) GetActivityLogs(c *fiber.Ctx) error {
	scope := tenantctx.FromCtx(c)
	paging := helper.ResolvePaging(c, 50, 500)

	q := ac.DB.WithContext(c.UserContext()).
		Model(&model.ActivityLogModel{}).
		Scopes(scope.Filter("log_tenant_id"))

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("log_entity = ?", entity)
	}
	if action := c.Query("action"); action != "" {
		q = q.Where("log_action = ?", action)
	}
	if actor := c.Query("actor_id"); actor != "" {
		q = q.Where("log_actor_id = ?", actor)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var logs []model.ActivityLogModel
	if err := q.Order("log_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&logs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca activity log")
	}

	return helper.JsonList(c, logs, helper.BuildPagination(paging, total))
}
