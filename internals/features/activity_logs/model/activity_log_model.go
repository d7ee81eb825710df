package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ActivityLogModel: jejak aktivitas per request. Ditulis out-of-band oleh
// recorder — tidak pernah dibaca oleh alur request yang dicatatnya.
type ActivityLogModel struct {
	LogID uuid.UUID `gorm:"column:log_id;type:uuid;default:gen_random_uuid();primaryKey" json:"log_id"`

	// Minimal salah satu dari dua ini terisi; tanpa keduanya record
	// tidak disimpan (aktivitas anonim tidak dicatat).
	LogActorID  *uuid.UUID `gorm:"column:log_actor_id;type:uuid;index" json:"log_actor_id,omitempty"`
	LogTenantID *uuid.UUID `gorm:"column:log_tenant_id;type:uuid;index" json:"log_tenant_id,omitempty"`

	LogAction   string     `gorm:"column:log_action;size:50" json:"log_action"`   // contoh: "view family"
	LogEntity   string     `gorm:"column:log_entity;size:30" json:"log_entity"`   // contoh: "family"
	LogEntityID *uuid.UUID `gorm:"column:log_entity_id;type:uuid" json:"log_entity_id,omitempty"`

	LogMethod    string `gorm:"column:log_method;size:8" json:"log_method"`
	LogPath      string `gorm:"column:log_path;size:255" json:"log_path"`
	LogIP        string `gorm:"column:log_ip;size:45" json:"log_ip"`
	LogUserAgent string `gorm:"column:log_user_agent;size:255" json:"log_user_agent"`

	LogStatusCode int   `gorm:"column:log_status_code" json:"log_status_code"`
	LogDurationMS int64 `gorm:"column:log_duration_ms" json:"log_duration_ms"`

	// Body request setelah disanitasi; field sensitif diganti marker dan
	// namanya dicatat terpisah. NULL untuk body kosong.
	LogRequestBody    datatypes.JSON `gorm:"column:log_request_body;type:jsonb" json:"log_request_body,omitempty"`
	LogRedactedFields pq.StringArray `gorm:"column:log_redacted_fields;type:text[]" json:"log_redacted_fields,omitempty"`

	// Ringkasan hasil, bukan payload: error → status+message,
	// sukses → jumlah list / kehadiran objek.
	LogOutcome datatypes.JSON `gorm:"column:log_outcome;type:jsonb" json:"log_outcome,omitempty"`

	LogCreatedAt time.Time `gorm:"column:log_created_at;autoCreateTime" json:"log_created_at"`
}

func (ActivityLogModel) TableName() string {
	return "activity_logs"
}
