package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"mahallku_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler menghapus token blacklist yang sudah
// lewat TTL (default 7 hari) tiap 12 jam.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ttlDays := 7
		if val := os.Getenv("TOKEN_BLACKLIST_TTL_DAYS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil {
				ttlDays = parsed
			}
		}

		for {
			log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")

			deleteBefore := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)
			if err := db.Unscoped().
				Where("expired_at < ?", deleteBefore).
				Delete(&model.TokenBlacklist{}).Error; err != nil {
				log.Printf("[CLEANUP] Gagal hapus token kedaluwarsa: %v", err)
			}

			time.Sleep(12 * time.Hour)
		}
	}()
}
