// internals/features/activity_logs/service/recorder.go
//
// Penulis activity log asinkron. Kebijakan eksplisit: buffer terbatas,
// satu kali retry, lalu drop — kegagalan dicatat ke log operasional dan
// TIDAK pernah sampai ke caller.
package service

import (
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"mahallku_backend/internals/features/activity_logs/model"
)

const defaultBuffer = 256

type Recorder struct {
	db   *gorm.DB
	ch   chan *model.ActivityLogModel
	wg   sync.WaitGroup
	once sync.Once
}

func NewRecorder(db *gorm.DB) *Recorder {
	r := &Recorder{
		db: db,
		ch: make(chan *model.ActivityLogModel, defaultBuffer),
	}
	r.wg.Add(1)
	go r.worker()
	return r
}

// Enqueue tidak pernah blokir: buffer penuh → record dibuang (tercatat di
// log operasional). Record tanpa actor maupun tenant juga dibuang —
// aktivitas anonim tidak disimpan.
func (r *Recorder) Enqueue(rec *model.ActivityLogModel) {
	if rec == nil {
		return
	}
	if rec.LogActorID == nil && rec.LogTenantID == nil {
		return
	}
	select {
	case r.ch <- rec:
	default:
		log.Printf("[AUDIT] buffer penuh, record %s %s dibuang", rec.LogMethod, rec.LogPath)
	}
}

// Close menghentikan worker setelah buffer terkuras (dipanggil saat
// graceful shutdown).
func (r *Recorder) Close() {
	r.once.Do(func() {
		close(r.ch)
	})
	r.wg.Wait()
}

func (r *Recorder) worker() {
	defer r.wg.Done()
	for rec := range r.ch {
		if err := r.db.Create(rec).Error; err != nil {
			// satu kali retry, lalu menyerah
			time.Sleep(100 * time.Millisecond)
			if err2 := r.db.Create(rec).Error; err2 != nil {
				log.Printf("[AUDIT] gagal simpan activity log: %v", err2)
			}
		}
	}
}
