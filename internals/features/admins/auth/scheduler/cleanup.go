package scheduler

import (
	"context"
	"log"
	"time"

	"vagsociety_backend/internals/features/admins/auth/repository"

	"gorm.io/gorm"
)

// StartBlacklistCleanupScheduler hapus entri blacklist yang token-nya sudah expired.
// Berhenti saat ctx selesai.
func StartBlacklistCleanupScheduler(ctx context.Context, db *gorm.DB, every time.Duration) {
	if every <= 0 {
		every = 24 * time.Hour
	}
	go func() {
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			RunBlacklistCleanup(ctx, db)
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
		}
	}()
}

func RunBlacklistCleanup(ctx context.Context, db *gorm.DB) int64 {
	n, err := repository.PurgeExpiredBlacklist(ctx, db, time.Now().UTC())
	if err != nil {
		log.Printf("[CLEANUP ERROR] Gagal hapus token kadaluarsa: %v", err)
		return 0
	}
	if n > 0 {
		log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
	}
	return n
}
