package seeds

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"tuition_backend/internals/seeds/students"
)

// RunAllSeeds mengisi data contoh (DB_SEED=true). Error seed tidak menghentikan server.
func RunAllSeeds(ctx context.Context, db *gorm.DB, now time.Time) {
	//* Students + payment records
	n, err := students.SeedStudentsFromJSON(ctx, db, students.DefaultData, now)
	if err != nil {
		log.Printf("[SEED] students gagal: %v", err)
		return
	}
	log.Printf("[SEED] selesai, %d siswa baru", n)
}
