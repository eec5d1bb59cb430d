package seeds

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hsetrack_backend/internals/features/programs/repository"
	"hsetrack_backend/internals/logger"
	programs "hsetrack_backend/internals/seeds/programs"
)

// RunAllSeeds mengisi remote master_programs dari dataset bawaan.
func RunAllSeeds(db *gorm.DB) {
	log := logger.App()
	if db == nil {
		log.Warn("[SEED] remote DB tidak dikonfigurasi, seed dilewati")
		return
	}

	repo := repository.NewRemoteProgress(db)
	if err := repo.Migrate(); err != nil {
		log.WithError(err).Error("[SEED] migrate remote gagal")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	//* Programs (OTP + Matrix)
	if _, err := programs.SeedMasterPrograms(ctx, programs.NewEmbedded(), repo, log); err != nil {
		log.WithError(err).Warn("[SEED] sebagian master_programs gagal")
	}
}
