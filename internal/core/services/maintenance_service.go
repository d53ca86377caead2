package services

import (
	"context"
	"log"

	"y4d-cms/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// MaintenanceService runs scheduled housekeeping jobs
type MaintenanceService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(refreshTokenRepo repositories.RefreshTokenRepository) *MaintenanceService {
	return &MaintenanceService{
		refreshTokenRepo: refreshTokenRepo,
		cron:             cron.New(),
	}
}

// Start registers jobs and starts the scheduler
func (s *MaintenanceService) Start() error {
	// Purge expired refresh tokens every night at 03:00
	if _, err := s.cron.AddFunc("0 3 * * *", s.purgeExpiredTokens); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Maintenance scheduler started")
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *MaintenanceService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("✅ Maintenance scheduler stopped")
}

func (s *MaintenanceService) purgeExpiredTokens() {
	deleted, err := s.refreshTokenRepo.DeleteExpired(context.Background())
	if err != nil {
		log.Printf("⚠️ Failed to purge expired refresh tokens: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("✅ Purged %d expired refresh tokens", deleted)
	}
}
