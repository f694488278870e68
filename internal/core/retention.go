package core

import (
	"context"
	"log"
	"time"

	"github.com/baxromumarov/lead-sieve/internal/store"
)

type RetentionService struct {
	store     *store.Store
	retention time.Duration
}

func NewRetentionService(store *store.Store, retention time.Duration) *RetentionService {
	return &RetentionService{store: store, retention: retention}
}

func (s *RetentionService) Start(ctx context.Context) {
	go s.runRetentionPolicy(ctx)
}

// runRetentionPolicy deletes uploaded batches past the retention window
func (s *RetentionService) runRetentionPolicy(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour) // Run once a day
	defer ticker.Stop()

	// Run immediately on startup
	s.cleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanup(ctx)
		}
	}
}

func (s *RetentionService) cleanup(ctx context.Context) {
	count, err := s.store.DeleteOldBatches(ctx, s.retention)
	if err != nil {
		log.Printf("Retention Policy: Failed to cleanup old batches: %v", err)
	} else if count > 0 {
		log.Printf("Retention Policy: Deleted %d old batches", count)
	}
}
