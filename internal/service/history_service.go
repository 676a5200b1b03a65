package service

import (
	"context"
	"fmt"

	"property-price-api/internal/models"
)

// Default and maximum page sizes for the prediction history listing.
const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// HistoryService lists recently served predictions
type HistoryService struct {
	repo PredictionLogRepository
}

// Repository interface for dependency injection
type PredictionLogRepository interface {
	RecentPredictions(ctx context.Context, limit int) ([]models.PredictionLog, error)
}

// NewHistoryService creates a new history service
func NewHistoryService(repo PredictionLogRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// Recent returns the most recently served predictions, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]models.PredictionLog, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}

	logs, err := s.repo.RecentPredictions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list predictions: %w", err)
	}

	return logs, nil
}
