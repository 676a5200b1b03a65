package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"property-price-api/internal/metrics"
	"property-price-api/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PredictService contains the core business logic for price prediction
type PredictService struct {
	repo     SalesRepository
	cache    PredictionCache
	cacheTTL time.Duration
}

// Repository interface for dependency injection
type SalesRepository interface {
	ComparableSales(ctx context.Context, prefecture, municipality string) ([]models.SaleRecord, error)
	LogPrediction(ctx context.Context, p models.PredictionLog) error
}

// Cache interface for dependency injection. A nil cache disables caching.
type PredictionCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// NewPredictService creates a new predict service
func NewPredictService(repo SalesRepository, cache PredictionCache, cacheTTL time.Duration) *PredictService {
	return &PredictService{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

// Predict estimates the market price for the requested property. Identical
// requests yield identical predictions within a process lifetime; the model
// is a deterministic comparables/baseline formula.
func (s *PredictService) Predict(ctx context.Context, req models.PredictionRequest) (float64, error) {
	if err := req.Validate(); err != nil {
		return 0, fmt.Errorf("service: invalid prediction request: %w", err)
	}

	key := cacheKey(req)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil {
			if predicted, perr := strconv.ParseFloat(string(raw), 64); perr == nil {
				metrics.PredictionCacheHits.Inc()
				return predicted, nil
			}
		}
		metrics.PredictionCacheMisses.Inc()
	}

	start := time.Now()
	predicted := s.evaluate(ctx, req)
	metrics.PredictionDuration.Observe(time.Since(start).Seconds())

	s.record(ctx, req, predicted)

	if s.cache != nil {
		value := []byte(strconv.FormatFloat(predicted, 'f', -1, 64))
		if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
			log.Warn().Err(err).Msg("failed to cache prediction")
		}
	}

	return predicted, nil
}

// evaluate prices the property from the median unit price of recent
// comparable sales, falling back to the baseline table when the sales
// repository has too few comparables or is unavailable.
func (s *PredictService) evaluate(ctx context.Context, req models.PredictionRequest) float64 {
	prefecture, municipality := SplitAddress(req.Address)

	var unit float64
	if prefecture != "" && municipality != "" {
		sales, err := s.repo.ComparableSales(ctx, prefecture, municipality)
		if err != nil {
			log.Warn().Err(err).Str("municipality", municipality).
				Msg("comparable sales lookup failed, falling back to baseline prices")
		} else if len(sales) >= minComparables {
			unit = medianUnitPrice(sales)
		}
	}
	if unit <= 0 {
		unit = baselineUnitPrice(prefecture, municipality)
	}

	return price(unit, req.Area, req.BuildingYear, time.Now().Year())
}

// record persists the served prediction, best effort.
func (s *PredictService) record(ctx context.Context, req models.PredictionRequest, predicted float64) {
	entry := models.PredictionLog{
		ID:           uuid.NewString(),
		Address:      req.Address,
		Area:         req.Area,
		BuildingYear: req.BuildingYear,
		Predicted:    predicted,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.LogPrediction(ctx, entry); err != nil {
		log.Warn().Err(err).Msg("failed to log prediction")
	}
}

func cacheKey(req models.PredictionRequest) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%g|%d", req.Address, req.Area, req.BuildingYear)))
	return "predict:" + hex.EncodeToString(sum[:])
}
