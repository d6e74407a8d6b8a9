package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/josephnc/cc-charts/internal/logger"
	"github.com/josephnc/cc-charts/internal/repos"
	"github.com/josephnc/cc-charts/internal/types"
)

// Slug namespaces cache keys, the REST route and the widget container id.
const Slug = "cc-charts"

// AllowedDays are the only lookback windows the chart offers.
var AllowedDays = []int{7, 15, 30}

var ErrInvalidDays = errors.New("Invalid no of days specified.")

type ChartDataService interface {
	// DataForWindow returns all samples with date in [now - days*24h, now).
	DataForWindow(ctx context.Context, days int) ([]*types.Sample, error)
}

type chartDataService struct {
	db         *gorm.DB
	log        *logger.Logger
	sampleRepo repos.SampleRepo
	cache      Cache
	now        func() time.Time
}

func NewChartDataService(db *gorm.DB, log *logger.Logger, sampleRepo repos.SampleRepo, cache Cache) ChartDataService {
	serviceLog := log.With("service", "ChartDataService")
	return &chartDataService{
		db:         db,
		log:        serviceLog,
		sampleRepo: sampleRepo,
		cache:      cache,
		now:        time.Now,
	}
}

func (s *chartDataService) DataForWindow(ctx context.Context, days int) ([]*types.Sample, error) {
	if !daysAllowed(days) {
		return nil, ErrInvalidDays
	}

	// Wall-clock subtraction, not calendar-day truncation. Truncating to the
	// second keys the cache per window-second, so entries age out naturally.
	windowEnd := s.now().UTC().Truncate(time.Second)
	windowStart := windowEnd.Add(-time.Duration(days) * 24 * time.Hour)

	cacheKey := Slug + "_rest_api_data_" + windowStart.Format(types.DateTimeLayout)

	if cached, ok, err := s.cache.Get(ctx, cacheKey); err != nil {
		s.log.Warn("Cache get failed, falling through to store", "key", cacheKey, "error", err)
	} else if ok {
		// A cached empty slice is a legitimate result, not a miss.
		samples := []*types.Sample{}
		if err := json.Unmarshal([]byte(cached), &samples); err == nil {
			return samples, nil
		}
		s.log.Warn("Discarding undecodable cache entry", "key", cacheKey)
	}

	samples, err := s.sampleRepo.ListInRange(ctx, nil, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("list samples in range: %w", err)
	}

	if encoded, err := json.Marshal(samples); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(encoded)); err != nil {
			s.log.Warn("Cache set failed", "key", cacheKey, "error", err)
		}
	}

	return samples, nil
}

func daysAllowed(days int) bool {
	for _, d := range AllowedDays {
		if days == d {
			return true
		}
	}
	return false
}
