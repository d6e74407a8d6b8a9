package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/josephnc/cc-charts/internal/logger"
	"github.com/josephnc/cc-charts/internal/types"
)

type SampleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, samples []*types.Sample) ([]*types.Sample, error)
	// ListInRange returns samples with date in [from, to), ordered by date.
	ListInRange(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*types.Sample, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type sampleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSampleRepo(db *gorm.DB, baseLog *logger.Logger) SampleRepo {
	repoLog := baseLog.With("repo", "SampleRepo")
	return &sampleRepo{db: db, log: repoLog}
}

func (r *sampleRepo) Create(ctx context.Context, tx *gorm.DB, samples []*types.Sample) ([]*types.Sample, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(samples) == 0 {
		return []*types.Sample{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}

func (r *sampleRepo) ListInRange(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*types.Sample, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	samples := []*types.Sample{}
	err := transaction.WithContext(ctx).
		Where("date >= ? AND date < ?", from, to).
		Order("date").
		Find(&samples).Error
	if err != nil {
		return nil, err
	}
	return samples, nil
}

func (r *sampleRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).Model(&types.Sample{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
