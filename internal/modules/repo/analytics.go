package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tiendastsgt/agencia/internal/modules/model"
	"gorm.io/gorm"
)

type AnalyticsRepo interface {
	InsertBatch(ctx context.Context, rows []model.AnalyticsMetric) error
	ListByClient(ctx context.Context, clientID uuid.UUID, platform string, since time.Time, limit int) ([]model.AnalyticsMetric, error)
}

type analyticsRepo struct{ db *gorm.DB }

func NewAnalyticsRepo(db *gorm.DB) AnalyticsRepo {
	return &analyticsRepo{db: db}
}

// InsertBatch appends one fetch's rows. The table is append-only; repeated
// fetches for the same day produce new rows, never updates.
func (r *analyticsRepo) InsertBatch(ctx context.Context, rows []model.AnalyticsMetric) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *analyticsRepo) ListByClient(ctx context.Context, clientID uuid.UUID, platform string, since time.Time, limit int) ([]model.AnalyticsMetric, error) {
	q := r.db.WithContext(ctx).Where("client_id = ?", clientID)

	if platform != "" {
		q = q.Where("platform = ?", platform)
	}
	if !since.IsZero() {
		q = q.Where("date_recorded >= ?", since)
	}

	var items []model.AnalyticsMetric
	return items, q.Order("date_recorded DESC, created_at DESC").Limit(limit).Find(&items).Error
}
