package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tiendastsgt/agencia/internal/modules/model"
	"gorm.io/gorm"
)

type ClientRepo interface {
	Create(ctx context.Context, c *model.Client) error
	GetByID(ctx context.Context, agencyID, id uuid.UUID) (*model.Client, error)
	List(ctx context.Context, agencyID uuid.UUID, afterCreatedAt time.Time, afterID uuid.UUID, limit int) ([]*model.Client, error)
	Update(ctx context.Context, c *model.Client) error
	Deactivate(ctx context.Context, agencyID, id uuid.UUID) error
}

type clientRepo struct{ db *gorm.DB }

func NewClientRepo(db *gorm.DB) ClientRepo {
	return &clientRepo{db: db}
}

func (r *clientRepo) Create(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clientRepo) GetByID(ctx context.Context, agencyID, id uuid.UUID) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ? AND is_active = ?", agencyID, id, true).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) List(ctx context.Context, agencyID uuid.UUID, afterCreatedAt time.Time, afterID uuid.UUID, limit int) ([]*model.Client, error) {
	q := r.db.WithContext(ctx).
		Where("agency_id = ? AND is_active = ?", agencyID, true)

	if !afterCreatedAt.IsZero() && afterID != uuid.Nil {
		q = q.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			afterCreatedAt, afterCreatedAt, afterID,
		)
	}

	var items []*model.Client
	return items, q.Order("created_at DESC, id DESC").Limit(limit).Find(&items).Error
}

func (r *clientRepo) Update(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Deactivate soft-deletes. Credentials and metrics stay in place so a
// reactivated client picks up where it left off.
func (r *clientRepo) Deactivate(ctx context.Context, agencyID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&model.Client{}).
		Where("agency_id = ? AND id = ? AND is_active = ?", agencyID, id, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
