package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/tiendastsgt/agencia/internal/modules/model"
	"gorm.io/gorm"
)

type ContentRepo interface {
	Create(ctx context.Context, c *model.GeneratedContent) error
	ListByClient(ctx context.Context, clientID uuid.UUID, contentType string, limit int) ([]model.GeneratedContent, error)
}

type contentRepo struct{ db *gorm.DB }

func NewContentRepo(db *gorm.DB) ContentRepo {
	return &contentRepo{db: db}
}

func (r *contentRepo) Create(ctx context.Context, c *model.GeneratedContent) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *contentRepo) ListByClient(ctx context.Context, clientID uuid.UUID, contentType string, limit int) ([]model.GeneratedContent, error) {
	q := r.db.WithContext(ctx).Where("client_id = ?", clientID)

	if contentType != "" {
		q = q.Where("content_type = ?", contentType)
	}

	var items []model.GeneratedContent
	return items, q.Order("created_at DESC").Limit(limit).Find(&items).Error
}
