package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/tiendastsgt/agencia/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CredentialRepo interface {
	Upsert(ctx context.Context, c *model.APICredential) error
	Get(ctx context.Context, clientID uuid.UUID, platform string) (*model.APICredential, error)
	GetActive(ctx context.Context, clientID uuid.UUID, platform string) (*model.APICredential, error)
	ListMeta(ctx context.Context, clientID uuid.UUID, platform string) ([]model.CredentialMeta, error)
	Delete(ctx context.Context, clientID uuid.UUID, platform string) error
}

type credentialRepo struct{ db *gorm.DB }

func NewCredentialRepo(db *gorm.DB) CredentialRepo {
	return &credentialRepo{db: db}
}

// Upsert replaces the whole credential bundle for a (client, platform) pair.
// Last writer wins; the stored blob is never merged field by field.
func (r *credentialRepo) Upsert(ctx context.Context, c *model.APICredential) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}, {Name: "platform"}},
			DoUpdates: clause.AssignmentColumns([]string{"credentials", "is_active", "updated_at"}),
		}).
		Create(c).Error
}

func (r *credentialRepo) Get(ctx context.Context, clientID uuid.UUID, platform string) (*model.APICredential, error) {
	var c model.APICredential
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND platform = ?", clientID, platform).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *credentialRepo) GetActive(ctx context.Context, clientID uuid.UUID, platform string) (*model.APICredential, error) {
	var c model.APICredential
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND platform = ? AND is_active = ?", clientID, platform, true).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListMeta returns credential metadata only. Secret values never leave the
// repo through this path.
func (r *credentialRepo) ListMeta(ctx context.Context, clientID uuid.UUID, platform string) ([]model.CredentialMeta, error) {
	q := r.db.WithContext(ctx).
		Model(&model.APICredential{}).
		Select("platform, is_active, created_at, updated_at").
		Where("client_id = ?", clientID)

	if platform != "" {
		q = q.Where("platform = ?", platform)
	}

	items := make([]model.CredentialMeta, 0)
	return items, q.Order("platform ASC").Find(&items).Error
}

func (r *credentialRepo) Delete(ctx context.Context, clientID uuid.UUID, platform string) error {
	return r.db.WithContext(ctx).
		Where("client_id = ? AND platform = ?", clientID, platform).
		Delete(&model.APICredential{}).Error
}
