package repo

import (
	"context"

	"github.com/tiendastsgt/agencia/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AgencyRepo interface {
	Create(ctx context.Context, a *model.Agency) error
	GetBySecretHMAC(ctx context.Context, hmacHex string) (*model.Agency, error)
	GetOrCreateByHMAC(ctx context.Context, a *model.Agency) (*model.Agency, error)
}

type agencyRepo struct{ db *gorm.DB }

func NewAgencyRepo(db *gorm.DB) AgencyRepo {
	return &agencyRepo{db: db}
}

func (r *agencyRepo) Create(ctx context.Context, a *model.Agency) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *agencyRepo) GetBySecretHMAC(ctx context.Context, hmacHex string) (*model.Agency, error) {
	var a model.Agency
	err := r.db.WithContext(ctx).
		Where("secret_key_hmac = ? AND is_active = ?", hmacHex, true).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetOrCreateByHMAC seeds the default agency at boot. Idempotent across
// restarts and concurrent instances.
func (r *agencyRepo) GetOrCreateByHMAC(ctx context.Context, a *model.Agency) (*model.Agency, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "secret_key_hmac"}},
			DoNothing: true,
		}).
		Create(a).Error
	if err != nil {
		return nil, err
	}

	var existing model.Agency
	if err := r.db.WithContext(ctx).
		Where("secret_key_hmac = ?", a.SecretKeyHMAC).
		First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}
