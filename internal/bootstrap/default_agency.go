package bootstrap

import (
	"context"

	"github.com/tiendastsgt/agencia/internal/config"
	"github.com/tiendastsgt/agencia/internal/modules/model"
	"github.com/tiendastsgt/agencia/internal/pkg/utils/secrets"
	"github.com/tiendastsgt/agencia/internal/pkg/utils/tokens"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EnsureDefaultAgencyExists creates or aligns the default agency account when
// the service starts. The secret comes from config; dashboard sessions resolve
// to this agency.
func EnsureDefaultAgencyExists(ctx context.Context, db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	token := cfg.Auth.ApiBearerToken
	pepper := cfg.Auth.SecretPepper

	if token == "" || pepper == "" {
		return nil
	}

	secret, ok := tokens.ParseToken(token, cfg.Auth.AgencyTokenPrefix)
	if !ok {
		log.Warn("api_bearer_token does not carry the agency token prefix, skipping default agency seed")
		return nil
	}
	lookup := tokens.HMAC256Hex(pepper, secret)

	// The default agency is tagged with a marker config field so secret
	// rotation finds it even after the HMAC changed.
	var agency model.Agency
	err := db.WithContext(ctx).
		Where("configs @> ?", `{"__default_init_agency__": true}`).
		First(&agency).Error

	switch err {
	case nil:
		phc, err := secrets.HashSecret(secret, pepper)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"secret_key_hmac":     lookup,
			"secret_key_hash_phc": phc,
		}

		if uErr := db.WithContext(ctx).Model(&agency).Updates(updates).Error; uErr != nil {
			return uErr
		}
		log.Sugar().Infow("default agency exists", "agency", agency.ID)
		return nil

	case gorm.ErrRecordNotFound:
		phc, err := secrets.HashSecret(secret, pepper)
		if err != nil {
			return err
		}

		newA := model.Agency{
			Name:             "TiendaSTS",
			SecretKeyHMAC:    lookup,
			SecretKeyHashPHC: phc,
			IsActive:         true,
			Configs: datatypes.JSONMap{
				"__default_init_agency__": true,
			},
		}
		if cErr := db.WithContext(ctx).Create(&newA).Error; cErr != nil {
			return cErr
		}
		log.Sugar().Infow("default agency created", "agency", newA.ID)
		return nil

	default:
		return err
	}
}
