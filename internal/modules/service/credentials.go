package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tiendastsgt/agencia/internal/modules/model"
	"github.com/tiendastsgt/agencia/internal/modules/repo"
	"github.com/tiendastsgt/agencia/internal/platform"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CredentialService manages per-client platform credentials: list metadata,
// replace the bundle, run a live test and delete. Secret values never leave
// the service except into the platform adapters.
type CredentialService interface {
	Get(ctx context.Context, in GetCredentialsInput) ([]model.CredentialMeta, error)
	Set(ctx context.Context, in SetCredentialsInput) (*SetCredentialsOutput, error)
	Test(ctx context.Context, in TestCredentialsInput) (*platform.ValidationResult, error)
	Delete(ctx context.Context, in DeleteCredentialsInput) (*DeleteCredentialsOutput, error)
}

type credentialService struct {
	creds    repo.CredentialRepo
	clients  repo.ClientRepo
	registry *platform.Registry
	log      *zap.Logger
}

func NewCredentialService(creds repo.CredentialRepo, clients repo.ClientRepo, registry *platform.Registry, log *zap.Logger) CredentialService {
	return &credentialService{
		creds:    creds,
		clients:  clients,
		registry: registry,
		log:      log,
	}
}

type GetCredentialsInput struct {
	AgencyID uuid.UUID `json:"agency_id"`
	ClientID uuid.UUID `json:"client_id"`
	// Optional filter; empty means all platforms.
	Platform string `json:"platform"`
}

type SetCredentialsInput struct {
	AgencyID    uuid.UUID         `json:"agency_id"`
	ClientID    uuid.UUID         `json:"client_id"`
	Platform    string            `json:"platform"`
	Credentials datatypes.JSONMap `json:"credentials"`
}

type SetCredentialsOutput struct {
	Message  string    `json:"message"`
	Platform string    `json:"platform"`
	SavedAt  time.Time `json:"saved_at"`
}

type TestCredentialsInput struct {
	AgencyID uuid.UUID `json:"agency_id"`
	ClientID uuid.UUID `json:"client_id"`
	Platform string    `json:"platform"`
	// Optional: when nil the stored bundle is tested instead.
	Credentials datatypes.JSONMap `json:"credentials"`
}

type DeleteCredentialsInput struct {
	AgencyID uuid.UUID `json:"agency_id"`
	ClientID uuid.UUID `json:"client_id"`
	Platform string    `json:"platform"`
}

type DeleteCredentialsOutput struct {
	Message   string    `json:"message"`
	Platform  string    `json:"platform"`
	DeletedAt time.Time `json:"deleted_at"`
}

// requireClient resolves the client and scopes it to the calling agency, so
// one agency can never touch another agency's credentials.
func (s *credentialService) requireClient(ctx context.Context, agencyID, clientID uuid.UUID) (*model.Client, error) {
	c, err := s.clients.GetByID(ctx, agencyID, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *credentialService) Get(ctx context.Context, in GetCredentialsInput) ([]model.CredentialMeta, error) {
	if _, err := s.requireClient(ctx, in.AgencyID, in.ClientID); err != nil {
		return nil, err
	}
	if in.Platform != "" && !s.registry.Supported(in.Platform) {
		return nil, ErrUnsupportedPlatform
	}
	return s.creds.ListMeta(ctx, in.ClientID, in.Platform)
}

func (s *credentialService) Set(ctx context.Context, in SetCredentialsInput) (*SetCredentialsOutput, error) {
	if !s.registry.Supported(in.Platform) {
		return nil, ErrUnsupportedPlatform
	}
	if _, err := s.requireClient(ctx, in.AgencyID, in.ClientID); err != nil {
		return nil, err
	}

	cred := &model.APICredential{
		ClientID:    in.ClientID,
		Platform:    in.Platform,
		Credentials: in.Credentials,
		IsActive:    true,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.creds.Upsert(ctx, cred); err != nil {
		return nil, err
	}

	s.log.Info("credentials saved",
		zap.String("client_id", in.ClientID.String()),
		zap.String("platform", in.Platform))

	return &SetCredentialsOutput{
		Message:  "Credenciales guardadas correctamente",
		Platform: in.Platform,
		SavedAt:  time.Now().UTC(),
	}, nil
}

func (s *credentialService) Test(ctx context.Context, in TestCredentialsInput) (*platform.ValidationResult, error) {
	adapter, ok := s.registry.Get(in.Platform)
	if !ok {
		return nil, ErrUnsupportedPlatform
	}
	if _, err := s.requireClient(ctx, in.AgencyID, in.ClientID); err != nil {
		return nil, err
	}

	var creds platform.Credentials
	if len(in.Credentials) > 0 {
		creds = platform.FromJSONMap(in.Credentials)
	} else {
		stored, err := s.creds.Get(ctx, in.ClientID, in.Platform)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCredentialsNotFound
			}
			return nil, err
		}
		creds = platform.FromJSONMap(stored.Credentials)
	}

	res := adapter.Validate(ctx, creds)
	return &res, nil
}

func (s *credentialService) Delete(ctx context.Context, in DeleteCredentialsInput) (*DeleteCredentialsOutput, error) {
	if !s.registry.Supported(in.Platform) {
		return nil, ErrUnsupportedPlatform
	}
	if _, err := s.requireClient(ctx, in.AgencyID, in.ClientID); err != nil {
		return nil, err
	}

	// Deleting an absent pair succeeds; the end state is the same.
	if err := s.creds.Delete(ctx, in.ClientID, in.Platform); err != nil {
		return nil, err
	}

	s.log.Info("credentials deleted",
		zap.String("client_id", in.ClientID.String()),
		zap.String("platform", in.Platform))

	return &DeleteCredentialsOutput{
		Message:   "Credenciales eliminadas correctamente",
		Platform:  in.Platform,
		DeletedAt: time.Now().UTC(),
	}, nil
}
