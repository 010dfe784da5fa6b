package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tiendastsgt/agencia/internal/modules/model"
	"github.com/tiendastsgt/agencia/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClientService manages the agency's client roster.
type ClientService interface {
	Create(ctx context.Context, in CreateClientInput) (*model.Client, error)
	Get(ctx context.Context, agencyID, clientID uuid.UUID) (*model.Client, error)
	List(ctx context.Context, in ListClientsInput) (*ListClientsOutput, error)
	Update(ctx context.Context, in UpdateClientInput) (*model.Client, error)
	Deactivate(ctx context.Context, agencyID, clientID uuid.UUID) error
}

type clientService struct {
	r   repo.ClientRepo
	log *zap.Logger
}

func NewClientService(r repo.ClientRepo, log *zap.Logger) ClientService {
	return &clientService{r: r, log: log}
}

type CreateClientInput struct {
	AgencyID               uuid.UUID         `json:"agency_id"`
	Name                   string            `json:"name"`
	Industry               string            `json:"industry"`
	BusinessType           string            `json:"business_type"`
	Description            string            `json:"description"`
	UniqueValueProposition string            `json:"unique_value_proposition"`
	WebsiteURL             string            `json:"website_url"`
	Country                string            `json:"country"`
	TargetAudience         datatypes.JSONMap `json:"target_audience"`
	Competitors            datatypes.JSONMap `json:"competitors"`
	SocialProfiles         datatypes.JSONMap `json:"social_profiles"`
}

type ListClientsInput struct {
	AgencyID       uuid.UUID `json:"agency_id"`
	Limit          int       `json:"limit"`
	AfterCreatedAt time.Time `json:"after_created_at"`
	AfterID        uuid.UUID `json:"after_id"`
}

type ListClientsOutput struct {
	Items   []*model.Client `json:"items"`
	HasMore bool            `json:"has_more"`
}

type UpdateClientInput struct {
	AgencyID uuid.UUID `json:"agency_id"`
	ClientID uuid.UUID `json:"client_id"`

	Name                   *string            `json:"name"`
	Industry               *string            `json:"industry"`
	BusinessType           *string            `json:"business_type"`
	Description            *string            `json:"description"`
	UniqueValueProposition *string            `json:"unique_value_proposition"`
	WebsiteURL             *string            `json:"website_url"`
	Country                *string            `json:"country"`
	TargetAudience         *datatypes.JSONMap `json:"target_audience"`
	Competitors            *datatypes.JSONMap `json:"competitors"`
	SocialProfiles         *datatypes.JSONMap `json:"social_profiles"`
}

func (s *clientService) Create(ctx context.Context, in CreateClientInput) (*model.Client, error) {
	c := &model.Client{
		AgencyID:               in.AgencyID,
		Name:                   in.Name,
		Industry:               in.Industry,
		BusinessType:           in.BusinessType,
		Description:            in.Description,
		UniqueValueProposition: in.UniqueValueProposition,
		WebsiteURL:             in.WebsiteURL,
		Country:                in.Country,
		TargetAudience:         in.TargetAudience,
		Competitors:            in.Competitors,
		SocialProfiles:         in.SocialProfiles,
		IsActive:               true,
	}
	if err := s.r.Create(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info("client created",
		zap.String("client_id", c.ID.String()),
		zap.String("name", c.Name))

	return c, nil
}

func (s *clientService) Get(ctx context.Context, agencyID, clientID uuid.UUID) (*model.Client, error) {
	c, err := s.r.GetByID(ctx, agencyID, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *clientService) List(ctx context.Context, in ListClientsInput) (*ListClientsOutput, error) {
	limit := in.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	// Fetch one extra row to detect whether another page exists.
	items, err := s.r.List(ctx, in.AgencyID, in.AfterCreatedAt, in.AfterID, limit+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}
	return &ListClientsOutput{Items: items, HasMore: hasMore}, nil
}

func (s *clientService) Update(ctx context.Context, in UpdateClientInput) (*model.Client, error) {
	c, err := s.Get(ctx, in.AgencyID, in.ClientID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Industry != nil {
		c.Industry = *in.Industry
	}
	if in.BusinessType != nil {
		c.BusinessType = *in.BusinessType
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.UniqueValueProposition != nil {
		c.UniqueValueProposition = *in.UniqueValueProposition
	}
	if in.WebsiteURL != nil {
		c.WebsiteURL = *in.WebsiteURL
	}
	if in.Country != nil {
		c.Country = *in.Country
	}
	if in.TargetAudience != nil {
		c.TargetAudience = *in.TargetAudience
	}
	if in.Competitors != nil {
		c.Competitors = *in.Competitors
	}
	if in.SocialProfiles != nil {
		c.SocialProfiles = *in.SocialProfiles
	}

	if err := s.r.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *clientService) Deactivate(ctx context.Context, agencyID, clientID uuid.UUID) error {
	err := s.r.Deactivate(ctx, agencyID, clientID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrClientNotFound
	}
	return err
}
