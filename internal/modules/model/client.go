package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Client is one business the agency manages. Profile blobs
// (target_audience, competitors, social_profiles) are free-form structured
// data owned by the dashboard, opaque to this service.
type Client struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AgencyID uuid.UUID `gorm:"type:uuid;not null;index" json:"agency_id"`

	Name                   string `gorm:"type:text;not null" json:"name"`
	Industry               string `gorm:"type:text" json:"industry"`
	BusinessType           string `gorm:"type:text" json:"business_type"`
	Description            string `gorm:"type:text" json:"description"`
	UniqueValueProposition string `gorm:"type:text" json:"unique_value_proposition"`
	WebsiteURL             string `gorm:"type:text" json:"website_url"`
	Country                string `gorm:"type:text" json:"country"`

	TargetAudience datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"target_audience"`
	Competitors    datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"competitors"`
	SocialProfiles datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"social_profiles"`

	// Clients are soft-deactivated, never hard-deleted.
	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Client <-> Agency
	Agency *Agency `gorm:"foreignKey:AgencyID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Client <-> APICredential
	Credentials []APICredential `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Client <-> AnalyticsMetric
	Metrics []AnalyticsMetric `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Client) TableName() string { return "clients" }
