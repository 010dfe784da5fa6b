package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// APICredential holds the opaque secret bundle for one (client, platform)
// pair. The unique index backs the upsert-on-conflict semantics: at most one
// record per pair, last writer wins.
type APICredential struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_client_platform,priority:1" json:"client_id"`
	Platform string    `gorm:"type:text;not null;uniqueIndex:idx_client_platform,priority:2" json:"platform"`

	// Shape varies per platform (meta: access_token/page_id, twitter:
	// bearer_token/username, ...). Never serialized back to API callers.
	Credentials datatypes.JSONMap `gorm:"type:jsonb;not null" swaggertype:"object" json:"-"`
	IsActive    bool              `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// APICredential <-> Client
	Client *Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (APICredential) TableName() string { return "client_api_credentials" }

// CredentialMeta is the read model for the credential facade: metadata only,
// never the secret values.
type CredentialMeta struct {
	Platform  string    `json:"platform"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
