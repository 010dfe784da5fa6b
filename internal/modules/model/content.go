package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GeneratedContent persists one output of the content generator: a post,
// strategy or analysis payload produced for a client.
type GeneratedContent struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`

	ContentType string `gorm:"type:text;not null" json:"content_type"`
	Platform    string `gorm:"type:text;not null;default:'general'" json:"platform"`
	Topic       string `gorm:"type:text" json:"topic"`

	Payload      datatypes.JSONMap `gorm:"type:jsonb;not null" swaggertype:"object" json:"payload"`
	Model        string            `gorm:"type:text" json:"model"`
	PromptTokens int               `gorm:"not null;default:0" json:"prompt_tokens"`
	// "real" when the model reply parsed as JSON, "fallback" otherwise
	Status string `gorm:"type:text;not null;default:'real'" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// GeneratedContent <-> Client
	Client *Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (GeneratedContent) TableName() string { return "generated_content" }
