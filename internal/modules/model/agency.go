package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Agency is the tenant root: one dashboard account owning clients, their
// credentials and their analytics. API access is authenticated against the
// HMAC lookup digest plus an argon2id hash of the agency secret.
type Agency struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name string    `gorm:"type:text;not null;default:''" json:"name"`

	SecretKeyHMAC    string            `gorm:"type:varchar(64);uniqueIndex" json:"-"`
	SecretKeyHashPHC string            `gorm:"type:text" json:"-"`
	Configs          datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"configs"`
	IsActive         bool              `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Agency <-> Client
	Clients []Client `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Agency) TableName() string { return "agencies" }
