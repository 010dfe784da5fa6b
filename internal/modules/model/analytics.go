package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AnalyticsMetric is one append-only time-series row. Repeated fetches insert
// new rows; nothing updates or deduplicates them.
type AnalyticsMetric struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index:idx_analytics_client_platform_date,priority:1" json:"client_id"`

	MetricType  string  `gorm:"type:text;not null" json:"metric_type"`
	MetricName  string  `gorm:"type:text;not null" json:"metric_name"`
	MetricValue float64 `gorm:"not null;default:0" json:"metric_value"`
	// one of: percentage, currency, count
	MetricUnit string `gorm:"type:text;not null;default:'count'" json:"metric_unit"`
	Platform   string `gorm:"type:text;not null;index:idx_analytics_client_platform_date,priority:2" json:"platform"`

	DateRecorded   time.Time         `gorm:"not null;index:idx_analytics_client_platform_date,priority:3" json:"date_recorded"`
	AdditionalData datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"additional_data"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// AnalyticsMetric <-> Client
	Client *Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (AnalyticsMetric) TableName() string { return "analytics" }
