package models

import (
	"time"

	"gorm.io/gorm"
)

// IntegrationKind represents the type of outbound integration
type IntegrationKind string

const (
	IntegrationKindWebhook IntegrationKind = "webhook"
)

// Integration is an outbound delivery target for reminders and test pings
type Integration struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name     string          `gorm:"type:varchar(255)" json:"name"`
	Kind     IntegrationKind `gorm:"type:varchar(20);default:'webhook'" json:"kind"`
	Endpoint string          `gorm:"type:varchar(512)" json:"endpoint"`
	Secret   string          `gorm:"type:varchar(255)" json:"secret"` // sent as X-Api-Key
	Enabled  bool            `gorm:"default:true" json:"enabled"`
}
