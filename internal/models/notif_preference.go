package models

import (
	"time"

	"gorm.io/gorm"
)

type NotificationChannel string

const (
	NotificationChannelEmail   NotificationChannel = "email"
	NotificationChannelWebhook NotificationChannel = "webhook"
	NotificationChannelNone    NotificationChannel = "none"
)

// NotifPreference stores how an assessment owner wants review reminders
// delivered
type NotifPreference struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID uint `gorm:"uniqueIndex" json:"user_id"`

	Channel NotificationChannel `gorm:"type:varchar(20);default:'email'" json:"channel"`

	// Webhook specific option: deliver through this integration instead of
	// the first enabled one
	IntegrationID *uint `json:"integration_id"`
}

// UsesIntegration reports whether the preference pins a specific integration
func (p NotifPreference) UsesIntegration(id uint) bool {
	return p.IntegrationID != nil && *p.IntegrationID == id
}
