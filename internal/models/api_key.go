package models

import (
	"time"

	"gorm.io/gorm"
)

// APIKey is a token granting REST access to the workbench API.
// The token value is generated once and shown once; only the key metadata
// is editable afterwards.
type APIKey struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Label      string     `gorm:"type:varchar(255)" json:"label"`
	Token      string     `gorm:"type:varchar(36);uniqueIndex" json:"token"`
	CreatedBy  string     `gorm:"type:varchar(255)" json:"created_by"` // user email
	LastUsedAt *time.Time `json:"last_used_at"`
	Revoked    bool       `gorm:"default:false" json:"revoked"`
}
