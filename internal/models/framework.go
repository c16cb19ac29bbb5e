package models

import (
	"time"

	"gorm.io/gorm"
)

// Framework represents a compliance framework such as ISO 27001 or the
// NIST AI RMF
type Framework struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Code        string `gorm:"type:varchar(50);uniqueIndex" json:"code"` // e.g. 'iso-27001'
	Name        string `gorm:"type:varchar(255)" json:"name"`
	Version     string `gorm:"type:varchar(50)" json:"version"`
	Description string `gorm:"type:text" json:"description"`

	// Relationships
	Controls []Control `gorm:"foreignKey:FrameworkID" json:"controls,omitempty"`
}

// Control represents a single requirement within a framework
type Control struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	FrameworkID uint   `gorm:"index" json:"framework_id"`
	Code        string `gorm:"type:varchar(50)" json:"code"` // e.g. 'A.5.1'
	Title       string `gorm:"type:varchar(255)" json:"title"`
	Category    string `gorm:"type:varchar(255)" json:"category"`
	Guidance    string `gorm:"type:text" json:"guidance"` // markdown, rendered server-side

	// Relationships
	Framework   Framework    `json:"framework,omitempty"`
	Assessments []Assessment `gorm:"foreignKey:ControlID" json:"assessments,omitempty"`
}
