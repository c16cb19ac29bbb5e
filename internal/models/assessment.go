package models

import (
	"time"

	"github.com/teambition/rrule-go"
	"gorm.io/gorm"
)

// AssessmentStatus represents the compliance state of a control
type AssessmentStatus string

const (
	AssessmentStatusCompliant    AssessmentStatus = "compliant"
	AssessmentStatusPartial      AssessmentStatus = "partial"
	AssessmentStatusNoncompliant AssessmentStatus = "noncompliant"
	AssessmentStatusNotAssessed  AssessmentStatus = "not_assessed"
)

// RiskSeverity represents the residual risk attached to an assessment
type RiskSeverity string

const (
	RiskSeverityLow      RiskSeverity = "low"
	RiskSeverityMedium   RiskSeverity = "medium"
	RiskSeverityHigh     RiskSeverity = "high"
	RiskSeverityCritical RiskSeverity = "critical"
)

// Valid reports whether the status is one of the known values
func (s AssessmentStatus) Valid() bool {
	switch s {
	case AssessmentStatusCompliant, AssessmentStatusPartial,
		AssessmentStatusNoncompliant, AssessmentStatusNotAssessed:
		return true
	}
	return false
}

// Valid reports whether the severity is one of the known values
func (s RiskSeverity) Valid() bool {
	switch s {
	case RiskSeverityLow, RiskSeverityMedium, RiskSeverityHigh, RiskSeverityCritical:
		return true
	}
	return false
}

// ValidateReviewRule checks that rule parses as an RFC 5545 RRULE. NextReview
// tolerates an unparsable stored rule, so bad input must be rejected before
// it is persisted.
func ValidateReviewRule(rule string) error {
	_, err := rrule.StrToRRule(rule)
	return err
}

// Assessment records the compliance posture of one control
type Assessment struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	FrameworkID uint `gorm:"index" json:"framework_id"`
	ControlID   uint `gorm:"uniqueIndex" json:"control_id"`

	Status     AssessmentStatus `gorm:"type:varchar(20);default:'not_assessed'" json:"status"`
	Severity   RiskSeverity     `gorm:"type:varchar(20);default:'low'" json:"severity"`
	OwnerEmail string           `gorm:"type:varchar(255)" json:"owner_email"`
	Notes      string           `gorm:"type:text" json:"notes"`

	LastReviewed *time.Time `json:"last_reviewed"`
	ReviewRule   *string    `gorm:"type:text" json:"review_rule"` // RFC 5545 RRULE string

	// PublicToken backs read-only share links
	PublicToken string `gorm:"type:varchar(36);uniqueIndex" json:"public_token"`

	// Relationships
	Framework Framework `json:"framework,omitempty"`
	Control   Control   `json:"control,omitempty"`
}

// NextReview calculates when this assessment is due for review again
func (a Assessment) NextReview() time.Time {
	anchor := a.CreatedAt
	if a.LastReviewed != nil {
		anchor = *a.LastReviewed
	}

	if a.ReviewRule != nil && *a.ReviewRule != "" {
		rule, err := rrule.StrToRRule(*a.ReviewRule)
		if err == nil {
			rule.DTStart(anchor)
			next := rule.After(anchor, false)
			if !next.IsZero() {
				return next
			}
		}
	}
	// Fallback to the anchor date if parsing fails or no future date found
	return anchor
}

// ReviewOverdue reports whether the next review date has already passed
func (a Assessment) ReviewOverdue(now time.Time) bool {
	if a.ReviewRule == nil || *a.ReviewRule == "" {
		return false
	}
	return a.NextReview().Before(now)
}
