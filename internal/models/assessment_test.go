package models

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestAssessmentNextReview(t *testing.T) {
	anchor := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		a        Assessment
		expected time.Time
	}{
		{
			name: "monthly cadence from last review",
			a: Assessment{
				LastReviewed: &anchor,
				ReviewRule:   strPtr("FREQ=MONTHLY;INTERVAL=1"),
			},
			expected: anchor.AddDate(0, 1, 0),
		},
		{
			name: "quarterly cadence",
			a: Assessment{
				LastReviewed: &anchor,
				ReviewRule:   strPtr("FREQ=MONTHLY;INTERVAL=3"),
			},
			expected: anchor.AddDate(0, 3, 0),
		},
		{
			name:     "no rule falls back to anchor",
			a:        Assessment{LastReviewed: &anchor},
			expected: anchor,
		},
		{
			name: "invalid rule falls back to anchor",
			a: Assessment{
				LastReviewed: &anchor,
				ReviewRule:   strPtr("NOT-A-RULE"),
			},
			expected: anchor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.NextReview()
			if !got.Equal(tt.expected) {
				t.Errorf("NextReview() = %v; want %v", got, tt.expected)
			}
		})
	}
}

func TestAssessmentReviewOverdue(t *testing.T) {
	past := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)

	overdue := Assessment{
		LastReviewed: &past,
		ReviewRule:   strPtr("FREQ=MONTHLY;INTERVAL=1"),
	}
	if !overdue.ReviewOverdue(now) {
		t.Error("expected assessment with year-old monthly cadence to be overdue")
	}

	noRule := Assessment{LastReviewed: &past}
	if noRule.ReviewOverdue(now) {
		t.Error("assessment without a review rule must never be overdue")
	}

	fresh := Assessment{
		LastReviewed: &now,
		ReviewRule:   strPtr("FREQ=MONTHLY;INTERVAL=1"),
	}
	if fresh.ReviewOverdue(now) {
		t.Error("freshly reviewed assessment must not be overdue")
	}
}

func TestAssessmentStatusValid(t *testing.T) {
	tests := []struct {
		status AssessmentStatus
		want   bool
	}{
		{AssessmentStatusCompliant, true},
		{AssessmentStatusPartial, true},
		{AssessmentStatusNoncompliant, true},
		{AssessmentStatusNotAssessed, true},
		{AssessmentStatus("passed"), false},
		{AssessmentStatus(""), false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestRiskSeverityValid(t *testing.T) {
	tests := []struct {
		severity RiskSeverity
		want     bool
	}{
		{RiskSeverityLow, true},
		{RiskSeverityMedium, true},
		{RiskSeverityHigh, true},
		{RiskSeverityCritical, true},
		{RiskSeverity("extreme"), false},
		{RiskSeverity(""), false},
	}

	for _, tt := range tests {
		if got := tt.severity.Valid(); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.severity, got, tt.want)
		}
	}
}

func TestValidateReviewRule(t *testing.T) {
	if err := ValidateReviewRule("FREQ=MONTHLY;INTERVAL=3"); err != nil {
		t.Errorf("expected valid rule to pass, got %v", err)
	}
	if err := ValidateReviewRule("every other tuesday"); err == nil {
		t.Error("expected unparsable rule to be rejected")
	}
}
