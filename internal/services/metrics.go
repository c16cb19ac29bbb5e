package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"conforma_app_echo/internal/models"
)

// Dashboard aggregates are recomputed at most once per metricsTTL; writes
// that change posture call InvalidateDashboards.
const (
	metricsTTL         = 2 * time.Minute
	metricsCachePrefix = "dashboard:"
)

// MetricsService computes the aggregates behind the executive, compliance
// and risk dashboards.
type MetricsService struct {
	db    *gorm.DB
	cache *RedisCache
}

func NewMetricsService(db *gorm.DB, cache *RedisCache) *MetricsService {
	return &MetricsService{db: db, cache: cache}
}

// FrameworkPosture summarizes assessment status counts for one framework.
type FrameworkPosture struct {
	FrameworkID   uint   `json:"framework_id"`
	FrameworkName string `json:"framework_name"`
	Compliant     int64  `json:"compliant"`
	Partial       int64  `json:"partial"`
	Noncompliant  int64  `json:"noncompliant"`
	NotAssessed   int64  `json:"not_assessed"`
}

// Coverage returns the fraction of controls with any assessment outcome.
func (p FrameworkPosture) Coverage() float64 {
	total := p.Compliant + p.Partial + p.Noncompliant + p.NotAssessed
	if total == 0 {
		return 0
	}
	return float64(total-p.NotAssessed) / float64(total)
}

// CoveragePercent is Coverage scaled for display.
func (p FrameworkPosture) CoveragePercent() float64 {
	return p.Coverage() * 100
}

// DashboardMetrics is the cached payload shared by all three dashboards.
type DashboardMetrics struct {
	TotalFrameworks  int64              `json:"total_frameworks"`
	TotalControls    int64              `json:"total_controls"`
	TotalAssessments int64              `json:"total_assessments"`
	StatusCounts     map[string]int64   `json:"status_counts"`
	SeverityCounts   map[string]int64   `json:"severity_counts"`
	OverdueReviews   int64              `json:"overdue_reviews"`
	Postures         []FrameworkPosture `json:"postures"`
	ComputedAt       time.Time          `json:"computed_at"`
}

// Collect returns the dashboard metrics, from cache when fresh.
func (s *MetricsService) Collect(ctx context.Context) (DashboardMetrics, error) {
	if s.cache == nil {
		return s.compute(ctx)
	}
	return GetOrSet(s.cache, ctx, metricsCachePrefix+"metrics", metricsTTL, func() (DashboardMetrics, error) {
		return s.compute(ctx)
	})
}

// InvalidateDashboards drops cached aggregates after a posture-changing write.
func (s *MetricsService) InvalidateDashboards(ctx context.Context) {
	if s.cache == nil {
		return
	}
	// Best effort; a stale dashboard expires within metricsTTL anyway.
	_ = s.cache.InvalidatePrefix(ctx, metricsCachePrefix)
}

func (s *MetricsService) compute(ctx context.Context) (DashboardMetrics, error) {
	db := s.db.WithContext(ctx)

	m := DashboardMetrics{
		StatusCounts:   make(map[string]int64),
		SeverityCounts: make(map[string]int64),
		ComputedAt:     time.Now().UTC(),
	}

	if err := db.Model(&models.Framework{}).Count(&m.TotalFrameworks).Error; err != nil {
		return m, err
	}
	if err := db.Model(&models.Control{}).Count(&m.TotalControls).Error; err != nil {
		return m, err
	}
	if err := db.Model(&models.Assessment{}).Count(&m.TotalAssessments).Error; err != nil {
		return m, err
	}

	type kv struct {
		Key   string
		Count int64
	}

	var statusRows []kv
	if err := db.Model(&models.Assessment{}).
		Select("status as key, count(*) as count").
		Group("status").Scan(&statusRows).Error; err != nil {
		return m, err
	}
	for _, row := range statusRows {
		m.StatusCounts[row.Key] = row.Count
	}

	var severityRows []kv
	if err := db.Model(&models.Assessment{}).
		Select("severity as key, count(*) as count").
		Where("status <> ?", models.AssessmentStatusNotAssessed).
		Group("severity").Scan(&severityRows).Error; err != nil {
		return m, err
	}
	for _, row := range severityRows {
		m.SeverityCounts[row.Key] = row.Count
	}

	// Overdue reviews need the RRULE evaluated per row, so this walks the
	// scheduled assessments instead of aggregating in SQL.
	var scheduled []models.Assessment
	if err := db.Where("review_rule IS NOT NULL AND review_rule <> ''").
		Find(&scheduled).Error; err != nil {
		return m, err
	}
	now := time.Now()
	for _, a := range scheduled {
		if a.ReviewOverdue(now) {
			m.OverdueReviews++
		}
	}

	var frameworks []models.Framework
	if err := db.Find(&frameworks).Error; err != nil {
		return m, err
	}
	for _, fw := range frameworks {
		posture := FrameworkPosture{FrameworkID: fw.ID, FrameworkName: fw.Name}

		var rows []kv
		if err := db.Model(&models.Assessment{}).
			Select("status as key, count(*) as count").
			Where("framework_id = ?", fw.ID).
			Group("status").Scan(&rows).Error; err != nil {
			return m, err
		}
		for _, row := range rows {
			switch models.AssessmentStatus(row.Key) {
			case models.AssessmentStatusCompliant:
				posture.Compliant = row.Count
			case models.AssessmentStatusPartial:
				posture.Partial = row.Count
			case models.AssessmentStatusNoncompliant:
				posture.Noncompliant = row.Count
			case models.AssessmentStatusNotAssessed:
				posture.NotAssessed = row.Count
			}
		}
		m.Postures = append(m.Postures, posture)
	}

	return m, nil
}
