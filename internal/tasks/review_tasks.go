package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"conforma_app_echo/internal/models"
)

// ScanOverdueReviewsTaskDef scans assessments whose review cadence has
// lapsed and fans out one reminder task per owner. It is normally scheduled
// as a recurring task (e.g. FREQ=DAILY).
type ScanOverdueReviewsTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *ScanOverdueReviewsTaskDef) TaskID() string {
	return "scan_overdue_reviews"
}

// HandleExecution finds overdue assessments and enqueues reminders
func (t *ScanOverdueReviewsTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	var scheduled []models.Assessment
	if err := db.Preload("Framework").Preload("Control").
		Where("review_rule IS NOT NULL AND review_rule <> ''").
		Find(&scheduled).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch assessments: %w", err)
	}

	now := time.Now()

	// One reminder per owner covering all of their overdue controls
	byOwner := make(map[string][]ReminderItem)
	for _, a := range scheduled {
		if !a.ReviewOverdue(now) {
			continue
		}
		if a.OwnerEmail == "" {
			log.Printf("Assessment %d is overdue but has no owner, skipping", a.ID)
			continue
		}
		byOwner[a.OwnerEmail] = append(byOwner[a.OwnerEmail], ReminderItem{
			AssessmentID: a.ID,
			Framework:    a.Framework.Name,
			ControlCode:  a.Control.Code,
			ControlTitle: a.Control.Title,
			DueSince:     a.NextReview().Format("2006-01-02"),
		})
	}

	enqueued := 0
	for owner, items := range byOwner {
		args := SendReviewReminderArgs{
			OwnerEmail: owner,
			Items:      items,
		}
		reminder, err := SendReviewReminderTask.CreateTask(args)
		if err != nil {
			log.Printf("Failed to build reminder task for %s: %v", owner, err)
			continue
		}
		if err := db.Create(reminder).Error; err != nil {
			log.Printf("Failed to enqueue reminder task for %s: %v", owner, err)
			continue
		}
		enqueued++
	}

	return map[string]interface{}{
		"status":         "success",
		"scanned":        len(scheduled),
		"overdue_owners": len(byOwner),
		"enqueued":       enqueued,
	}, nil
}

// ScanOverdueReviewsTask is the singleton instance of ScanOverdueReviewsTaskDef
var ScanOverdueReviewsTask = &ScanOverdueReviewsTaskDef{}
