package tasks

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"conforma_app_echo/internal/models"
	"conforma_app_echo/internal/services"
)

// ReminderItem is one overdue control inside a reminder
type ReminderItem struct {
	AssessmentID uint   `json:"assessment_id"`
	Framework    string `json:"framework"`
	ControlCode  string `json:"control_code"`
	ControlTitle string `json:"control_title"`
	DueSince     string `json:"due_since"`
}

// SendReviewReminderArgs defines the arguments for a reminder task
type SendReviewReminderArgs struct {
	OwnerEmail   string         `json:"owner_email"`
	Items        []ReminderItem `json:"items"`
	AttemptCount int            `json:"attempt_count"`
}

// SendReviewReminderTaskDef encapsulates the reminder delivery logic
type SendReviewReminderTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *SendReviewReminderTaskDef) TaskID() string {
	return "send_review_reminder"
}

// CreateTask builds a ScheduledTask record for this task
func (t *SendReviewReminderTaskDef) CreateTask(args SendReviewReminderArgs) (*models.ScheduledTask, error) {
	return BuildScheduledTask(t.TaskID(), args, time.Now(), nil, models.ScheduledTaskTypeOneTime, 3)
}

// HandleExecution delivers the reminder through the owner's preferred channel
func (t *SendReviewReminderTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	var args SendReviewReminderArgs
	if err := parseArgs(task, &args); err != nil {
		return nil, err
	}

	if len(args.Items) == 0 {
		return map[string]interface{}{"status": "skipped", "message": "No items in reminder"}, nil
	}

	// Resolve the owner's channel preference; unknown owners get email
	channel := models.NotificationChannelEmail
	var pref models.NotifPreference
	var owner models.User
	if err := db.Where("email = ?", args.OwnerEmail).First(&owner).Error; err == nil {
		if err := db.Where("user_id = ?", owner.ID).First(&pref).Error; err == nil {
			channel = pref.Channel
		}
	}

	var sendErr error
	switch channel {
	case models.NotificationChannelNone:
		log.Printf("Review reminders disabled for %s, skipping %d items", args.OwnerEmail, len(args.Items))
		return map[string]interface{}{"status": "skipped", "message": "Channel set to none"}, nil
	case models.NotificationChannelWebhook:
		sendErr = sendWebhookReminder(db, pref, args)
	default:
		sendErr = sendEmailReminder(args)
	}

	if sendErr != nil {
		log.Printf("Failed to deliver review reminder to %s via %s: %v", args.OwnerEmail, channel, sendErr)

		if args.AttemptCount < task.MaxAttempt {
			retryArgs := args
			retryArgs.AttemptCount = args.AttemptCount + 1

			// Re-schedule in 5 minutes
			nextRun := time.Now().Add(5 * time.Minute)
			retry, err := BuildScheduledTask(t.TaskID(), retryArgs, nextRun, nil, models.ScheduledTaskTypeOneTime, task.MaxAttempt)
			if err == nil {
				err = db.Create(retry).Error
			}
			if err != nil {
				log.Printf("Failed to create retry task: %v", err)
				return nil, sendErr
			}
			// The scheduled record owns the retry now. Returning an error
			// here would make the worker retry in-process on top of it and
			// fan out duplicate reminders.
			return map[string]interface{}{
				"status":  "retry_scheduled",
				"attempt": args.AttemptCount,
			}, nil
		}

		return nil, fmt.Errorf("max attempts reached for %s: %w", args.OwnerEmail, sendErr)
	}

	return map[string]interface{}{
		"status":  "success",
		"items":   len(args.Items),
		"channel": string(channel),
	}, nil
}

// SendReviewReminderTask is the singleton instance of SendReviewReminderTaskDef
var SendReviewReminderTask = &SendReviewReminderTaskDef{}

// sendEmailReminder delivers the reminder over SMTP
func sendEmailReminder(args SendReviewReminderArgs) error {
	emailService := services.NewEmailService()

	subject := fmt.Sprintf("%d compliance reviews overdue", len(args.Items))
	return emailService.SendEmail([]string{args.OwnerEmail}, subject, formatReminderBody(args))
}

// sendWebhookReminder delivers the reminder through an integration
func sendWebhookReminder(db *gorm.DB, pref models.NotifPreference, args SendReviewReminderArgs) error {
	var integration models.Integration
	query := db.Where("enabled = ?", true)
	if pref.IntegrationID != nil {
		query = query.Where("id = ?", *pref.IntegrationID)
	}
	if err := query.First(&integration).Error; err != nil {
		return fmt.Errorf("no enabled integration available: %w", err)
	}

	data := map[string]interface{}{
		"owner_email": args.OwnerEmail,
		"items":       args.Items,
	}
	return services.NewWebhookService(integration).
		SendEvent("review_overdue", formatReminderBody(args), data)
}

func formatReminderBody(args SendReviewReminderArgs) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The following controls are overdue for review:\n\n")
	for _, item := range args.Items {
		fmt.Fprintf(&b, "- [%s] %s %s (due since %s)\n",
			item.Framework, item.ControlCode, item.ControlTitle, item.DueSince)
	}
	return b.String()
}
