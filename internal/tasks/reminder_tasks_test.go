package tasks

import (
	"context"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"conforma_app_echo/internal/models"
)

func newTaskTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.NotifPreference{},
		&models.Integration{},
		&models.ScheduledTask{},
		&models.ScheduledTaskHistory{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// webhookOwner stores a user whose reminders go through a webhook. With no
// enabled integration present, delivery fails deterministically.
func webhookOwner(t *testing.T, db *gorm.DB, email string) {
	t.Helper()

	user := models.User{Name: "Owner", Email: email}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	pref := models.NotifPreference{UserID: user.ID, Channel: models.NotificationChannelWebhook}
	if err := db.Create(&pref).Error; err != nil {
		t.Fatalf("failed to create preference: %v", err)
	}
}

func TestFormatReminderBody(t *testing.T) {
	args := SendReviewReminderArgs{
		OwnerEmail: "owner@example.com",
		Items: []ReminderItem{
			{AssessmentID: 1, Framework: "ISO 27001", ControlCode: "A.5.1", ControlTitle: "Policies for information security", DueSince: "2026-08-01"},
			{AssessmentID: 2, Framework: "NIST AI RMF", ControlCode: "GOVERN-1.1", ControlTitle: "Legal and regulatory requirements", DueSince: "2026-07-15"},
		},
	}

	body := formatReminderBody(args)

	for _, want := range []string{"A.5.1", "ISO 27001", "GOVERN-1.1", "2026-07-15"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q, got:\n%s", want, body)
		}
	}
}

func TestSendReviewReminderCreateTask(t *testing.T) {
	args := SendReviewReminderArgs{
		OwnerEmail: "owner@example.com",
		Items:      []ReminderItem{{AssessmentID: 7, Framework: "ISO 42001", ControlCode: "4.1", ControlTitle: "Context"}},
	}

	task, err := SendReviewReminderTask.CreateTask(args)
	if err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}

	if task.TaskName != "send_review_reminder" {
		t.Errorf("expected task name send_review_reminder, got %s", task.TaskName)
	}
	if task.TaskType != models.ScheduledTaskTypeOneTime {
		t.Errorf("expected onetime task, got %s", task.TaskType)
	}
	if task.MaxAttempt != 3 {
		t.Errorf("expected max attempt 3, got %d", task.MaxAttempt)
	}
	if task.Arguments["owner_email"] != "owner@example.com" {
		t.Errorf("expected owner_email in arguments, got %v", task.Arguments)
	}

	// Round-trip through the serialized form the worker sees
	var parsed SendReviewReminderArgs
	if err := parseArgs(*task, &parsed); err != nil {
		t.Fatalf("parseArgs returned error: %v", err)
	}
	if len(parsed.Items) != 1 || parsed.Items[0].AssessmentID != 7 {
		t.Errorf("unexpected parsed items: %+v", parsed.Items)
	}
}

func TestSendReviewReminderScheduledRetryReturnsNoError(t *testing.T) {
	db := newTaskTestDB(t)
	webhookOwner(t, db, "owner@example.com")

	task, err := SendReviewReminderTask.CreateTask(SendReviewReminderArgs{
		OwnerEmail: "owner@example.com",
		Items:      []ReminderItem{{AssessmentID: 1, Framework: "ISO 27001", ControlCode: "A.5.1", ControlTitle: "Policies"}},
	})
	if err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to store task: %v", err)
	}

	result, err := SendReviewReminderTask.HandleExecution(context.Background(), db, *task)

	// Delivery failed but a retry record was written; the worker must not
	// retry in-process on top of it, so the handler reports success.
	if err != nil {
		t.Fatalf("expected nil error when a retry was scheduled, got %v", err)
	}
	if result["status"] != "retry_scheduled" {
		t.Errorf("expected status retry_scheduled, got %v", result["status"])
	}

	var count int64
	db.Model(&models.ScheduledTask{}).Count(&count)
	if count != 2 {
		t.Fatalf("expected original task plus exactly one retry, got %d records", count)
	}

	var retry models.ScheduledTask
	if err := db.Where("id <> ?", task.ID).First(&retry).Error; err != nil {
		t.Fatalf("failed to load retry record: %v", err)
	}
	var retryArgs SendReviewReminderArgs
	if err := parseArgs(retry, &retryArgs); err != nil {
		t.Fatalf("parseArgs returned error: %v", err)
	}
	if retryArgs.AttemptCount != 1 {
		t.Errorf("expected retry attempt count 1, got %d", retryArgs.AttemptCount)
	}
}

func TestSendReviewReminderMaxAttemptsReturnsError(t *testing.T) {
	db := newTaskTestDB(t)
	webhookOwner(t, db, "owner@example.com")

	task, err := SendReviewReminderTask.CreateTask(SendReviewReminderArgs{
		OwnerEmail:   "owner@example.com",
		Items:        []ReminderItem{{AssessmentID: 1, Framework: "ISO 27001", ControlCode: "A.5.1", ControlTitle: "Policies"}},
		AttemptCount: 3,
	})
	if err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to store task: %v", err)
	}

	_, err = SendReviewReminderTask.HandleExecution(context.Background(), db, *task)
	if err == nil {
		t.Fatal("expected error once attempts are exhausted")
	}

	var count int64
	db.Model(&models.ScheduledTask{}).Count(&count)
	if count != 1 {
		t.Errorf("expected no retry record after max attempts, got %d records", count)
	}
}
