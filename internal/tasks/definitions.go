package tasks

// DefineTasks registers all available tasks
func DefineTasks() {
	// Register general tasks
	RegisterHandler(LogInfoTask.TaskID(), LogInfoTask.HandleExecution)

	// Register review tasks
	RegisterHandler(ScanOverdueReviewsTask.TaskID(), ScanOverdueReviewsTask.HandleExecution)
	RegisterHandler(SendReviewReminderTask.TaskID(), SendReviewReminderTask.HandleExecution)
}
