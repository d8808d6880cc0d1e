package models

import "time"

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMid    = "mid"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Task statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusHold       = "hold"
)

// Row activity flag. Deleting a task flips TaskActive to TaskDeleted
// instead of removing the row.
const (
	TaskActive  = 1
	TaskDeleted = 0
)

var Priorities = []string{PriorityLow, PriorityMid, PriorityHigh, PriorityUrgent}

var TaskStatuses = []string{StatusPending, StatusInProgress, StatusCompleted, StatusFailed, StatusHold}

// TaskStatusLabels maps each status to its display label.
var TaskStatusLabels = map[string]string{
	StatusPending:    "Pending",
	StatusInProgress: "In Progress",
	StatusCompleted:  "Completed",
	StatusFailed:     "Failed",
	StatusHold:       "Hold",
}

func ValidPriority(p string) bool {
	for _, v := range Priorities {
		if v == p {
			return true
		}
	}
	return false
}

func ValidTaskStatus(s string) bool {
	for _, v := range TaskStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Task struct {
	ID               uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title            string     `gorm:"not null" json:"title"`
	Description      *string    `json:"description"`
	ProjectID        *uint      `gorm:"index" json:"projectId"`
	ProjectMeetingID *uint      `gorm:"index" json:"projectMeetingId"`
	ParentTaskID     *uint      `gorm:"index" json:"parentTaskId"`
	AssignedTo       *uint      `gorm:"index" json:"assignedTo"`
	Priority         string     `gorm:"not null;default:mid" json:"priority"`
	TaskStatus       string     `gorm:"not null;default:pending" json:"taskStatus"`
	Status           int        `gorm:"not null;default:1" json:"status"`
	SubmissionDate   *time.Time `json:"submissionDate"`
	ExecutionDate    *time.Time `json:"executionDate"`
	CompletionDate   *time.Time `json:"completionDate"`
	TargetDate       *time.Time `json:"targetDate"`
	TotalDuration    *int64     `json:"totalDuration"`
	Serial           int        `gorm:"not null;default:0" json:"serial"`
	Comment          *string    `json:"comment"`
	CreatedAt        time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt        time.Time  `gorm:"not null" json:"updatedAt"`
}

// DurationMinutes derives a task's total duration: whole minutes between
// execution and completion, rounded down. Nil when either side is unset.
func DurationMinutes(execution, completion *time.Time) *int64 {
	if execution == nil || completion == nil {
		return nil
	}
	minutes := completion.Sub(*execution).Milliseconds() / 60000
	return &minutes
}

// AnnotatedTask is a task decorated with subtask roll-ups and denormalized
// project/meeting names for list responses. Nothing here is persisted.
type AnnotatedTask struct {
	Task
	TotalSubTasks       int     `json:"totalSubTasks"`
	CompletedSubTasks   int     `json:"completedSubTasks"`
	IncompletedSubTasks int     `json:"incompletedSubTasks"`
	CompletionPercent   int     `json:"completionPercent"`
	ProjectName         *string `json:"projectName"`
	MeetingName         *string `json:"meetingName"`
}

// TaskStatusCount is one bucket of the status analytics response.
type TaskStatusCount struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Count  int64  `json:"count"`
}

// TaskStats summarises top-level task progress for the dashboard.
type TaskStats struct {
	Total              int64 `json:"total"`
	Incomplete         int64 `json:"incomplete"`
	TodayCompleted     int64 `json:"todayCompleted"`
	ThisWeekCompleted  int64 `json:"thisWeekCompleted"`
	ThisMonthCompleted int64 `json:"thisMonthCompleted"`
}
