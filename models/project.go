package models

import "time"

type Project struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description *string   `json:"description"`
	Creator     uint      `gorm:"not null;index" json:"creator"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

// ProjectAnalytics is the per-project roll-up returned by the analytics
// endpoint: how many active tasks the project has and how many of those
// are not yet completed.
type ProjectAnalytics struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	TotalTasks      int64  `json:"totalTasks"`
	IncompleteTasks int64  `json:"incompleteTasks"`
}
