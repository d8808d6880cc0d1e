package models

import "time"

type Meeting struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Slug      string    `gorm:"unique;not null;index" json:"slug"`
	ProjectID uint      `gorm:"not null;index" json:"projectId"`
	Creator   uint      `gorm:"not null;index" json:"creator"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// MeetingAnalytics is the per-meeting roll-up of active task completion.
type MeetingAnalytics struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	TotalTasks     int64  `json:"totalTasks"`
	CompletedTasks int64  `json:"completedTasks"`
}
