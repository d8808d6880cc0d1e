package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ibrahimbiplob75/taskhub/broker"
	"github.com/ibrahimbiplob75/taskhub/database"
	"github.com/ibrahimbiplob75/taskhub/models"

	"gorm.io/gorm"
)

// topLevelActive scopes a query to active top-level tasks, optionally of
// one assignee. Every aggregate view shares this base.
func topLevelActive(db *database.Database, assignee *uint) *gorm.DB {
	query := db.DB.Model(&models.Task{}).
		Where("status = ? AND parent_task_id IS NULL", models.TaskActive)
	if assignee != nil {
		query = query.Where("assigned_to = ?", *assignee)
	}
	return query
}

// GetTaskStats summarises progress: total and incomplete task counts plus
// completions today, this ISO week, and this month.
func (s *TaskService) GetTaskStats(db *database.Database, assignee *uint) (models.TaskStats, error) {
	var stats models.TaskStats

	if err := topLevelActive(db, assignee).Count(&stats.Total).Error; err != nil {
		return models.TaskStats{}, err
	}
	if err := topLevelActive(db, assignee).Where("task_status <> ?", models.StatusCompleted).Count(&stats.Incomplete).Error; err != nil {
		return models.TaskStats{}, err
	}

	now := time.Now()
	y, m, d := now.Date()
	startOfToday := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	endOfToday := startOfToday.AddDate(0, 0, 1)
	startOfWeek := startOfISOWeek(now)
	endOfWeek := startOfWeek.AddDate(0, 0, 7)
	startOfMonth := time.Date(y, m, 1, 0, 0, 0, 0, time.Local)
	endOfMonth := startOfMonth.AddDate(0, 1, 0)

	completedBetween := func(from, to time.Time) (int64, error) {
		var count int64
		err := topLevelActive(db, assignee).
			Where("task_status = ? AND completion_date >= ? AND completion_date < ?", models.StatusCompleted, from, to).
			Count(&count).Error
		return count, err
	}

	var err error
	if stats.TodayCompleted, err = completedBetween(startOfToday, endOfToday); err != nil {
		return models.TaskStats{}, err
	}
	if stats.ThisWeekCompleted, err = completedBetween(startOfWeek, endOfWeek); err != nil {
		return models.TaskStats{}, err
	}
	if stats.ThisMonthCompleted, err = completedBetween(startOfMonth, endOfMonth); err != nil {
		return models.TaskStats{}, err
	}

	return stats, nil
}

// startOfISOWeek returns midnight of the Monday of t's week.
func startOfISOWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	offset := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	return midnight.AddDate(0, 0, -offset)
}

// GetTaskStatusAnalytics counts active top-level tasks per status. Every
// status appears in the result, zero or not, in canonical order.
func (s *TaskService) GetTaskStatusAnalytics(db *database.Database, assignee *uint) ([]models.TaskStatusCount, error) {
	type statusCount struct {
		TaskStatus string
		Count      int64
	}
	var rows []statusCount
	err := topLevelActive(db, assignee).
		Select("task_status, COUNT(*) AS count").
		Group("task_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	countByStatus := map[string]int64{}
	for _, r := range rows {
		countByStatus[r.TaskStatus] = r.Count
	}

	analytics := make([]models.TaskStatusCount, 0, len(models.TaskStatuses))
	for _, status := range models.TaskStatuses {
		analytics = append(analytics, models.TaskStatusCount{
			Status: status,
			Label:  models.TaskStatusLabels[status],
			Count:  countByStatus[status],
		})
	}
	return analytics, nil
}

// GetCalendarYears lists the distinct years task activity spans, for the
// calendar's year picker. The current year is always present.
func (s *TaskService) GetCalendarYears(db *database.Database, assignee *uint) ([]int, error) {
	type dateRow struct {
		CompletionDate *time.Time
		SubmissionDate *time.Time
	}
	var rows []dateRow
	err := topLevelActive(db, assignee).
		Select("completion_date, submission_date").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	yearSet := map[int]struct{}{time.Now().Year(): {}}
	for _, r := range rows {
		if r.CompletionDate != nil {
			yearSet[r.CompletionDate.Year()] = struct{}{}
		}
		if r.SubmissionDate != nil {
			yearSet[r.SubmissionDate.Year()] = struct{}{}
		}
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

// GetCalendarMonthData returns the completed-task count per day of the
// given month.
func (s *TaskService) GetCalendarMonthData(db *database.Database, year, month int, assignee *uint) (map[int]int64, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrValidation)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	var completions []time.Time
	err := db.DB.Model(&models.Task{}).
		Where("status = ? AND task_status = ? AND completion_date >= ? AND completion_date < ?",
			models.TaskActive, models.StatusCompleted, start, end).
		Scopes(func(q *gorm.DB) *gorm.DB {
			if assignee != nil {
				return q.Where("assigned_to = ?", *assignee)
			}
			return q
		}).
		Pluck("completion_date", &completions).Error
	if err != nil {
		return nil, err
	}

	countByDay := map[int]int64{}
	for _, c := range completions {
		countByDay[c.Day()]++
	}
	return countByDay, nil
}

// GetKanbanTasks returns active top-level tasks grouped by status for the
// board view, ordered by their serial within each column.
func (s *TaskService) GetKanbanTasks(db *database.Database, assignee *uint) (map[string][]models.Task, error) {
	var tasks []models.Task
	err := topLevelActive(db, assignee).
		Order("serial ASC, id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	columns := make(map[string][]models.Task, len(models.TaskStatuses))
	for _, status := range models.TaskStatuses {
		columns[status] = []models.Task{}
	}
	for _, t := range tasks {
		columns[t.TaskStatus] = append(columns[t.TaskStatus], t)
	}
	return columns, nil
}

// UpdateKanbanTask moves a task on the board: a new status column, a new
// serial position, or both.
func (s *TaskService) UpdateKanbanTask(db *database.Database, id uint, taskStatus *string, serial *int) (models.Task, error) {
	if taskStatus == nil && serial == nil {
		return models.Task{}, fmt.Errorf("%w: taskStatus or serial is required", ErrValidation)
	}

	var task models.Task
	if err := db.DB.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	updates := map[string]interface{}{}
	if taskStatus != nil {
		if !models.ValidTaskStatus(*taskStatus) {
			return models.Task{}, fmt.Errorf("%w: task status must be one of: %s", ErrValidation, strings.Join(models.TaskStatuses, ", "))
		}
		updates["task_status"] = *taskStatus
	}
	if serial != nil {
		updates["serial"] = *serial
	}

	if err := db.DB.Model(&task).Updates(updates).Error; err != nil {
		return models.Task{}, err
	}

	broker.Publish(broker.TaskSubject, broker.TaskUpdated, "task", map[string]interface{}{
		"task_id":     task.ID,
		"assigned_to": task.AssignedTo,
		"task_status": task.TaskStatus,
		"serial":      task.Serial,
	})

	return task, nil
}
