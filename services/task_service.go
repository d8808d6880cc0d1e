package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ibrahimbiplob75/taskhub/broker"
	"github.com/ibrahimbiplob75/taskhub/database"
	"github.com/ibrahimbiplob75/taskhub/models"

	"gorm.io/gorm"
)

// TaskInput carries the mutable task fields. On update only provided
// fields change; the Optional types keep "absent" and "clear this field"
// apart.
type TaskInput struct {
	Title            *string               `json:"title"`
	Description      models.OptionalString `json:"description"`
	ProjectID        models.OptionalUint   `json:"projectId"`
	ProjectMeetingID models.OptionalUint   `json:"projectMeetingId"`
	ParentTaskID     models.OptionalUint   `json:"parentTaskId"`
	AssignedTo       models.OptionalUint   `json:"assignedTo"`
	Priority         *string               `json:"priority"`
	TaskStatus       *string               `json:"taskStatus"`
	SubmissionDate   models.OptionalTime   `json:"submissionDate"`
	ExecutionDate    models.OptionalTime   `json:"executionDate"`
	CompletionDate   models.OptionalTime   `json:"completionDate"`
	Serial           *int                  `json:"serial"`
	Comment          models.OptionalString `json:"comment"`
}

// ProjectTaskFilter drives the project-details listing.
type ProjectTaskFilter struct {
	TaskStatuses []string
	MeetingID    *uint
	DateType     string // "submission_date" or "completion_date"
	SortBy       string // "id" or the selected date field
	SortOrder    string // "asc" or "desc"
	Range        models.DateRange
}

type TaskServiceInterface interface {
	CreateTask(db *database.Database, input TaskInput) (models.Task, error)
	GetTaskById(db *database.Database, id uint) (models.AnnotatedTask, error)
	UpdateTask(db *database.Database, id uint, input TaskInput) (models.Task, error)
	DeleteTask(db *database.Database, id uint) error
	ListTasks(db *database.Database, filter models.TaskListFilter) (models.TaskPage, error)
	GetSubtasks(db *database.Database, parentID uint) ([]models.AnnotatedTask, error)
	GetProjectTasks(db *database.Database, projectID uint, filter ProjectTaskFilter) ([]ProjectTask, error)
	SetTargetDate(db *database.Database, id uint, target models.OptionalTime) (models.Task, error)
	GetKanbanTasks(db *database.Database, assignee *uint) (map[string][]models.Task, error)
	UpdateKanbanTask(db *database.Database, id uint, taskStatus *string, serial *int) (models.Task, error)
	GetTaskStats(db *database.Database, assignee *uint) (models.TaskStats, error)
	GetTaskStatusAnalytics(db *database.Database, assignee *uint) ([]models.TaskStatusCount, error)
	GetCalendarYears(db *database.Database, assignee *uint) ([]int, error)
	GetCalendarMonthData(db *database.Database, year, month int, assignee *uint) (map[int]int64, error)
}

type TaskService struct{}

func (s *TaskService) CreateTask(db *database.Database, input TaskInput) (models.Task, error) {
	if input.Title == nil || *input.Title == "" {
		return models.Task{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	priority := models.PriorityMid
	if input.Priority != nil {
		priority = *input.Priority
	}
	if !models.ValidPriority(priority) {
		return models.Task{}, fmt.Errorf("%w: priority must be one of: %s", ErrValidation, strings.Join(models.Priorities, ", "))
	}

	taskStatus := models.StatusPending
	if input.TaskStatus != nil {
		taskStatus = *input.TaskStatus
	}
	if !models.ValidTaskStatus(taskStatus) {
		return models.Task{}, fmt.Errorf("%w: task status must be one of: %s", ErrValidation, strings.Join(models.TaskStatuses, ", "))
	}

	if err := s.checkReferences(db, input.ProjectID.Ptr(), input.AssignedTo.Ptr(), input.ParentTaskID.Ptr(), input.ProjectMeetingID.Ptr(), input.ProjectID.Ptr()); err != nil {
		return models.Task{}, err
	}

	submission := time.Now()
	if input.SubmissionDate.Valid {
		submission = input.SubmissionDate.Value
	}

	task := models.Task{
		Title:            *input.Title,
		Description:      input.Description.Ptr(),
		ProjectID:        input.ProjectID.Ptr(),
		ProjectMeetingID: input.ProjectMeetingID.Ptr(),
		ParentTaskID:     input.ParentTaskID.Ptr(),
		AssignedTo:       input.AssignedTo.Ptr(),
		Priority:         priority,
		TaskStatus:       taskStatus,
		Status:           models.TaskActive,
		SubmissionDate:   &submission,
		ExecutionDate:    input.ExecutionDate.Ptr(),
		CompletionDate:   input.CompletionDate.Ptr(),
		Comment:          input.Comment.Ptr(),
	}
	task.TotalDuration = models.DurationMinutes(task.ExecutionDate, task.CompletionDate)
	if input.Serial != nil {
		task.Serial = *input.Serial
	}

	if err := db.DB.Create(&task).Error; err != nil {
		return models.Task{}, err
	}

	broker.Publish(broker.TaskSubject, broker.TaskCreated, "task", map[string]interface{}{
		"task_id":     task.ID,
		"assigned_to": task.AssignedTo,
		"title":       task.Title,
		"task_status": task.TaskStatus,
	})

	return task, nil
}

// checkReferences validates every referenced entity a task points at.
// meetingProject is the project the task will belong to after the write;
// a meeting from another project is rejected.
func (s *TaskService) checkReferences(db *database.Database, projectID, assignedTo, parentTaskID, meetingID, meetingProject *uint) error {
	if projectID != nil {
		var count int64
		if err := db.DB.Model(&models.Project{}).Where("id = ?", *projectID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrProjectNotFound
		}
	}

	if assignedTo != nil {
		var count int64
		if err := db.DB.Model(&models.User{}).Where("id = ?", *assignedTo).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrUserNotFound
		}
	}

	if parentTaskID != nil {
		var count int64
		if err := db.DB.Model(&models.Task{}).Where("id = ?", *parentTaskID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrParentTaskNotFound
		}
	}

	if meetingID != nil {
		var meeting models.Meeting
		if err := db.DB.First(&meeting, "id = ?", *meetingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMeetingNotFound
			}
			return err
		}
		if meetingProject != nil && meeting.ProjectID != *meetingProject {
			return fmt.Errorf("%w: meeting does not belong to the selected project", ErrValidation)
		}
	}

	return nil
}

func (s *TaskService) GetTaskById(db *database.Database, id uint) (models.AnnotatedTask, error) {
	var task models.Task
	if err := db.DB.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.AnnotatedTask{}, ErrTaskNotFound
		}
		return models.AnnotatedTask{}, err
	}

	annotated, err := s.annotate(db, []models.Task{task})
	if err != nil {
		return models.AnnotatedTask{}, err
	}
	return annotated[0], nil
}

func (s *TaskService) UpdateTask(db *database.Database, id uint, input TaskInput) (models.Task, error) {
	var task models.Task
	if err := db.DB.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	updates := map[string]interface{}{}

	if input.Title != nil {
		if *input.Title == "" {
			return models.Task{}, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		updates["title"] = *input.Title
	}
	if input.Description.Set {
		updates["description"] = input.Description.Ptr()
	}
	if input.Comment.Set {
		updates["comment"] = input.Comment.Ptr()
	}
	if input.Serial != nil {
		updates["serial"] = *input.Serial
	}

	// Self-parenting is checked before parent existence.
	if input.ParentTaskID.Set {
		if input.ParentTaskID.Valid && input.ParentTaskID.Value == task.ID {
			return models.Task{}, fmt.Errorf("%w: task cannot be its own parent", ErrValidation)
		}
		updates["parent_task_id"] = input.ParentTaskID.Ptr()
	}

	if input.Priority != nil {
		if !models.ValidPriority(*input.Priority) {
			return models.Task{}, fmt.Errorf("%w: priority must be one of: %s", ErrValidation, strings.Join(models.Priorities, ", "))
		}
		updates["priority"] = *input.Priority
	}
	if input.TaskStatus != nil {
		if !models.ValidTaskStatus(*input.TaskStatus) {
			return models.Task{}, fmt.Errorf("%w: task status must be one of: %s", ErrValidation, strings.Join(models.TaskStatuses, ", "))
		}
		updates["task_status"] = *input.TaskStatus
	}

	if input.ProjectID.Set {
		updates["project_id"] = input.ProjectID.Ptr()
	}
	if input.ProjectMeetingID.Set {
		updates["project_meeting_id"] = input.ProjectMeetingID.Ptr()
	}
	if input.AssignedTo.Set {
		updates["assigned_to"] = input.AssignedTo.Ptr()
	}
	if input.SubmissionDate.Set {
		updates["submission_date"] = input.SubmissionDate.Ptr()
	}

	// Duration follows the execution/completion pair: recomputed whenever
	// either date changes, cleared when either side ends up unset.
	effExecution := task.ExecutionDate
	if input.ExecutionDate.Set {
		effExecution = input.ExecutionDate.Ptr()
		updates["execution_date"] = effExecution
	}
	effCompletion := task.CompletionDate
	if input.CompletionDate.Set {
		effCompletion = input.CompletionDate.Ptr()
		updates["completion_date"] = effCompletion
	}
	if input.ExecutionDate.Set || input.CompletionDate.Set {
		updates["total_duration"] = models.DurationMinutes(effExecution, effCompletion)
	}

	projectToCheck := task.ProjectID
	if input.ProjectID.Set {
		projectToCheck = input.ProjectID.Ptr()
	}
	if err := s.checkReferences(db, input.ProjectID.Ptr(), input.AssignedTo.Ptr(), input.ParentTaskID.Ptr(), input.ProjectMeetingID.Ptr(), projectToCheck); err != nil {
		return models.Task{}, err
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&task).Updates(updates).Error; err != nil {
			return models.Task{}, err
		}
	}

	broker.Publish(broker.TaskSubject, broker.TaskUpdated, "task", map[string]interface{}{
		"task_id":     task.ID,
		"assigned_to": task.AssignedTo,
		"title":       task.Title,
		"task_status": task.TaskStatus,
	})

	return task, nil
}

// DeleteTask soft-deletes: the row stays, flagged inactive, and stops
// appearing in listings.
func (s *TaskService) DeleteTask(db *database.Database, id uint) error {
	var task models.Task
	if err := db.DB.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if err := db.DB.Model(&task).Update("status", models.TaskDeleted).Error; err != nil {
		return err
	}

	broker.Publish(broker.TaskSubject, broker.TaskDeleted, "task", map[string]interface{}{
		"task_id":     task.ID,
		"assigned_to": task.AssignedTo,
	})

	return nil
}

// SetTargetDate sets or clears the personal schedule date of a task.
func (s *TaskService) SetTargetDate(db *database.Database, id uint, target models.OptionalTime) (models.Task, error) {
	var task models.Task
	if err := db.DB.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	if err := db.DB.Model(&task).Update("target_date", target.Ptr()).Error; err != nil {
		return models.Task{}, err
	}

	broker.Publish(broker.TaskSubject, broker.TaskUpdated, "task", map[string]interface{}{
		"task_id":     task.ID,
		"assigned_to": task.AssignedTo,
	})

	return task, nil
}

var TaskServiceInstance TaskServiceInterface = &TaskService{}
