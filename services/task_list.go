package services

import (
	"fmt"

	"github.com/ibrahimbiplob75/taskhub/database"
	"github.com/ibrahimbiplob75/taskhub/models"

	"gorm.io/gorm"
)

// ProjectTask is one row of the project-details listing: the task, its
// immediate children, and the denormalized meeting name.
type ProjectTask struct {
	models.Task
	Subtasks    []SubtaskSummary `json:"subtasks"`
	MeetingName *string          `json:"meetingName"`
}

// SubtaskSummary is the child projection of the project-details listing.
type SubtaskSummary struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Comment     *string `json:"comment"`
	TaskStatus  string  `json:"taskStatus"`
}

// childRow is the minimal projection used for roll-ups: a child's id,
// parent and status, never the full row.
type childRow struct {
	ID           uint
	ParentTaskID uint
	TaskStatus   string
}

// ListTasks is the task listing contract: filters, ordering, pagination
// and subtask roll-ups. Soft-deleted tasks never appear.
func (s *TaskService) ListTasks(db *database.Database, filter models.TaskListFilter) (models.TaskPage, error) {
	query := db.DB.Model(&models.Task{}).Where("status = ?", models.TaskActive)

	switch {
	case !filter.Parent.Set:
		query = query.Where("parent_task_id IS NULL")
	case filter.Parent.Null:
		// Explicit null: do not filter by parent.
	default:
		query = query.Where("parent_task_id = ?", filter.Parent.ID)
	}

	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.MeetingID != nil {
		query = query.Where("project_meeting_id = ?", *filter.MeetingID)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.TaskStatus != "" {
		if !models.ValidTaskStatus(filter.TaskStatus) {
			return models.TaskPage{}, fmt.Errorf("%w: unknown task status %q", ErrValidation, filter.TaskStatus)
		}
		query = query.Where("task_status = ?", filter.TaskStatus)
	}
	if filter.Priority != "" {
		if !models.ValidPriority(filter.Priority) {
			return models.TaskPage{}, fmt.Errorf("%w: unknown priority %q", ErrValidation, filter.Priority)
		}
		query = query.Where("priority = ?", filter.Priority)
	}

	completionRange := filter.Completion.Active()
	if completionRange {
		from, to, err := rangeBounds(filter.Completion)
		if err != nil {
			return models.TaskPage{}, err
		}
		query = query.Where("completion_date >= ? AND completion_date <= ?", from, to)
	}
	if filter.Submission.Active() {
		from, to, err := rangeBounds(filter.Submission)
		if err != nil {
			return models.TaskPage{}, err
		}
		query = query.Where("submission_date >= ? AND submission_date <= ?", from, to)
	}

	// Reviewing a completion window reads chronologically; everything
	// else shows newest work first.
	if completionRange {
		query = query.Order("submission_date ASC")
	} else {
		query = query.Order("created_at DESC")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = models.DefaultPerPage
	}

	var tasks []models.Task
	var total int64

	if filter.ShowAll {
		if err := query.Find(&tasks).Error; err != nil {
			return models.TaskPage{}, err
		}
		total = int64(len(tasks))
		page = 1
	} else {
		if err := query.Count(&total).Error; err != nil {
			return models.TaskPage{}, err
		}
		offset := (page - 1) * perPage
		if err := query.Offset(offset).Limit(perPage).Find(&tasks).Error; err != nil {
			return models.TaskPage{}, err
		}
	}

	annotated, err := s.annotate(db, tasks)
	if err != nil {
		return models.TaskPage{}, err
	}

	meta := models.NewPageMeta(total, page, perPage)
	if filter.ShowAll {
		meta.LastPage = 1
	}

	return models.TaskPage{Tasks: annotated, Meta: meta}, nil
}

// annotate decorates tasks with subtask roll-ups and project/meeting
// names. Children and names are each resolved with a single batched
// query over the page, not per task.
func (s *TaskService) annotate(db *database.Database, tasks []models.Task) ([]models.AnnotatedTask, error) {
	if len(tasks) == 0 {
		return []models.AnnotatedTask{}, nil
	}

	taskIDs := make([]uint, 0, len(tasks))
	projectIDSet := map[uint]struct{}{}
	meetingIDSet := map[uint]struct{}{}
	for _, t := range tasks {
		taskIDs = append(taskIDs, t.ID)
		if t.ProjectID != nil {
			projectIDSet[*t.ProjectID] = struct{}{}
		}
		if t.ProjectMeetingID != nil {
			meetingIDSet[*t.ProjectMeetingID] = struct{}{}
		}
	}

	var children []childRow
	err := db.DB.Model(&models.Task{}).
		Select("id, parent_task_id, task_status").
		Where("parent_task_id IN ? AND status = ?", taskIDs, models.TaskActive).
		Scan(&children).Error
	if err != nil {
		return nil, err
	}
	childrenByParent := map[uint][]models.Task{}
	for _, c := range children {
		childrenByParent[c.ParentTaskID] = append(childrenByParent[c.ParentTaskID], models.Task{ID: c.ID, TaskStatus: c.TaskStatus})
	}

	projectNames, err := projectTitles(db.DB, keys(projectIDSet))
	if err != nil {
		return nil, err
	}
	meetingNames, err := meetingTitles(db.DB, keys(meetingIDSet))
	if err != nil {
		return nil, err
	}

	annotated := make([]models.AnnotatedTask, 0, len(tasks))
	for _, t := range tasks {
		total, completed, incompleted, percent := models.SubtaskRollup(childrenByParent[t.ID])
		a := models.AnnotatedTask{
			Task:                t,
			TotalSubTasks:       total,
			CompletedSubTasks:   completed,
			IncompletedSubTasks: incompleted,
			CompletionPercent:   percent,
		}
		if t.ProjectID != nil {
			if name, ok := projectNames[*t.ProjectID]; ok {
				a.ProjectName = &name
			}
		}
		if t.ProjectMeetingID != nil {
			if name, ok := meetingNames[*t.ProjectMeetingID]; ok {
				a.MeetingName = &name
			}
		}
		annotated = append(annotated, a)
	}
	return annotated, nil
}

// GetSubtasks lists a task's immediate children, newest first, each with
// its own roll-ups.
func (s *TaskService) GetSubtasks(db *database.Database, parentID uint) ([]models.AnnotatedTask, error) {
	var count int64
	if err := db.DB.Model(&models.Task{}).Where("id = ?", parentID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrParentTaskNotFound
	}

	var subtasks []models.Task
	err := db.DB.
		Where("parent_task_id = ? AND status = ?", parentID, models.TaskActive).
		Order("created_at DESC").
		Find(&subtasks).Error
	if err != nil {
		return nil, err
	}

	return s.annotate(db, subtasks)
}

// GetProjectTasks is the project-details listing: top-level active tasks
// of one project, filterable by status set, meeting and a date window on
// the selected date field, with children included.
func (s *TaskService) GetProjectTasks(db *database.Database, projectID uint, filter ProjectTaskFilter) ([]ProjectTask, error) {
	query := db.DB.
		Where("status = ? AND project_id = ? AND parent_task_id IS NULL", models.TaskActive, projectID)

	if len(filter.TaskStatuses) > 0 {
		for _, st := range filter.TaskStatuses {
			if !models.ValidTaskStatus(st) {
				return nil, fmt.Errorf("%w: unknown task status %q", ErrValidation, st)
			}
		}
		query = query.Where("task_status IN ?", filter.TaskStatuses)
	}
	if filter.MeetingID != nil {
		query = query.Where("project_meeting_id = ?", *filter.MeetingID)
	}

	dateColumn := "submission_date"
	if filter.DateType == "completion_date" {
		dateColumn = "completion_date"
	}

	if filter.Range.Active() {
		from, to, err := rangeBounds(filter.Range)
		if err != nil {
			return nil, err
		}
		query = query.Where(dateColumn+" >= ? AND "+dateColumn+" <= ?", from, to)
	} else {
		query = query.Where(dateColumn + " IS NOT NULL")
	}

	sortColumn := dateColumn
	if filter.SortBy == "id" {
		sortColumn = "id"
	}
	direction := "ASC"
	if filter.SortOrder == "desc" {
		direction = "DESC"
	}
	query = query.Order(sortColumn + " " + direction)

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return []ProjectTask{}, nil
	}

	taskIDs := make([]uint, 0, len(tasks))
	meetingIDSet := map[uint]struct{}{}
	for _, t := range tasks {
		taskIDs = append(taskIDs, t.ID)
		if t.ProjectMeetingID != nil {
			meetingIDSet[*t.ProjectMeetingID] = struct{}{}
		}
	}

	type subtaskRow struct {
		ID           uint
		ParentTaskID uint
		Title        string
		Description  *string
		Comment      *string
		TaskStatus   string
	}
	var rows []subtaskRow
	err := db.DB.Model(&models.Task{}).
		Select("id, parent_task_id, title, description, comment, task_status").
		Where("parent_task_id IN ? AND status = ?", taskIDs, models.TaskActive).
		Order("id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	subtasksByParent := map[uint][]SubtaskSummary{}
	for _, r := range rows {
		subtasksByParent[r.ParentTaskID] = append(subtasksByParent[r.ParentTaskID], SubtaskSummary{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Comment:     r.Comment,
			TaskStatus:  r.TaskStatus,
		})
	}

	meetingNames, err := meetingTitles(db.DB, keys(meetingIDSet))
	if err != nil {
		return nil, err
	}

	result := make([]ProjectTask, 0, len(tasks))
	for _, t := range tasks {
		subtasks := subtasksByParent[t.ID]
		if subtasks == nil {
			subtasks = []SubtaskSummary{}
		}
		pt := ProjectTask{Task: t, Subtasks: subtasks}
		if t.ProjectMeetingID != nil {
			if name, ok := meetingNames[*t.ProjectMeetingID]; ok {
				pt.MeetingName = &name
			}
		}
		result = append(result, pt)
	}
	return result, nil
}

func rangeBounds(r models.DateRange) (from, to interface{}, err error) {
	fromDate, err := models.ParseTime(r.From)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	toDate, err := models.ParseTime(r.To)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return models.DayStart(fromDate), models.DayEnd(toDate), nil
}

func projectTitles(db *gorm.DB, ids []uint) (map[uint]string, error) {
	names := map[uint]string{}
	if len(ids) == 0 {
		return names, nil
	}
	type row struct {
		ID    uint
		Title string
	}
	var rows []row
	if err := db.Model(&models.Project{}).Select("id, title").Where("id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		names[r.ID] = r.Title
	}
	return names, nil
}

func meetingTitles(db *gorm.DB, ids []uint) (map[uint]string, error) {
	names := map[uint]string{}
	if len(ids) == 0 {
		return names, nil
	}
	type row struct {
		ID    uint
		Title string
	}
	var rows []row
	if err := db.Model(&models.Meeting{}).Select("id, title").Where("id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		names[r.ID] = r.Title
	}
	return names, nil
}

func keys(set map[uint]struct{}) []uint {
	out := make([]uint, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
