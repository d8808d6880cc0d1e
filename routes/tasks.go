package routes

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ibrahimbiplob75/taskhub/database"
	"github.com/ibrahimbiplob75/taskhub/middleware"
	"github.com/ibrahimbiplob75/taskhub/models"
	"github.com/ibrahimbiplob75/taskhub/services"

	"github.com/gin-gonic/gin"
)

func RegisterTaskRoutes(group *gin.RouterGroup, db *database.Database, taskService services.TaskServiceInterface, authService services.AuthServiceInterface) {
	open := group.Group("", middleware.OptionalAuthMiddleware(authService))
	open.GET("/task", func(c *gin.Context) { listTasks(c, db, taskService) })
	open.GET("/task/stats", func(c *gin.Context) { taskStats(c, db, taskService) })
	open.GET("/task/analytics", func(c *gin.Context) { taskStatusAnalytics(c, db, taskService) })
	open.GET("/task/calendar-years", func(c *gin.Context) { taskCalendarYears(c, db, taskService) })
	open.GET("/task/calendar", func(c *gin.Context) { taskCalendar(c, db, taskService) })
	open.GET("/kanban-tasks", func(c *gin.Context) { kanbanTasks(c, db, taskService) })
	open.GET("/task/:id", func(c *gin.Context) { getTask(c, db, taskService) })
	open.GET("/task/:id/subtasks", func(c *gin.Context) { getSubtasks(c, db, taskService) })

	protected := group.Group("", middleware.AuthMiddleware(authService))
	protected.POST("/task/create", func(c *gin.Context) { createTask(c, db, taskService) })
	protected.POST("/task/fast-create", func(c *gin.Context) { fastCreateTask(c, db, taskService) })
	protected.POST("/task/set-target-date", func(c *gin.Context) { setTargetDate(c, db, taskService) })
	protected.POST("/task/:id/update", func(c *gin.Context) { updateTask(c, db, taskService) })
	protected.POST("/task/:id/delete", func(c *gin.Context) { deleteTask(c, db, taskService) })
	protected.PATCH("/kanban-update-task", func(c *gin.Context) { updateKanbanTask(c, db, taskService) })
}

type taskListResponse struct {
	Tasks []models.AnnotatedTask `json:"tasks"`
	models.PageMeta
	Links []PageLink `json:"links"`
}

// parseTaskListFilter maps the listing query parameters onto the filter.
// The parent filter is tri-state: absent means top-level tasks only, the
// literal value "null" means no parent predicate, and an id means that
// parent's children.
func parseTaskListFilter(c *gin.Context) (models.TaskListFilter, error) {
	var filter models.TaskListFilter
	var err error

	if raw, present := c.GetQuery("parent_task_id"); present {
		if raw == "null" {
			filter.Parent = models.ParentAny()
		} else {
			id, parseErr := strconv.ParseUint(raw, 10, 32)
			if parseErr != nil {
				return filter, fmt.Errorf("%w: invalid parent_task_id %q", services.ErrValidation, raw)
			}
			filter.Parent = models.ParentID(uint(id))
		}
	}

	if filter.ProjectID, err = parseUintQuery(c, "project_id"); err != nil {
		return filter, err
	}
	if filter.MeetingID, err = parseUintQuery(c, "project_meeting_id"); err != nil {
		return filter, err
	}
	if filter.AssignedTo, err = parseUintQuery(c, "assigned_to"); err != nil {
		return filter, err
	}

	filter.TaskStatus = c.Query("task_status")
	filter.Priority = c.Query("priority")
	filter.Completion = models.DateRange{From: c.Query("from_date"), To: c.Query("to_date")}
	filter.Submission = models.DateRange{From: c.Query("submission_date_from"), To: c.Query("submission_date_to")}

	showAll := c.Query("show_all")
	filter.ShowAll = showAll == "true" || showAll == "1"

	if filter.Page, err = parseIntQuery(c, "page", 1); err != nil {
		return filter, err
	}
	if filter.PerPage, err = parseIntQuery(c, "per_page", models.DefaultPerPage); err != nil {
		return filter, err
	}

	return filter, nil
}

func listTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	filter, err := parseTaskListFilter(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	// Authenticated callers see their own tasks unless they filter
	// explicitly or ask for everything.
	if filter.AssignedTo == nil && !filter.ShowAll {
		filter.AssignedTo = optionalCaller(c)
	}

	page, err := taskService.ListTasks(db, filter)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskListResponse{
		Tasks:    page.Tasks,
		PageMeta: page.Meta,
		Links:    buildPageLinks(c, page.Meta),
	})
}

func getTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	task, err := taskService.GetTaskById(db, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func getSubtasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	subtasks, err := taskService.GetSubtasks(db, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": subtasks})
}

func createTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	var input services.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	task, err := taskService.CreateTask(db, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// fastCreateTask accepts title and project only. The task lands on the
// caller's plate with default priority and status.
func fastCreateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := requireCaller(c)
	if !ok {
		return
	}

	var body struct {
		Title     *string             `json:"title"`
		ProjectID models.OptionalUint `json:"projectId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	input := services.TaskInput{
		Title:      body.Title,
		ProjectID:  body.ProjectID,
		AssignedTo: models.OptionalUint{Set: true, Valid: true, Value: userID},
	}

	task, err := taskService.CreateTask(db, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// requireTaskAssignee enforces the task mutation rule: only the assignee
// may touch an assigned task; unassigned tasks are open to any
// authenticated user.
func requireTaskAssignee(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface, id uint) bool {
	userID, ok := requireCaller(c)
	if !ok {
		return false
	}

	task, err := taskService.GetTaskById(db, id)
	if err != nil {
		abortWithError(c, err)
		return false
	}
	if task.AssignedTo != nil && *task.AssignedTo != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the assignee can modify this task"})
		return false
	}

	return true
}

func updateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !requireTaskAssignee(c, db, taskService, id) {
		return
	}

	var input services.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	task, err := taskService.UpdateTask(db, id, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func deleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !requireTaskAssignee(c, db, taskService, id) {
		return
	}

	if err := taskService.DeleteTask(db, id); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

func setTargetDate(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	var body struct {
		TaskID     *uint               `json:"taskId"`
		TargetDate models.OptionalTime `json:"targetDate"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if body.TaskID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "taskId is required"})
		return
	}

	task, err := taskService.SetTargetDate(db, *body.TaskID, body.TargetDate)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func kanbanTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	columns, err := taskService.GetKanbanTasks(db, optionalCaller(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, columns)
}

func updateKanbanTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	var body struct {
		TaskID     *uint   `json:"taskId"`
		TaskStatus *string `json:"taskStatus"`
		Serial     *int    `json:"serial"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if body.TaskID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "taskId is required"})
		return
	}
	if !requireTaskAssignee(c, db, taskService, *body.TaskID) {
		return
	}

	task, err := taskService.UpdateKanbanTask(db, *body.TaskID, body.TaskStatus, body.Serial)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func taskStats(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	stats, err := taskService.GetTaskStats(db, optionalCaller(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func taskStatusAnalytics(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	counts, err := taskService.GetTaskStatusAnalytics(db, optionalCaller(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

func taskCalendarYears(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	years, err := taskService.GetCalendarYears(db, optionalCaller(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"years": years})
}

func taskCalendar(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	year, err := parseIntQuery(c, "year", 0)
	if err != nil {
		abortWithError(c, err)
		return
	}
	month, err := parseIntQuery(c, "month", 0)
	if err != nil {
		abortWithError(c, err)
		return
	}

	counts, err := taskService.GetCalendarMonthData(db, year, month, optionalCaller(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}
