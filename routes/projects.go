package routes

import (
	"net/http"
	"strings"

	"github.com/ibrahimbiplob75/taskhub/database"
	"github.com/ibrahimbiplob75/taskhub/middleware"
	"github.com/ibrahimbiplob75/taskhub/models"
	"github.com/ibrahimbiplob75/taskhub/services"

	"github.com/gin-gonic/gin"
)

func RegisterProjectRoutes(group *gin.RouterGroup, db *database.Database, projectService services.ProjectServiceInterface, taskService services.TaskServiceInterface, authService services.AuthServiceInterface) {
	open := group.Group("", middleware.OptionalAuthMiddleware(authService))
	open.GET("/project", func(c *gin.Context) { listProjects(c, db, projectService) })
	open.GET("/project/analytics", func(c *gin.Context) { projectAnalytics(c, db, projectService) })
	open.GET("/project/:id", func(c *gin.Context) { getProject(c, db, projectService) })
	open.GET("/project/:id/tasks", func(c *gin.Context) { projectTasks(c, db, taskService) })

	protected := group.Group("", middleware.AuthMiddleware(authService))
	protected.POST("/project/create", func(c *gin.Context) { createProject(c, db, projectService) })
	protected.POST("/project/:id/update", func(c *gin.Context) { updateProject(c, db, projectService) })
	protected.POST("/project/:id/delete", func(c *gin.Context) { deleteProject(c, db, projectService) })
}

// listProjects scopes to the caller's projects when authenticated and
// returns every project otherwise.
func listProjects(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	projects, err := projectService.ListProjects(db, optionalCaller(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

func projectAnalytics(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	analytics, err := projectService.GetProjectAnalytics(db, optionalCaller(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}

func getProject(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	project, err := projectService.GetProjectById(db, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func projectTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	filter := services.ProjectTaskFilter{
		DateType:  c.DefaultQuery("date_type", "submission_date"),
		SortBy:    c.DefaultQuery("sort_by", "id"),
		SortOrder: c.DefaultQuery("sort_order", "asc"),
		Range: models.DateRange{
			From: c.Query("from_date"),
			To:   c.Query("to_date"),
		},
	}
	if raw := c.Query("task_status"); raw != "" {
		filter.TaskStatuses = strings.Split(raw, ",")
	}
	filter.MeetingID, err = parseUintQuery(c, "meeting_id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	tasks, err := taskService.GetProjectTasks(db, id, filter)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func createProject(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	userID, ok := requireCaller(c)
	if !ok {
		return
	}

	var input services.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	project, err := projectService.CreateProject(db, input, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// requireProjectOwner loads the project and rejects callers other than
// its creator. Missing projects stay 404 so ownership is not probeable.
func requireProjectOwner(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface, id uint) (models.Project, bool) {
	userID, ok := requireCaller(c)
	if !ok {
		return models.Project{}, false
	}

	project, err := projectService.GetProjectById(db, id)
	if err != nil {
		abortWithError(c, err)
		return models.Project{}, false
	}
	if project.Creator != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the project creator can modify it"})
		return models.Project{}, false
	}

	return project, true
}

func updateProject(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}
	if _, ok := requireProjectOwner(c, db, projectService, id); !ok {
		return
	}

	var input services.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	project, err := projectService.UpdateProject(db, id, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func deleteProject(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}
	if _, ok := requireProjectOwner(c, db, projectService, id); !ok {
		return
	}

	if err := projectService.DeleteProject(db, id); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}
