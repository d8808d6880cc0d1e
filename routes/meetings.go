package routes

import (
	"net/http"

	"github.com/ibrahimbiplob75/taskhub/database"
	"github.com/ibrahimbiplob75/taskhub/middleware"
	"github.com/ibrahimbiplob75/taskhub/models"
	"github.com/ibrahimbiplob75/taskhub/services"

	"github.com/gin-gonic/gin"
)

func RegisterMeetingRoutes(group *gin.RouterGroup, db *database.Database, meetingService services.MeetingServiceInterface, authService services.AuthServiceInterface) {
	group.GET("/meeting/slug/:slug", func(c *gin.Context) { getMeetingBySlug(c, db, meetingService) })

	open := group.Group("", middleware.OptionalAuthMiddleware(authService))
	open.GET("/meeting", func(c *gin.Context) { listMeetings(c, db, meetingService) })
	open.GET("/meeting/analytics", func(c *gin.Context) { meetingAnalytics(c, db, meetingService) })
	open.GET("/meeting/:id", func(c *gin.Context) { getMeeting(c, db, meetingService) })

	protected := group.Group("", middleware.AuthMiddleware(authService))
	protected.POST("/meeting/create", func(c *gin.Context) { createMeeting(c, db, meetingService) })
	protected.POST("/meeting/:id/update", func(c *gin.Context) { updateMeeting(c, db, meetingService) })
	protected.POST("/meeting/:id/delete", func(c *gin.Context) { deleteMeeting(c, db, meetingService) })
}

func listMeetings(c *gin.Context, db *database.Database, meetingService services.MeetingServiceInterface) {
	projectID, err := parseUintQuery(c, "project_id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	meetings, err := meetingService.ListMeetings(db, projectID, optionalCaller(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, meetings)
}

func meetingAnalytics(c *gin.Context, db *database.Database, meetingService services.MeetingServiceInterface) {
	analytics, err := meetingService.GetMeetingAnalytics(db, optionalCaller(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}

func getMeeting(c *gin.Context, db *database.Database, meetingService services.MeetingServiceInterface) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	meeting, err := meetingService.GetMeetingById(db, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, meeting)
}

func getMeetingBySlug(c *gin.Context, db *database.Database, meetingService services.MeetingServiceInterface) {
	meeting, err := meetingService.GetMeetingBySlug(db, c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, meeting)
}

func createMeeting(c *gin.Context, db *database.Database, meetingService services.MeetingServiceInterface) {
	userID, ok := requireCaller(c)
	if !ok {
		return
	}

	var input services.MeetingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	meeting, err := meetingService.CreateMeeting(db, input, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, meeting)
}

// requireMeetingCreator rejects callers other than the meeting's creator.
func requireMeetingCreator(c *gin.Context, db *database.Database, meetingService services.MeetingServiceInterface, id uint) (models.Meeting, bool) {
	userID, ok := requireCaller(c)
	if !ok {
		return models.Meeting{}, false
	}

	meeting, err := meetingService.GetMeetingById(db, id)
	if err != nil {
		abortWithError(c, err)
		return models.Meeting{}, false
	}
	if meeting.Creator != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the meeting creator can modify it"})
		return models.Meeting{}, false
	}

	return meeting, true
}

func updateMeeting(c *gin.Context, db *database.Database, meetingService services.MeetingServiceInterface) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}
	if _, ok := requireMeetingCreator(c, db, meetingService, id); !ok {
		return
	}

	var input services.MeetingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	meeting, err := meetingService.UpdateMeeting(db, id, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, meeting)
}

func deleteMeeting(c *gin.Context, db *database.Database, meetingService services.MeetingServiceInterface) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}
	if _, ok := requireMeetingCreator(c, db, meetingService, id); !ok {
		return
	}

	if err := meetingService.DeleteMeeting(db, id); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meeting deleted"})
}
