package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ibrahimbiplob75/taskhub/broker"
	"github.com/ibrahimbiplob75/taskhub/database"
	"github.com/ibrahimbiplob75/taskhub/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MeetingInput carries the mutable meeting fields.
type MeetingInput struct {
	Title     *string `json:"title"`
	ProjectID *uint   `json:"projectId"`
}

type MeetingServiceInterface interface {
	CreateMeeting(db *database.Database, input MeetingInput, creator uint) (models.Meeting, error)
	GetMeetingById(db *database.Database, id uint) (models.Meeting, error)
	GetMeetingBySlug(db *database.Database, slug string) (models.Meeting, error)
	UpdateMeeting(db *database.Database, id uint, input MeetingInput) (models.Meeting, error)
	DeleteMeeting(db *database.Database, id uint) error
	ListMeetings(db *database.Database, projectID, creator *uint) ([]models.Meeting, error)
	GetMeetingAnalytics(db *database.Database, creator *uint) ([]models.MeetingAnalytics, error)
}

type MeetingService struct{}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into a URL-safe identifier.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "meeting"
	}
	return slug
}

// uniqueSlug derives a slug from the title, appending a short random
// suffix when the plain slug is already taken.
func uniqueSlug(db *database.Database, title string) (string, error) {
	slug := Slugify(title)
	var count int64
	if err := db.DB.Model(&models.Meeting{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return slug, nil
	}
	return slug + "-" + uuid.NewString()[:8], nil
}

func (s *MeetingService) CreateMeeting(db *database.Database, input MeetingInput, creator uint) (models.Meeting, error) {
	if input.Title == nil || *input.Title == "" || input.ProjectID == nil {
		return models.Meeting{}, fmt.Errorf("%w: title and projectId are required", ErrValidation)
	}

	var projectCount int64
	if err := db.DB.Model(&models.Project{}).Where("id = ?", *input.ProjectID).Count(&projectCount).Error; err != nil {
		return models.Meeting{}, err
	}
	if projectCount == 0 {
		return models.Meeting{}, ErrProjectNotFound
	}

	slug, err := uniqueSlug(db, *input.Title)
	if err != nil {
		return models.Meeting{}, err
	}

	meeting := models.Meeting{
		Title:     *input.Title,
		Slug:      slug,
		ProjectID: *input.ProjectID,
		Creator:   creator,
	}

	if err := db.DB.Create(&meeting).Error; err != nil {
		return models.Meeting{}, err
	}

	broker.Publish(broker.MeetingSubject, broker.MeetingCreated, "meeting", map[string]interface{}{
		"meeting_id": meeting.ID,
		"project_id": meeting.ProjectID,
		"creator":    meeting.Creator,
		"slug":       meeting.Slug,
	})

	return meeting, nil
}

func (s *MeetingService) GetMeetingById(db *database.Database, id uint) (models.Meeting, error) {
	var meeting models.Meeting
	if err := db.DB.First(&meeting, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Meeting{}, ErrMeetingNotFound
		}
		return models.Meeting{}, err
	}
	return meeting, nil
}

func (s *MeetingService) GetMeetingBySlug(db *database.Database, slug string) (models.Meeting, error) {
	var meeting models.Meeting
	if err := db.DB.Where("slug = ?", slug).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Meeting{}, ErrMeetingNotFound
		}
		return models.Meeting{}, err
	}
	return meeting, nil
}

func (s *MeetingService) UpdateMeeting(db *database.Database, id uint, input MeetingInput) (models.Meeting, error) {
	var meeting models.Meeting
	if err := db.DB.First(&meeting, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Meeting{}, ErrMeetingNotFound
		}
		return models.Meeting{}, err
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		if *input.Title == "" {
			return models.Meeting{}, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		updates["title"] = *input.Title
	}
	if input.ProjectID != nil {
		var projectCount int64
		if err := db.DB.Model(&models.Project{}).Where("id = ?", *input.ProjectID).Count(&projectCount).Error; err != nil {
			return models.Meeting{}, err
		}
		if projectCount == 0 {
			return models.Meeting{}, ErrProjectNotFound
		}
		updates["project_id"] = *input.ProjectID
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&meeting).Updates(updates).Error; err != nil {
			return models.Meeting{}, err
		}
	}

	broker.Publish(broker.MeetingSubject, broker.MeetingUpdated, "meeting", map[string]interface{}{
		"meeting_id": meeting.ID,
		"project_id": meeting.ProjectID,
		"creator":    meeting.Creator,
	})

	return meeting, nil
}

func (s *MeetingService) DeleteMeeting(db *database.Database, id uint) error {
	var meeting models.Meeting
	if err := db.DB.First(&meeting, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMeetingNotFound
		}
		return err
	}

	if err := db.DB.Delete(&meeting).Error; err != nil {
		return err
	}

	broker.Publish(broker.MeetingSubject, broker.MeetingDeleted, "meeting", map[string]interface{}{
		"meeting_id": meeting.ID,
		"creator":    meeting.Creator,
	})

	return nil
}

// ListMeetings returns meetings newest first. A project filter overrides
// creator scoping so a project's full meeting list is always visible.
func (s *MeetingService) ListMeetings(db *database.Database, projectID, creator *uint) ([]models.Meeting, error) {
	query := db.DB.Order("id DESC")
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	} else if creator != nil {
		query = query.Where("creator = ?", *creator)
	}

	var meetings []models.Meeting
	if err := query.Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

// GetMeetingAnalytics returns, per meeting, the active task total and how
// many are completed.
func (s *MeetingService) GetMeetingAnalytics(db *database.Database, creator *uint) ([]models.MeetingAnalytics, error) {
	meetings, err := s.ListMeetings(db, nil, creator)
	if err != nil {
		return nil, err
	}
	if len(meetings) == 0 {
		return []models.MeetingAnalytics{}, nil
	}

	meetingIDs := make([]uint, 0, len(meetings))
	for _, m := range meetings {
		meetingIDs = append(meetingIDs, m.ID)
	}

	type meetingCount struct {
		ProjectMeetingID uint
		Total            int64
		Completed        int64
	}
	var counts []meetingCount
	err = db.DB.Model(&models.Task{}).
		Select("project_meeting_id, COUNT(*) AS total, SUM(CASE WHEN task_status = ? THEN 1 ELSE 0 END) AS completed", models.StatusCompleted).
		Where("status = ? AND project_meeting_id IN ?", models.TaskActive, meetingIDs).
		Group("project_meeting_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	countByMeeting := make(map[uint]meetingCount, len(counts))
	for _, c := range counts {
		countByMeeting[c.ProjectMeetingID] = c
	}

	analytics := make([]models.MeetingAnalytics, 0, len(meetings))
	for _, m := range meetings {
		c := countByMeeting[m.ID]
		analytics = append(analytics, models.MeetingAnalytics{
			ID:             m.ID,
			Title:          m.Title,
			TotalTasks:     c.Total,
			CompletedTasks: c.Completed,
		})
	}
	return analytics, nil
}

var MeetingServiceInstance MeetingServiceInterface = &MeetingService{}
