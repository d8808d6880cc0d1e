package services

import (
	"errors"
	"fmt"

	"github.com/ibrahimbiplob75/taskhub/broker"
	"github.com/ibrahimbiplob75/taskhub/database"
	"github.com/ibrahimbiplob75/taskhub/models"

	"gorm.io/gorm"
)

// ProjectInput carries the mutable project fields. Pointers distinguish
// "not provided" from an explicit value on update.
type ProjectInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type ProjectServiceInterface interface {
	CreateProject(db *database.Database, input ProjectInput, creator uint) (models.Project, error)
	GetProjectById(db *database.Database, id uint) (models.Project, error)
	UpdateProject(db *database.Database, id uint, input ProjectInput) (models.Project, error)
	DeleteProject(db *database.Database, id uint) error
	ListProjects(db *database.Database, creator *uint) ([]models.Project, error)
	GetProjectAnalytics(db *database.Database, creator *uint) ([]models.ProjectAnalytics, error)
}

type ProjectService struct{}

func (s *ProjectService) CreateProject(db *database.Database, input ProjectInput, creator uint) (models.Project, error) {
	if input.Title == nil || *input.Title == "" {
		return models.Project{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	var userCount int64
	if err := db.DB.Model(&models.User{}).Where("id = ?", creator).Count(&userCount).Error; err != nil {
		return models.Project{}, err
	}
	if userCount == 0 {
		return models.Project{}, ErrUserNotFound
	}

	project := models.Project{
		Title:       *input.Title,
		Description: input.Description,
		Creator:     creator,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		return models.Project{}, err
	}

	broker.Publish(broker.ProjectSubject, broker.ProjectCreated, "project", map[string]interface{}{
		"project_id": project.ID,
		"creator":    project.Creator,
		"title":      project.Title,
	})

	return project, nil
}

func (s *ProjectService) GetProjectById(db *database.Database, id uint) (models.Project, error) {
	var project models.Project
	if err := db.DB.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, ErrProjectNotFound
		}
		return models.Project{}, err
	}
	return project, nil
}

func (s *ProjectService) UpdateProject(db *database.Database, id uint, input ProjectInput) (models.Project, error) {
	var project models.Project
	if err := db.DB.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, ErrProjectNotFound
		}
		return models.Project{}, err
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		if *input.Title == "" {
			return models.Project{}, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&project).Updates(updates).Error; err != nil {
			return models.Project{}, err
		}
	}

	broker.Publish(broker.ProjectSubject, broker.ProjectUpdated, "project", map[string]interface{}{
		"project_id": project.ID,
		"creator":    project.Creator,
		"title":      project.Title,
	})

	return project, nil
}

// DeleteProject removes the project row. Projects hard-delete; tasks use
// a soft-delete flag instead.
func (s *ProjectService) DeleteProject(db *database.Database, id uint) error {
	var project models.Project
	if err := db.DB.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	if err := db.DB.Delete(&project).Error; err != nil {
		return err
	}

	broker.Publish(broker.ProjectSubject, broker.ProjectDeleted, "project", map[string]interface{}{
		"project_id": project.ID,
		"creator":    project.Creator,
	})

	return nil
}

// ListProjects returns projects newest first, scoped to a creator when
// one is given and unscoped otherwise.
func (s *ProjectService) ListProjects(db *database.Database, creator *uint) ([]models.Project, error) {
	query := db.DB.Order("created_at DESC")
	if creator != nil {
		query = query.Where("creator = ?", *creator)
	}

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProjectAnalytics returns, per project, the active task total and how
// many of those are not completed. Counts come from one grouped query.
func (s *ProjectService) GetProjectAnalytics(db *database.Database, creator *uint) ([]models.ProjectAnalytics, error) {
	projects, err := s.ListProjects(db, creator)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return []models.ProjectAnalytics{}, nil
	}

	projectIDs := make([]uint, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
	}

	type projectCount struct {
		ProjectID  uint
		Total      int64
		Incomplete int64
	}
	var counts []projectCount
	err = db.DB.Model(&models.Task{}).
		Select("project_id, COUNT(*) AS total, SUM(CASE WHEN task_status <> ? THEN 1 ELSE 0 END) AS incomplete", models.StatusCompleted).
		Where("status = ? AND project_id IN ?", models.TaskActive, projectIDs).
		Group("project_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	countByProject := make(map[uint]projectCount, len(counts))
	for _, c := range counts {
		countByProject[c.ProjectID] = c
	}

	analytics := make([]models.ProjectAnalytics, 0, len(projects))
	for _, p := range projects {
		c := countByProject[p.ID]
		analytics = append(analytics, models.ProjectAnalytics{
			ID:              p.ID,
			Title:           p.Title,
			TotalTasks:      c.Total,
			IncompleteTasks: c.Incomplete,
		})
	}
	return analytics, nil
}

var ProjectServiceInstance ProjectServiceInterface = &ProjectService{}
