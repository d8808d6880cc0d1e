package routes

import (
	"github.com/stretchr/testify/mock"

	"github.com/ibrahimbiplob75/taskhub/database"
	"github.com/ibrahimbiplob75/taskhub/models"
	"github.com/ibrahimbiplob75/taskhub/services"
)

// MockTaskService mocks TaskServiceInterface for handler tests.
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) CreateTask(db *database.Database, input services.TaskInput) (models.Task, error) {
	args := m.Called(db, input)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) GetTaskById(db *database.Database, id uint) (models.AnnotatedTask, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.AnnotatedTask), args.Error(1)
}

func (m *MockTaskService) UpdateTask(db *database.Database, id uint, input services.TaskInput) (models.Task, error) {
	args := m.Called(db, id, input)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(db *database.Database, id uint) error {
	args := m.Called(db, id)
	return args.Error(0)
}

func (m *MockTaskService) ListTasks(db *database.Database, filter models.TaskListFilter) (models.TaskPage, error) {
	args := m.Called(db, filter)
	return args.Get(0).(models.TaskPage), args.Error(1)
}

func (m *MockTaskService) GetSubtasks(db *database.Database, parentID uint) ([]models.AnnotatedTask, error) {
	args := m.Called(db, parentID)
	return args.Get(0).([]models.AnnotatedTask), args.Error(1)
}

func (m *MockTaskService) GetProjectTasks(db *database.Database, projectID uint, filter services.ProjectTaskFilter) ([]services.ProjectTask, error) {
	args := m.Called(db, projectID, filter)
	return args.Get(0).([]services.ProjectTask), args.Error(1)
}

func (m *MockTaskService) SetTargetDate(db *database.Database, id uint, target models.OptionalTime) (models.Task, error) {
	args := m.Called(db, id, target)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) GetKanbanTasks(db *database.Database, assignee *uint) (map[string][]models.Task, error) {
	args := m.Called(db, assignee)
	return args.Get(0).(map[string][]models.Task), args.Error(1)
}

func (m *MockTaskService) UpdateKanbanTask(db *database.Database, id uint, taskStatus *string, serial *int) (models.Task, error) {
	args := m.Called(db, id, taskStatus, serial)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) GetTaskStats(db *database.Database, assignee *uint) (models.TaskStats, error) {
	args := m.Called(db, assignee)
	return args.Get(0).(models.TaskStats), args.Error(1)
}

func (m *MockTaskService) GetTaskStatusAnalytics(db *database.Database, assignee *uint) ([]models.TaskStatusCount, error) {
	args := m.Called(db, assignee)
	return args.Get(0).([]models.TaskStatusCount), args.Error(1)
}

func (m *MockTaskService) GetCalendarYears(db *database.Database, assignee *uint) ([]int, error) {
	args := m.Called(db, assignee)
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockTaskService) GetCalendarMonthData(db *database.Database, year, month int, assignee *uint) (map[int]int64, error) {
	args := m.Called(db, year, month, assignee)
	return args.Get(0).(map[int]int64), args.Error(1)
}

// MockProjectService mocks the ProjectServiceInterface
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) CreateProject(db *database.Database, input services.ProjectInput, creator uint) (models.Project, error) {
	args := m.Called(db, input, creator)
	return args.Get(0).(models.Project), args.Error(1)
}

func (m *MockProjectService) GetProjectById(db *database.Database, id uint) (models.Project, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.Project), args.Error(1)
}

func (m *MockProjectService) UpdateProject(db *database.Database, id uint, input services.ProjectInput) (models.Project, error) {
	args := m.Called(db, id, input)
	return args.Get(0).(models.Project), args.Error(1)
}

func (m *MockProjectService) DeleteProject(db *database.Database, id uint) error {
	args := m.Called(db, id)
	return args.Error(0)
}

func (m *MockProjectService) ListProjects(db *database.Database, creator *uint) ([]models.Project, error) {
	args := m.Called(db, creator)
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectService) GetProjectAnalytics(db *database.Database, creator *uint) ([]models.ProjectAnalytics, error) {
	args := m.Called(db, creator)
	return args.Get(0).([]models.ProjectAnalytics), args.Error(1)
}

// MockMeetingService mocks the MeetingServiceInterface
type MockMeetingService struct {
	mock.Mock
}

func (m *MockMeetingService) CreateMeeting(db *database.Database, input services.MeetingInput, creator uint) (models.Meeting, error) {
	args := m.Called(db, input, creator)
	return args.Get(0).(models.Meeting), args.Error(1)
}

func (m *MockMeetingService) GetMeetingById(db *database.Database, id uint) (models.Meeting, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.Meeting), args.Error(1)
}

func (m *MockMeetingService) GetMeetingBySlug(db *database.Database, slug string) (models.Meeting, error) {
	args := m.Called(db, slug)
	return args.Get(0).(models.Meeting), args.Error(1)
}

func (m *MockMeetingService) UpdateMeeting(db *database.Database, id uint, input services.MeetingInput) (models.Meeting, error) {
	args := m.Called(db, id, input)
	return args.Get(0).(models.Meeting), args.Error(1)
}

func (m *MockMeetingService) DeleteMeeting(db *database.Database, id uint) error {
	args := m.Called(db, id)
	return args.Error(0)
}

func (m *MockMeetingService) ListMeetings(db *database.Database, projectID, creator *uint) ([]models.Meeting, error) {
	args := m.Called(db, projectID, creator)
	return args.Get(0).([]models.Meeting), args.Error(1)
}

func (m *MockMeetingService) GetMeetingAnalytics(db *database.Database, creator *uint) ([]models.MeetingAnalytics, error) {
	args := m.Called(db, creator)
	return args.Get(0).([]models.MeetingAnalytics), args.Error(1)
}

// MockUserService mocks the UserServiceInterface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(db *database.Database, input services.UserInput) (models.User, error) {
	args := m.Called(db, input)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserService) GetUserById(db *database.Database, id uint) (models.User, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(db *database.Database, id uint, input services.UserInput) (models.User, error) {
	args := m.Called(db, id, input)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserService) GetUsers(db *database.Database) ([]models.User, error) {
	args := m.Called(db)
	return args.Get(0).([]models.User), args.Error(1)
}
