package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ibrahimbiplob75/taskhub/database"
	"github.com/ibrahimbiplob75/taskhub/models"
	"github.com/ibrahimbiplob75/taskhub/services"
)

func newMeetingRouter(mockService *MockMeetingService) http.Handler {
	router, api := testRouter()
	RegisterMeetingRoutes(api, &database.Database{}, mockService, testAuthService())
	return router
}

func TestGetMeetingBySlug(t *testing.T) {
	t.Run("Public Lookup", func(t *testing.T) {
		mockService := new(MockMeetingService)
		mockService.On("GetMeetingBySlug", mock.Anything, "sprint-planning").
			Return(models.Meeting{ID: 4, Title: "Sprint Planning", Slug: "sprint-planning"}, nil)

		router := newMeetingRouter(mockService)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/meeting/slug/sprint-planning", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unknown Slug Is 404", func(t *testing.T) {
		mockService := new(MockMeetingService)
		mockService.On("GetMeetingBySlug", mock.Anything, "missing").
			Return(models.Meeting{}, services.ErrMeetingNotFound)

		router := newMeetingRouter(mockService)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/meeting/slug/missing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCreateMeetingRoute(t *testing.T) {
	t.Run("Requires Authentication", func(t *testing.T) {
		mockService := new(MockMeetingService)
		router := newMeetingRouter(mockService)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/meeting/create", bytes.NewBufferString(`{"title":"Kickoff","projectId":1}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Created", func(t *testing.T) {
		mockService := new(MockMeetingService)
		mockService.On("CreateMeeting", mock.Anything, mock.Anything, uint(7)).
			Return(models.Meeting{ID: 4, Title: "Kickoff", Slug: "kickoff", Creator: 7}, nil)

		router := newMeetingRouter(mockService)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/meeting/create", bytes.NewBufferString(`{"title":"Kickoff","projectId":1}`))
		req.Header.Set("Authorization", bearerToken(t, 7))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestUpdateMeeting_Ownership(t *testing.T) {
	owned := models.Meeting{ID: 4, Title: "Kickoff", Creator: 7}

	t.Run("Creator Can Update", func(t *testing.T) {
		mockService := new(MockMeetingService)
		mockService.On("GetMeetingById", mock.Anything, uint(4)).Return(owned, nil)
		mockService.On("UpdateMeeting", mock.Anything, uint(4), mock.Anything).Return(owned, nil)

		router := newMeetingRouter(mockService)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/meeting/4/update", bytes.NewBufferString(`{"title":"Renamed"}`))
		req.Header.Set("Authorization", bearerToken(t, 7))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Non-Creator Forbidden", func(t *testing.T) {
		mockService := new(MockMeetingService)
		mockService.On("GetMeetingById", mock.Anything, uint(4)).Return(owned, nil)

		router := newMeetingRouter(mockService)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/meeting/4/update", bytes.NewBufferString(`{"title":"Renamed"}`))
		req.Header.Set("Authorization", bearerToken(t, 8))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockService.AssertNotCalled(t, "UpdateMeeting", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing Meeting Is 404", func(t *testing.T) {
		mockService := new(MockMeetingService)
		mockService.On("GetMeetingById", mock.Anything, uint(404)).
			Return(models.Meeting{}, services.ErrMeetingNotFound)

		router := newMeetingRouter(mockService)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/meeting/404/update", bytes.NewBufferString(`{"title":"Renamed"}`))
		req.Header.Set("Authorization", bearerToken(t, 7))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListMeetings(t *testing.T) {
	t.Run("Project Filter Forwarded", func(t *testing.T) {
		mockService := new(MockMeetingService)
		mockService.On("ListMeetings", mock.Anything, mock.MatchedBy(func(projectID *uint) bool {
			return projectID != nil && *projectID == 3
		}), mock.Anything).Return([]models.Meeting{}, nil)

		router := newMeetingRouter(mockService)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/meeting?project_id=3", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Bad Project Id Rejected", func(t *testing.T) {
		mockService := new(MockMeetingService)
		router := newMeetingRouter(mockService)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/meeting?project_id=abc", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
