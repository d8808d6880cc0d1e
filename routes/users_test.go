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

func newUserRouter(mockService *MockUserService) http.Handler {
	router, api := testRouter()
	RegisterUserRoutes(api, &database.Database{}, mockService, testAuthService())
	return router
}

func TestCreateUserRoute(t *testing.T) {
	t.Run("Signup Is Open", func(t *testing.T) {
		mockService := new(MockUserService)
		mockService.On("CreateUser", mock.Anything, mock.Anything).
			Return(models.User{ID: 1, Name: "Test User", Email: "user@example.com"}, nil)

		router := newUserRouter(mockService)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/user/create", bytes.NewBufferString(`{"name":"Test User","email":"user@example.com","password":"s3cret"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "s3cret")
	})

	t.Run("Duplicate Email Is 409", func(t *testing.T) {
		mockService := new(MockUserService)
		mockService.On("CreateUser", mock.Anything, mock.Anything).
			Return(models.User{}, services.ErrEmailExists)

		router := newUserRouter(mockService)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/user/create", bytes.NewBufferString(`{"name":"Test User","email":"taken@example.com","password":"s3cret"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Missing Fields Are 400", func(t *testing.T) {
		mockService := new(MockUserService)
		mockService.On("CreateUser", mock.Anything, mock.Anything).
			Return(models.User{}, services.ErrValidation)

		router := newUserRouter(mockService)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/user/create", bytes.NewBufferString(`{"name":"Test User"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateUserRoute(t *testing.T) {
	t.Run("Self Update", func(t *testing.T) {
		mockService := new(MockUserService)
		mockService.On("UpdateUser", mock.Anything, uint(7), mock.Anything).
			Return(models.User{ID: 7, Name: "Renamed"}, nil)

		router := newUserRouter(mockService)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/user/7/update", bytes.NewBufferString(`{"name":"Renamed"}`))
		req.Header.Set("Authorization", bearerToken(t, 7))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Other User Forbidden", func(t *testing.T) {
		mockService := new(MockUserService)
		router := newUserRouter(mockService)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/user/7/update", bytes.NewBufferString(`{"name":"Renamed"}`))
		req.Header.Set("Authorization", bearerToken(t, 8))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockService.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListUsersRoute(t *testing.T) {
	mockService := new(MockUserService)
	mockService.On("GetUsers", mock.Anything).
		Return([]models.User{{ID: 1}, {ID: 2}}, nil)

	router := newUserRouter(mockService)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/user", nil)
	req.Header.Set("Authorization", bearerToken(t, 7))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
