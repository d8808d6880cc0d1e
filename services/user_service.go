package services

import (
	"errors"
	"fmt"

	"github.com/ibrahimbiplob75/taskhub/broker"
	"github.com/ibrahimbiplob75/taskhub/database"
	"github.com/ibrahimbiplob75/taskhub/models"

	"gorm.io/gorm"
)

// UserInput carries the mutable user fields. Pointers distinguish
// "not provided" from an explicit value on update.
type UserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type UserServiceInterface interface {
	CreateUser(db *database.Database, input UserInput) (models.User, error)
	GetUserById(db *database.Database, id uint) (models.User, error)
	UpdateUser(db *database.Database, id uint, input UserInput) (models.User, error)
	GetUsers(db *database.Database) ([]models.User, error)
}

type UserService struct {
	authService AuthServiceInterface
}

func NewUserService(authService AuthServiceInterface) *UserService {
	return &UserService{authService: authService}
}

func (s *UserService) CreateUser(db *database.Database, input UserInput) (models.User, error) {
	if input.Name == nil || *input.Name == "" ||
		input.Email == nil || *input.Email == "" ||
		input.Password == nil || *input.Password == "" {
		return models.User{}, fmt.Errorf("%w: name, email, and password are required", ErrValidation)
	}

	var count int64
	if err := db.DB.Model(&models.User{}).Where("email = ?", *input.Email).Count(&count).Error; err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, ErrEmailExists
	}

	hash, err := s.authService.HashPassword(*input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:         *input.Name,
		Email:        *input.Email,
		PasswordHash: hash,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}

	broker.Publish(broker.UserSubject, broker.UserCreated, "user", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	return user, nil
}

func (s *UserService) GetUserById(db *database.Database, id uint) (models.User, error) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(db *database.Database, id uint, input UserInput) (models.User, error) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Email != nil && *input.Email != user.Email {
		var count int64
		if err := db.DB.Model(&models.User{}).Where("email = ?", *input.Email).Count(&count).Error; err != nil {
			return models.User{}, err
		}
		if count > 0 {
			return models.User{}, ErrEmailExists
		}
		updates["email"] = *input.Email
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := s.authService.HashPassword(*input.Password)
		if err != nil {
			return models.User{}, err
		}
		updates["password_hash"] = hash
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
			return models.User{}, err
		}
	}

	broker.Publish(broker.UserSubject, broker.UserUpdated, "user", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	return user, nil
}

func (s *UserService) GetUsers(db *database.Database) ([]models.User, error) {
	var users []models.User
	if err := db.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

var UserServiceInstance UserServiceInterface
