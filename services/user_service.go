package services

import (
	"errors"

	"gorm.io/gorm"

	"taskhive/taskhive/database"
	"taskhive/taskhive/models"
)

type UserServiceInterface interface {
	GetUserById(db *database.Database, id string) (models.User, error)
	GetUsers(db *database.Database, params map[string]interface{}) ([]models.User, error)
}

type UserService struct{}

func (s *UserService) GetUserById(db *database.Database, id string) (models.User, error) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) GetUsers(db *database.Database, params map[string]interface{}) ([]models.User, error) {
	var users []models.User
	query := db.DB

	if email, ok := params["email"].(string); ok && email != "" {
		query = query.Where("email = ?", email)
	}

	result := query.Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

var UserServiceInstance UserServiceInterface = &UserService{}
