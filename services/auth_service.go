package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskhive/taskhive/broker"
	"taskhive/taskhive/database"
	"taskhive/taskhive/models"
	"taskhive/taskhive/utils/token"
)

// Use the JWTClaims from token package
type JWTClaims = token.JWTClaims

type AuthServiceInterface interface {
	Register(db *database.Database, username, email, password string) (models.User, string, error)
	Login(db *database.Database, email, password string) (models.User, string, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
	HashPassword(password string) (string, error)
	ComparePasswords(hashedPassword, password string) error
}

type AuthService struct {
	jwtSecret     []byte
	jwtExpiration time.Duration
}

func NewAuthService(jwtSecret string, jwtExpirationHours int) *AuthService {
	return &AuthService{
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: time.Duration(jwtExpirationHours) * time.Hour,
	}
}

// Register creates a new user account and returns it with a signed token.
func (s *AuthService) Register(db *database.Database, username, email, password string) (models.User, string, error) {
	hash, err := s.HashPassword(password)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.User{}, "", tx.Error
	}

	var count int64
	if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		tx.Rollback()
		return models.User{}, "", err
	}
	if count > 0 {
		tx.Rollback()
		return models.User{}, "", ErrEmailRegistered
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		// A concurrent registration can slip past the count check; the
		// unique index on email is the backstop.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, "", ErrEmailRegistered
		}
		return models.User{}, "", err
	}

	event, err := models.NewEvent(
		string(broker.UserRegistered),
		"user",
		user.ID.String(),
		map[string]interface{}{
			"user_id":  user.ID.String(),
			"username": user.Username,
			"email":    user.Email,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.User{}, "", err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.User{}, "", err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.User{}, "", err
	}

	broker.PublishMessage(string(broker.UserRegistered), broker.NewStandardMessage(
		broker.UserRegistered, "user", user.ID.String(),
		map[string]interface{}{"user_id": user.ID.String(), "email": user.Email},
	))

	tokenString, err := token.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		return models.User{}, "", err
	}

	return user, tokenString, nil
}

// Login verifies credentials and returns the user with a signed token.
func (s *AuthService) Login(db *database.Database, email, password string) (models.User, string, error) {
	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if err := s.ComparePasswords(user.PasswordHash, password); err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	tokenString, err := token.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		return models.User{}, "", err
	}

	return user, tokenString, nil
}

// ValidateToken uses the token utility to validate tokens
func (s *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	return token.ValidateToken(tokenString, s.jwtSecret)
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

var AuthServiceInstance AuthServiceInterface
