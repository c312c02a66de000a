package services

import (
	"errors"

	"github.com/comandago/gin-orders-api/internal/auth"
	"github.com/comandago/gin-orders-api/internal/models"
	"gorm.io/gorm"
)

var ErrUserAlreadyExists = errors.New("user_already_exists")

type UserService interface {
	// Register creates a new user with a bcrypt-hashed password
	Register(user *models.User, password string) error
	// Authenticate checks credentials and returns the matching user
	Authenticate(username, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) Register(user *models.User, password string) error {
	var existing models.User
	if err := s.db.Where("username = ?", user.Username).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if user.Role == "" {
		user.Role = "admin"
	}
	user.IsStaff = true

	return s.db.Create(user).Error
}

func (s *userService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *userService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
