package services

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/yukikurage/document-management-api/internal/constants"
	"github.com/yukikurage/document-management-api/internal/models"
	"github.com/yukikurage/document-management-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserService manages application accounts.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents the information needed to create an account.
type CreateUserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in CreateUserInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username,
			validation.Required,
			validation.RuneLength(constants.MinUsernameLength, constants.MaxUsernameLength),
		),
		validation.Field(&in.Password,
			validation.Required,
			validation.RuneLength(constants.MinPasswordLength, constants.MaxPasswordLength),
		),
	)
}

// List returns up to MaxUserListSize accounts matching q.
func (s *UserService) List(q string) ([]models.User, error) {
	users, err := s.userRepo.List(q, constants.MaxUserListSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Create creates a USER account.
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	return s.create(input, constants.RoleUser)
}

// CreateAdmin creates an ADMIN account.
func (s *UserService) CreateAdmin(input CreateUserInput) (*models.User, error) {
	return s.create(input, constants.RoleAdmin)
}

func (s *UserService) create(input CreateUserInput, role string) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := input.Validate(); err != nil {
		return nil, validationError(err)
	}

	if _, err := s.userRepo.FindByUsername(input.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !isNotFound(err) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
		Role:         role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		if isDuplicate(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// SetActive changes the active flag of targetID. An actor may not change
// their own account.
func (s *UserService) SetActive(actorID, targetID uint64, active bool) (*models.User, error) {
	if actorID == targetID {
		return nil, ErrSelfDeactivation
	}

	if err := s.userRepo.SetActive(targetID, active); err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	user, err := s.userRepo.FindByID(targetID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
