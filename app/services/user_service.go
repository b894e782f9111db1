package services

import (
	"griddle/app/apperrors"
	"griddle/app/models"
	"griddle/app/repositories"
)

// UserService handles registration and login
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *UserService) Register(user *models.User, password string) error {
	if password == "" {
		return apperrors.New(apperrors.ErrValidation, "Password is required")
	}

	if _, err := s.userRepo.GetByEmail(user.Email); err == nil {
		return apperrors.New(apperrors.ErrConflict, "Email already registered")
	} else if err != repositories.ErrNotFound {
		return apperrors.Wrap(apperrors.ErrDatabase, "Failed to check email", err)
	}

	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return apperrors.Wrap(apperrors.ErrValidation, "Invalid user data", err)
	}
	if err := user.SetPassword(password); err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, "Failed to hash password", err)
	}

	if err := s.userRepo.Create(user); err != nil {
		return apperrors.Wrap(apperrors.ErrDatabase, "Failed to create user", err)
	}
	return nil
}

// Login verifies the credentials and returns the matching user.
func (s *UserService) Login(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err == repositories.ErrNotFound {
		return nil, apperrors.New(apperrors.ErrInvalidCredentials, "Invalid email or password")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "Failed to fetch user", err)
	}

	if !user.CheckPassword(password) {
		return nil, apperrors.New(apperrors.ErrInvalidCredentials, "Invalid email or password")
	}
	return user, nil
}

// GetUser returns a user by id.
func (s *UserService) GetUser(id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err == repositories.ErrNotFound {
		return nil, apperrors.New(apperrors.ErrNotFound, "User not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "Failed to fetch user", err)
	}
	return user, nil
}
