package service

import (
	"errors"
	"fmt"

	"mlhub-go/internal/dto"
	"mlhub-go/internal/models"
	"mlhub-go/internal/repository"
	"mlhub-go/internal/utils"

	"gorm.io/gorm"
)

// AuthService implements registration and credential checks.
type AuthService struct {
	userRepo *repository.UserRepository
}

// NewAuthService creates an auth service.
func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates a new account with an empty description.
func (s *AuthService) Register(form *dto.RegisterForm) (*models.User, error) {
	if form.Password != form.RepeatPassword {
		return nil, ErrPasswordMismatch
	}

	exists, err := s.userRepo.ExistsByName(form.Name)
	if err != nil {
		return nil, fmt.Errorf("checking username: %w", err)
	}
	if exists {
		return nil, ErrNameTaken
	}

	hashedPassword, err := utils.HashPassword(form.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Name:         form.Name,
		Description:  "",
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.Create(user); err != nil {
		// Two racing registrations can both pass the exists check; the
		// unique index decides, and the loser surfaces as a conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// Authenticate checks a login form against the stored account. The
// stored hash is never mutated here.
func (s *AuthService) Authenticate(form *dto.LoginForm) (*models.User, error) {
	user, err := s.userRepo.GetByName(form.Name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSuchAccount
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := utils.CheckPassword(form.Password, user.PasswordHash); err != nil {
		return nil, ErrWrongCredentials
	}

	return user, nil
}
