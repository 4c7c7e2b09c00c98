package service

import (
	"errors"
	"fmt"

	"mlhub-go/internal/dto"
	"mlhub-go/internal/models"
	"mlhub-go/internal/repository"
	"mlhub-go/internal/storage"

	"gorm.io/gorm"
)

// UserService implements profile reads, profile edits and account
// deletion.
type UserService struct {
	userRepo     *repository.UserRepository
	modelRepo    *repository.MLModelRepository
	datasetRepo  *repository.DatasetRepository
	modelBlobs   *storage.BlobStore
	datasetBlobs *storage.BlobStore
}

// NewUserService creates a user service.
func NewUserService(
	userRepo *repository.UserRepository,
	modelRepo *repository.MLModelRepository,
	datasetRepo *repository.DatasetRepository,
	modelBlobs *storage.BlobStore,
	datasetBlobs *storage.BlobStore,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		modelRepo:    modelRepo,
		datasetRepo:  datasetRepo,
		modelBlobs:   modelBlobs,
		datasetBlobs: datasetBlobs,
	}
}

// GetProfile returns a user by name together with everything they own.
func (s *UserService) GetProfile(name string) (*models.User, []models.MLModel, []models.Dataset, error) {
	user, err := s.userRepo.GetByName(name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("looking up user: %w", err)
	}

	owned, err := s.modelRepo.ListByUserID(user.ID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("listing owned models: %w", err)
	}

	datasets, err := s.datasetRepo.ListByUserID(user.ID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("listing owned datasets: %w", err)
	}

	return user, owned, datasets, nil
}

// UpdateProfile renames the identity and updates its description. A
// name held by a different user is a conflict. Ownership is keyed by
// user id, so the rename needs no cascade into owned records.
func (s *UserService) UpdateProfile(userID uint, form *dto.ProfileForm) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	taken, err := s.userRepo.ExistsByNameExcluding(form.Name, userID)
	if err != nil {
		return nil, fmt.Errorf("checking username: %w", err)
	}
	if taken {
		return nil, ErrNameTaken
	}

	user.Name = form.Name
	user.Description = form.Description

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return user, nil
}

// DeleteAccount removes the user, all owned rows, and their blobs.
func (s *UserService) DeleteAccount(userID uint) error {
	owned, err := s.modelRepo.ListByUserID(userID)
	if err != nil {
		return fmt.Errorf("listing owned models: %w", err)
	}
	datasets, err := s.datasetRepo.ListByUserID(userID)
	if err != nil {
		return fmt.Errorf("listing owned datasets: %w", err)
	}

	if err := s.userRepo.DeleteWithOwned(userID); err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	// Blob cleanup runs after the commit; a leftover blob is harmless
	// once no row names it.
	for _, m := range owned {
		_ = s.modelBlobs.Remove(m.StoredName)
	}
	for _, d := range datasets {
		_ = s.datasetBlobs.Remove(d.StoredName)
	}

	return nil
}
