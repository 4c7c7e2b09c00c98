package service

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"

	"mlhub-go/internal/dto"
	"mlhub-go/internal/models"
	"mlhub-go/internal/repository"
	"mlhub-go/internal/storage"

	"gorm.io/gorm"
)

// DatasetService implements the dataset upload, delete and download
// flows.
type DatasetService struct {
	datasetRepo *repository.DatasetRepository
	blobs       *storage.BlobStore
}

// NewDatasetService creates a dataset service.
func NewDatasetService(datasetRepo *repository.DatasetRepository, blobs *storage.BlobStore) *DatasetService {
	return &DatasetService{
		datasetRepo: datasetRepo,
		blobs:       blobs,
	}
}

// Create inserts a dataset row and publishes its blob, with the same
// stage/commit coupling as model uploads.
func (s *DatasetService) Create(userID uint, form *dto.DatasetForm, upload *multipart.FileHeader) (*models.Dataset, error) {
	filename, staged, err := stageUpload(s.blobs, upload)
	if err != nil {
		return nil, err
	}
	defer staged.Discard()

	d := &models.Dataset{
		Name:        form.Name,
		Description: form.Description,
		Filename:    filename,
		UserID:      userID,
	}

	err = s.datasetRepo.Transaction(func(tx *repository.DatasetRepository) error {
		if err := tx.Create(d); err != nil {
			return fmt.Errorf("creating dataset row: %w", err)
		}
		d.StoredName = storedName(d.ID, filename)
		if err := tx.Update(d); err != nil {
			return fmt.Errorf("saving stored name: %w", err)
		}
		return staged.Commit(d.StoredName)
	})
	if err != nil {
		return nil, err
	}

	return d, nil
}

// Delete removes a dataset row and its blob. Only the owner may delete.
func (s *DatasetService) Delete(userID, datasetID uint) error {
	d, err := s.Get(datasetID)
	if err != nil {
		return err
	}
	if d.UserID != userID {
		return ErrForbidden
	}

	if err := s.datasetRepo.Delete(d.ID); err != nil {
		return fmt.Errorf("deleting dataset row: %w", err)
	}

	return s.blobs.Remove(d.StoredName)
}

// Get fetches one dataset with its owner.
func (s *DatasetService) Get(datasetID uint) (*models.Dataset, error) {
	d, err := s.datasetRepo.GetByID(datasetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up dataset: %w", err)
	}
	return d, nil
}

// List returns all datasets, most recent first.
func (s *DatasetService) List() ([]models.Dataset, error) {
	return s.datasetRepo.List()
}

// OpenBlob returns the dataset row plus a reader over its stored blob.
// The caller closes the file.
func (s *DatasetService) OpenBlob(datasetID uint) (*models.Dataset, *os.File, int64, error) {
	d, err := s.Get(datasetID)
	if err != nil {
		return nil, nil, 0, err
	}

	f, size, err := s.blobs.Open(d.StoredName)
	if errors.Is(err, storage.ErrBlobNotFound) {
		return nil, nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, nil, 0, err
	}

	return d, f, size, nil
}
