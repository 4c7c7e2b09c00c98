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
	"mlhub-go/internal/utils"

	"gorm.io/gorm"
)

// MLModelService implements the model upload, edit, delete and
// download flows.
type MLModelService struct {
	modelRepo *repository.MLModelRepository
	blobs     *storage.BlobStore
}

// NewMLModelService creates a model service.
func NewMLModelService(modelRepo *repository.MLModelRepository, blobs *storage.BlobStore) *MLModelService {
	return &MLModelService{
		modelRepo: modelRepo,
		blobs:     blobs,
	}
}

// Create inserts a model row and publishes its blob. The blob is staged
// before the transaction and renamed into place inside it, so a failed
// write leaves neither a row nor a published blob behind.
func (s *MLModelService) Create(userID uint, form *dto.ModelForm, upload *multipart.FileHeader) (*models.MLModel, error) {
	filename, staged, err := stageUpload(s.blobs, upload)
	if err != nil {
		return nil, err
	}
	defer staged.Discard()

	m := &models.MLModel{
		Name:        form.Name,
		Framework:   form.Framework,
		Description: form.Description,
		Instruction: form.Instruction,
		Filename:    filename,
		UserID:      userID,
	}

	err = s.modelRepo.Transaction(func(tx *repository.MLModelRepository) error {
		if err := tx.Create(m); err != nil {
			return fmt.Errorf("creating model row: %w", err)
		}
		m.StoredName = storedName(m.ID, filename)
		if err := tx.Update(m); err != nil {
			return fmt.Errorf("saving stored name: %w", err)
		}
		return staged.Commit(m.StoredName)
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Update overwrites a model's text fields and re-uploads its blob.
// Only the owner may edit; a changed extension removes the old blob so
// no orphan is left under the previous stored name.
func (s *MLModelService) Update(userID, modelID uint, form *dto.ModelForm, upload *multipart.FileHeader) (*models.MLModel, error) {
	m, err := s.Get(modelID)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, ErrForbidden
	}

	filename, staged, err := stageUpload(s.blobs, upload)
	if err != nil {
		return nil, err
	}
	defer staged.Discard()

	oldStored := m.StoredName

	m.Name = form.Name
	m.Framework = form.Framework
	m.Description = form.Description
	m.Instruction = form.Instruction
	m.Filename = filename
	m.StoredName = storedName(m.ID, filename)

	err = s.modelRepo.Transaction(func(tx *repository.MLModelRepository) error {
		if err := tx.Update(m); err != nil {
			return fmt.Errorf("updating model row: %w", err)
		}
		return staged.Commit(m.StoredName)
	})
	if err != nil {
		return nil, err
	}

	if oldStored != "" && oldStored != m.StoredName {
		// Best effort; a leftover blob is harmless once no row names it.
		_ = s.blobs.Remove(oldStored)
	}

	return m, nil
}

// Delete removes a model row and its blob. Only the owner may delete.
func (s *MLModelService) Delete(userID, modelID uint) error {
	m, err := s.Get(modelID)
	if err != nil {
		return err
	}
	if m.UserID != userID {
		return ErrForbidden
	}

	if err := s.modelRepo.Delete(m.ID); err != nil {
		return fmt.Errorf("deleting model row: %w", err)
	}

	return s.blobs.Remove(m.StoredName)
}

// Get fetches one model with its owner.
func (s *MLModelService) Get(modelID uint) (*models.MLModel, error) {
	m, err := s.modelRepo.GetByID(modelID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up model: %w", err)
	}
	return m, nil
}

// List returns all models, most recent first.
func (s *MLModelService) List() ([]models.MLModel, error) {
	return s.modelRepo.List()
}

// OpenBlob returns the model row plus a reader over its stored blob.
// The caller closes the file.
func (s *MLModelService) OpenBlob(modelID uint) (*models.MLModel, *os.File, int64, error) {
	m, err := s.Get(modelID)
	if err != nil {
		return nil, nil, 0, err
	}

	f, size, err := s.blobs.Open(m.StoredName)
	if errors.Is(err, storage.ErrBlobNotFound) {
		return nil, nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, nil, 0, err
	}

	return m, f, size, nil
}

// stageUpload sanitizes the upload's filename and stages its bytes into
// the blob store. Returns ErrMissingFile when no safe filename remains.
func stageUpload(blobs *storage.BlobStore, upload *multipart.FileHeader) (string, *storage.StagedBlob, error) {
	if upload == nil {
		return "", nil, ErrMissingFile
	}

	filename := utils.SanitizeFilename(upload.Filename)
	if filename == "" {
		return "", nil, ErrMissingFile
	}

	src, err := upload.Open()
	if err != nil {
		return "", nil, fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	staged, err := blobs.Stage(src)
	if err != nil {
		return "", nil, err
	}

	return filename, staged, nil
}

// storedName composes the blob filename from the generated row id and
// the upload's extension.
func storedName(id uint, filename string) string {
	ext := utils.FileExtension(filename)
	if ext == "" {
		return fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("%d.%s", id, ext)
}
