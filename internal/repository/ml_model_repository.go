package repository

import (
	"mlhub-go/internal/models"

	"gorm.io/gorm"
)

// MLModelRepository is the data access layer for models.
type MLModelRepository struct {
	db *gorm.DB
}

// NewMLModelRepository creates a model repository.
func NewMLModelRepository(db *gorm.DB) *MLModelRepository {
	return &MLModelRepository{db: db}
}

// Transaction runs fn against a transactional copy of the repository.
func (r *MLModelRepository) Transaction(fn func(tx *MLModelRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&MLModelRepository{db: tx})
	})
}

// Create inserts a model row.
func (r *MLModelRepository) Create(m *models.MLModel) error {
	return r.db.Create(m).Error
}

// GetByID fetches a model with its owner preloaded.
func (r *MLModelRepository) GetByID(id uint) (*models.MLModel, error) {
	var m models.MLModel
	err := r.db.Preload("User").First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns all models, most recent first.
func (r *MLModelRepository) List() ([]models.MLModel, error) {
	var list []models.MLModel
	err := r.db.Preload("User").Order("created_at DESC").Find(&list).Error
	return list, err
}

// ListByUserID returns a user's models, most recent first.
func (r *MLModelRepository) ListByUserID(userID uint) ([]models.MLModel, error) {
	var list []models.MLModel
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

// Update saves all model fields.
func (r *MLModelRepository) Update(m *models.MLModel) error {
	return r.db.Save(m).Error
}

// Delete removes a model row.
func (r *MLModelRepository) Delete(id uint) error {
	return r.db.Delete(&models.MLModel{}, id).Error
}
