package repository

import (
	"mlhub-go/internal/models"

	"gorm.io/gorm"
)

// DatasetRepository is the data access layer for datasets.
type DatasetRepository struct {
	db *gorm.DB
}

// NewDatasetRepository creates a dataset repository.
func NewDatasetRepository(db *gorm.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

// Transaction runs fn against a transactional copy of the repository.
func (r *DatasetRepository) Transaction(fn func(tx *DatasetRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&DatasetRepository{db: tx})
	})
}

// Create inserts a dataset row.
func (r *DatasetRepository) Create(d *models.Dataset) error {
	return r.db.Create(d).Error
}

// GetByID fetches a dataset with its owner preloaded.
func (r *DatasetRepository) GetByID(id uint) (*models.Dataset, error) {
	var d models.Dataset
	err := r.db.Preload("User").First(&d, id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns all datasets, most recent first.
func (r *DatasetRepository) List() ([]models.Dataset, error) {
	var list []models.Dataset
	err := r.db.Preload("User").Order("created_at DESC").Find(&list).Error
	return list, err
}

// ListByUserID returns a user's datasets, most recent first.
func (r *DatasetRepository) ListByUserID(userID uint) ([]models.Dataset, error) {
	var list []models.Dataset
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

// Update saves all dataset fields.
func (r *DatasetRepository) Update(d *models.Dataset) error {
	return r.db.Save(d).Error
}

// Delete removes a dataset row.
func (r *DatasetRepository) Delete(id uint) error {
	return r.db.Delete(&models.Dataset{}, id).Error
}
