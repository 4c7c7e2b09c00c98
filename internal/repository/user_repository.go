package repository

import (
	"mlhub-go/internal/models"

	"gorm.io/gorm"
)

// UserRepository is the data access layer for users.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user. The unique index on name rejects duplicates at
// the store level, which also closes the concurrent-registration race.
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID fetches a user by id.
func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByName fetches a user by exact display name.
func (r *UserRepository) GetByName(name string) (*models.User, error) {
	var user models.User
	err := r.db.Where("name = ?", name).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByName reports whether any user holds the given name.
func (r *UserRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// ExistsByNameExcluding reports whether a user other than excludeID
// holds the given name. Used by profile renames.
func (r *UserRepository) ExistsByNameExcluding(name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

// Update saves all user fields.
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// DeleteWithOwned removes the user together with all owned model and
// dataset rows in one transaction.
func (r *UserRepository) DeleteWithOwned(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.MLModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Dataset{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}
