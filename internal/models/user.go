package models

import (
	"time"
)

// User is a registered account. Name is the login key and is shown in
// listings; ownership of models and datasets is keyed by the immutable
// ID, so renaming a user never breaks linkage.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Models   []MLModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"models,omitempty"`
	Datasets []Dataset `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"datasets,omitempty"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
