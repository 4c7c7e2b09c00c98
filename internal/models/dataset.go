package models

import (
	"time"
)

// Dataset is an uploaded dataset archive.
type Dataset struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Filename    string    `gorm:"size:255;not null" json:"filename"`
	StoredName  string    `gorm:"size:255" json:"-"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName sets the table name.
func (Dataset) TableName() string {
	return "datasets"
}
