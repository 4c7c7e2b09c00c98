package models

import (
	"time"
)

// MLModel is an uploaded machine-learning model. StoredName is the blob
// filename under the models directory ("<id>.<ext>"); Filename keeps the
// sanitized original name for downloads.
type MLModel struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Framework   string    `gorm:"size:100;not null" json:"framework"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Instruction string    `gorm:"type:text;not null" json:"instruction"`
	Filename    string    `gorm:"size:255;not null" json:"filename"`
	StoredName  string    `gorm:"size:255" json:"-"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName sets the table name.
func (MLModel) TableName() string {
	return "ml_models"
}
