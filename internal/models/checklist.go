package models

import (
	"time"

	"gorm.io/gorm"
)

// ChecklistItem is one entry of the pre-session checklist
type ChecklistItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Text      string `gorm:"not null" json:"text"`
	Completed bool   `gorm:"default:false" json:"completed"`
}
