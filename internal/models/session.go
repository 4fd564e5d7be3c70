package models

import (
	"time"
)

// FocusSession records one focus period that ran to completion
type FocusSession struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Task          string    `json:"task"`
	PresetSeconds int       `gorm:"not null" json:"preset_seconds"`
	Policy        string    `json:"policy"`
	StartedAt     time.Time `gorm:"not null" json:"started_at"`
	CompletedAt   time.Time `gorm:"not null;index" json:"completed_at"`
}

// Duration is the focused time credited to the session
func (s FocusSession) Duration() time.Duration {
	return time.Duration(s.PresetSeconds) * time.Second
}
