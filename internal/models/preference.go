package models

import "time"

// Preference is a single key/value pair; writes overwrite
type Preference struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
