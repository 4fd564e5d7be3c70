package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/neuralfocus/internal/models"
)

// PreferenceStore keeps preferences in the preferences table. The zero
// value uses the package connection.
type PreferenceStore struct{}

// Get returns the stored value for key, if any
func (PreferenceStore) Get(key string) (string, bool, error) {
	var pref models.Preference
	err := DB.Where(&models.Preference{Key: key}).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return pref.Value, true, nil
}

// Set upserts key; the last write wins
func (PreferenceStore) Set(key, value string) error {
	pref := models.Preference{Key: key, Value: value}
	err := DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
	if err != nil {
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	return nil
}
