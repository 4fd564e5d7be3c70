package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/balkashynov/neuralfocus/internal/models"
)

// DefaultChecklist is written on first use
var DefaultChecklist = []models.ChecklistItem{
	{Text: "Clear workspace of distractions", Completed: true},
	{Text: "Set specific goals for this session"},
	{Text: "Prepare water/tea to stay hydrated"},
	{Text: "Turn on Do Not Disturb mode", Completed: true},
	{Text: "Take a 2-minute mindfulness break"},
}

// ErrEmptyItem is returned when an item has no text after trimming
var ErrEmptyItem = errors.New("checklist item text is empty")

// SeedChecklist inserts the default items unless the table has ever held
// rows. Soft-deleted rows count, so clearing the list does not reseed it.
func SeedChecklist() error {
	var count int64
	if err := DB.Unscoped().Model(&models.ChecklistItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := make([]models.ChecklistItem, len(DefaultChecklist))
	copy(items, DefaultChecklist)
	return DB.Create(&items).Error
}

// AddChecklistItem appends a new, unchecked item
func AddChecklistItem(text string) (*models.ChecklistItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyItem
	}

	item := models.ChecklistItem{Text: text}
	if err := DB.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetChecklist returns the items in insertion order
func GetChecklist() ([]models.ChecklistItem, error) {
	var items []models.ChecklistItem
	if err := DB.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ToggleChecklistItem flips the completed flag
func ToggleChecklistItem(id uint) (*models.ChecklistItem, error) {
	item, err := getChecklistItem(id)
	if err != nil {
		return nil, err
	}

	item.Completed = !item.Completed
	if err := DB.Model(item).Update("completed", item.Completed).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveChecklistItem deletes an item
func RemoveChecklistItem(id uint) (*models.ChecklistItem, error) {
	item, err := getChecklistItem(id)
	if err != nil {
		return nil, err
	}

	if err := DB.Delete(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func getChecklistItem(id uint) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	err := DB.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checklist item #%d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}
