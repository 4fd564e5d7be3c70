package db

import (
	"time"

	"github.com/balkashynov/neuralfocus/internal/models"
)

// RecordFocusSession stores a completed focus session
func RecordFocusSession(session *models.FocusSession) error {
	if session.CompletedAt.IsZero() {
		session.CompletedAt = time.Now()
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = session.CompletedAt.Add(-session.Duration())
	}
	return DB.Create(session).Error
}

// GetSessionsInRange returns all sessions completed within the range
func GetSessionsInRange(startTime, endTime time.Time) ([]models.FocusSession, error) {
	var sessions []models.FocusSession

	err := DB.Where("completed_at >= ? AND completed_at <= ?", startTime, endTime).
		Order("completed_at ASC").
		Find(&sessions).Error

	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// FocusStats summarises completed sessions
type FocusStats struct {
	Sessions int
	Focused  time.Duration
}

// GetFocusStats totals the sessions completed within the range
func GetFocusStats(startTime, endTime time.Time) (FocusStats, error) {
	sessions, err := GetSessionsInRange(startTime, endTime)
	if err != nil {
		return FocusStats{}, err
	}

	var stats FocusStats
	for _, s := range sessions {
		stats.Sessions++
		stats.Focused += s.Duration()
	}
	return stats, nil
}
