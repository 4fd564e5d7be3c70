package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/neuralfocus/internal/models"
	"github.com/balkashynov/neuralfocus/internal/prefs"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, Initialize(filepath.Join(t.TempDir(), "nested", "test.db")))
	t.Cleanup(func() { _ = Close() })
}

func TestPreferenceStore_Upsert(t *testing.T) {
	setupTestDB(t)
	var s PreferenceStore

	_, ok, err := s.Get(prefs.KeyVolume)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(prefs.KeyVolume, "40"))
	require.NoError(t, s.Set(prefs.KeyVolume, "41"))

	v, ok, err := s.Get(prefs.KeyVolume)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "41", v)

	var count int64
	DB.Model(&models.Preference{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestPreferenceStore_WithManager(t *testing.T) {
	setupTestDB(t)

	m, err := prefs.NewManager(PreferenceStore{})
	require.NoError(t, err)
	require.NoError(t, m.SetActiveTab("sounds"))
	m.SetVolume(12)

	p, err := prefs.Load(PreferenceStore{})
	require.NoError(t, err)
	assert.Equal(t, "sounds", p.ActiveTab)
	assert.Equal(t, 12, p.Volume)
	assert.Equal(t, prefs.DefaultBrainwave, p.BrainwaveMode)
}

func TestChecklist_SeedOnce(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, SeedChecklist())
	require.NoError(t, SeedChecklist())

	items, err := GetChecklist()
	require.NoError(t, err)
	require.Len(t, items, len(DefaultChecklist))
	assert.Equal(t, "Clear workspace of distractions", items[0].Text)
	assert.True(t, items[0].Completed)
	assert.False(t, items[1].Completed)

	for _, it := range items {
		_, err := RemoveChecklistItem(it.ID)
		require.NoError(t, err)
	}
	require.NoError(t, SeedChecklist())

	items, err = GetChecklist()
	require.NoError(t, err)
	assert.Empty(t, items, "an emptied list stays empty")
}

func TestChecklist_AddToggleRemove(t *testing.T) {
	setupTestDB(t)

	_, err := AddChecklistItem("   ")
	assert.ErrorIs(t, err, ErrEmptyItem)

	item, err := AddChecklistItem("  Close email  ")
	require.NoError(t, err)
	assert.Equal(t, "Close email", item.Text)
	assert.False(t, item.Completed)

	toggled, err := ToggleChecklistItem(item.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = ToggleChecklistItem(item.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	_, err = RemoveChecklistItem(item.ID)
	require.NoError(t, err)

	_, err = ToggleChecklistItem(item.ID)
	assert.Error(t, err)
	_, err = RemoveChecklistItem(999)
	assert.Error(t, err)
}

func TestFocusSessions_Stats(t *testing.T) {
	setupTestDB(t)

	now := time.Now()
	require.NoError(t, RecordFocusSession(&models.FocusSession{Task: "write", PresetSeconds: 1500, CompletedAt: now.Add(-time.Hour)}))
	require.NoError(t, RecordFocusSession(&models.FocusSession{Task: "read", PresetSeconds: 5400, CompletedAt: now.Add(-3 * 24 * time.Hour)}))
	require.NoError(t, RecordFocusSession(&models.FocusSession{PresetSeconds: 1500, CompletedAt: now.Add(-30 * 24 * time.Hour)}))

	day, err := GetFocusStats(now.Add(-24*time.Hour), now)
	require.NoError(t, err)
	assert.Equal(t, 1, day.Sessions)
	assert.Equal(t, 25*time.Minute, day.Focused)

	week, err := GetFocusStats(now.Add(-7*24*time.Hour), now)
	require.NoError(t, err)
	assert.Equal(t, 2, week.Sessions)
	assert.Equal(t, 115*time.Minute, week.Focused)

	sessions, err := GetSessionsInRange(now.Add(-7*24*time.Hour), now)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "read", sessions[0].Task)
	assert.False(t, sessions[0].StartedAt.IsZero())
}

func TestRecordFocusSession_DefaultsTimes(t *testing.T) {
	setupTestDB(t)

	s := &models.FocusSession{PresetSeconds: 1500}
	require.NoError(t, RecordFocusSession(s))
	assert.False(t, s.CompletedAt.IsZero())
	assert.Equal(t, 25*time.Minute, s.CompletedAt.Sub(s.StartedAt))
}
