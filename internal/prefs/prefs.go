// Package prefs snapshots and restores the small set of session
// preferences. Values are plain strings in a key/value Store; every change
// overwrites the stored value and Load reads them once at startup.
package prefs

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/balkashynov/neuralfocus/internal/brainwave"
)

// Storage keys.
const (
	KeyFocusTask     = "focusTask"
	KeyTimerActive   = "isTimerActive"
	KeyVolume        = "volume"
	KeyVideoURL      = "videoUrl"
	KeyActiveTab     = "activeTab"
	KeyBrainwaveMode = "brainwaveMode"
)

// Keys lists every key in display order.
var Keys = []string{KeyFocusTask, KeyTimerActive, KeyVolume, KeyVideoURL, KeyActiveTab, KeyBrainwaveMode}

// Tabs accepted for KeyActiveTab.
var Tabs = []string{"focus", "sounds", "checklist"}

const (
	DefaultVolume    = 57
	DefaultVideoURL  = "https://www.youtube.com/watch?v=5qap5aO4i9A"
	DefaultTab       = "focus"
	DefaultBrainwave = "alpha"
)

// Store is a flat string map with last-write-wins semantics.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Preferences is the typed view of the stored values.
type Preferences struct {
	FocusTask     string
	TimerActive   bool
	Volume        int
	VideoURL      string
	ActiveTab     string
	BrainwaveMode string
}

// Defaults are used for every key that is absent or unreadable.
func Defaults() Preferences {
	return Preferences{
		Volume:        DefaultVolume,
		VideoURL:      DefaultVideoURL,
		ActiveTab:     DefaultTab,
		BrainwaveMode: DefaultBrainwave,
	}
}

// Load reads every key from s. Missing or malformed values fall back to
// their defaults; only store failures are returned.
func Load(s Store) (Preferences, error) {
	p := Defaults()

	for _, key := range Keys {
		raw, ok, err := s.Get(key)
		if err != nil {
			return p, fmt.Errorf("load %s: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := p.set(key, raw); err != nil {
			log.Printf("ignoring stored %s: %v", key, err)
		}
	}
	return p, nil
}

func (p *Preferences) set(key, raw string) error {
	switch key {
	case KeyFocusTask:
		p.FocusTask = raw
	case KeyTimerActive:
		p.TimerActive = raw == "true"
	case KeyVolume:
		v, err := parseVolume(raw)
		if err != nil {
			return err
		}
		p.Volume = v
	case KeyVideoURL:
		if raw != "" {
			p.VideoURL = raw
		}
	case KeyActiveTab:
		if !validTab(raw) {
			return fmt.Errorf("unknown tab %q", raw)
		}
		p.ActiveTab = raw
	case KeyBrainwaveMode:
		if !brainwave.Valid(raw) {
			return fmt.Errorf("unknown brainwave mode %q", raw)
		}
		p.BrainwaveMode = strings.ToLower(strings.TrimSpace(raw))
	default:
		return fmt.Errorf("unknown preference %q", key)
	}
	return nil
}

// Get formats one field for display.
func (p Preferences) Get(key string) (string, error) {
	switch key {
	case KeyFocusTask:
		return p.FocusTask, nil
	case KeyTimerActive:
		return strconv.FormatBool(p.TimerActive), nil
	case KeyVolume:
		return strconv.Itoa(p.Volume), nil
	case KeyVideoURL:
		return p.VideoURL, nil
	case KeyActiveTab:
		return p.ActiveTab, nil
	case KeyBrainwaveMode:
		return p.BrainwaveMode, nil
	}
	return "", fmt.Errorf("unknown preference %q", key)
}

func parseVolume(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("volume %q is not a number", raw)
	}
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("volume %d out of range 0-100", v)
	}
	return v, nil
}

func validTab(tab string) bool {
	for _, t := range Tabs {
		if t == tab {
			return true
		}
	}
	return false
}

// Manager writes preference changes through to a Store.
type Manager struct {
	store Store
	mu    sync.Mutex
	cur   Preferences
}

// NewManager loads the preferences from s.
func NewManager(s Store) (*Manager, error) {
	p, err := Load(s)
	if err != nil {
		return nil, err
	}
	return &Manager{store: s, cur: p}, nil
}

// Current returns the in-memory copy.
func (m *Manager) Current() Preferences {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}

// Set validates and stores one raw value.
func (m *Manager) Set(key, raw string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.cur
	if err := next.set(key, raw); err != nil {
		return err
	}
	// store the parsed form so a reload matches memory
	value, err := next.Get(key)
	if err != nil {
		return err
	}
	if err := m.store.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	m.cur = next
	return nil
}

func (m *Manager) SetFocusTask(task string) error { return m.Set(KeyFocusTask, task) }
func (m *Manager) SetTimerActive(active bool) error {
	return m.Set(KeyTimerActive, strconv.FormatBool(active))
}
func (m *Manager) SetVideoURL(url string) error  { return m.Set(KeyVideoURL, url) }
func (m *Manager) SetActiveTab(tab string) error { return m.Set(KeyActiveTab, tab) }
func (m *Manager) SetBrainwaveMode(mode string) error {
	return m.Set(KeyBrainwaveMode, mode)
}

// SetVolume stores the mixer volume. It satisfies audio.Output so the
// manager can sit behind the mixer; failures are logged.
func (m *Manager) SetVolume(percent int) {
	if err := m.Set(KeyVolume, strconv.Itoa(percent)); err != nil {
		log.Printf("persist volume: %v", err)
	}
}
