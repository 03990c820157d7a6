package prefs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/codeGROOVE-dev/tzoverlap/pkg/constants"
	"github.com/codeGROOVE-dev/tzoverlap/pkg/overlap"
)

// Store keys.
const (
	KeyFavorites   = "favorites"
	KeyTheme       = "theme"
	KeyWorkWindowA = "work-window-a"
	KeyWorkWindowB = "work-window-b"
)

// Theme is the UI colour scheme.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
	}
}

// Manager reads preferences once at startup and writes each one back to the
// store when it changes. Unreadable values fall back to defaults.
type Manager struct {
	store     Store
	logger    *slog.Logger
	theme     Theme
	favorites []string
	windowA   overlap.WorkWindow
	windowB   overlap.WorkWindow
	mu        sync.Mutex
}

// Open loads preferences from store.
func Open(store Store, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	defaultWindow := overlap.WorkWindow{StartHour: constants.DefaultWorkStart, EndHour: constants.DefaultWorkEnd}
	m := &Manager{
		store:   store,
		logger:  logger,
		theme:   ThemeLight,
		windowA: defaultWindow,
		windowB: defaultWindow,
	}

	if raw, ok, err := store.Load(KeyFavorites); err != nil {
		return nil, fmt.Errorf("loading favorites: %w", err)
	} else if ok {
		var favs []string
		if err := json.Unmarshal([]byte(raw), &favs); err != nil {
			logger.Warn("ignoring unreadable favorites", "error", err)
		} else {
			m.favorites = dedupe(favs)
		}
	}

	if raw, ok, err := store.Load(KeyTheme); err != nil {
		return nil, fmt.Errorf("loading theme: %w", err)
	} else if ok {
		if theme, err := ParseTheme(raw); err != nil {
			logger.Warn("ignoring unreadable theme", "error", err)
		} else {
			m.theme = theme
		}
	}

	for key, dst := range map[string]*overlap.WorkWindow{KeyWorkWindowA: &m.windowA, KeyWorkWindowB: &m.windowB} {
		raw, ok, err := store.Load(key)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", key, err)
		}
		if !ok {
			continue
		}
		w, err := overlap.ParseWorkWindow(raw)
		if err != nil {
			logger.Warn("ignoring unreadable work window", "key", key, "error", err)
			continue
		}
		*dst = w
	}

	return m, nil
}

// Favorites returns the favorite zones in the order they were added.
func (m *Manager) Favorites() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.favorites)
}

// IsFavorite reports whether zone is a favorite.
func (m *Manager) IsFavorite(zone string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Contains(m.favorites, zone)
}

// AddFavorite appends zone unless it is already a favorite.
func (m *Manager) AddFavorite(zone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.Contains(m.favorites, zone) {
		return nil
	}
	return m.saveFavorites(append(slices.Clone(m.favorites), zone))
}

// RemoveFavorite drops zone from the favorites.
func (m *Manager) RemoveFavorite(zone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.Contains(m.favorites, zone) {
		return nil
	}
	next := slices.DeleteFunc(slices.Clone(m.favorites), func(z string) bool { return z == zone })
	return m.saveFavorites(next)
}

// ToggleFavorite flips zone's favorite state and returns the new state.
func (m *Manager) ToggleFavorite(zone string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.Contains(m.favorites, zone) {
		next := slices.DeleteFunc(slices.Clone(m.favorites), func(z string) bool { return z == zone })
		return false, m.saveFavorites(next)
	}
	return true, m.saveFavorites(append(slices.Clone(m.favorites), zone))
}

func (m *Manager) saveFavorites(favs []string) error {
	data, err := json.Marshal(favs)
	if err != nil {
		return fmt.Errorf("encoding favorites: %w", err)
	}
	if err := m.store.Save(KeyFavorites, string(data)); err != nil {
		return err
	}
	m.favorites = favs
	return nil
}

// Theme returns the current theme.
func (m *Manager) Theme() Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.theme
}

// SetTheme stores a new theme.
func (m *Manager) SetTheme(theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Save(KeyTheme, string(theme)); err != nil {
		return err
	}
	m.theme = theme
	return nil
}

// WorkWindows returns the remembered windows for both sides.
func (m *Manager) WorkWindows() (a, b overlap.WorkWindow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.windowA, m.windowB
}

// SetWorkWindows validates and stores both windows.
func (m *Manager) SetWorkWindows(a, b overlap.WorkWindow) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Save(KeyWorkWindowA, a.String()); err != nil {
		return err
	}
	if err := m.store.Save(KeyWorkWindowB, b.String()); err != nil {
		return err
	}
	m.windowA, m.windowB = a, b
	return nil
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
