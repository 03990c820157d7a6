package prefs

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/codeGROOVE-dev/tzoverlap/pkg/overlap"
)

func TestManagerDefaults(t *testing.T) {
	m, err := Open(NewMemoryStore(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.Theme() != ThemeLight {
		t.Errorf("Theme() = %q, want light", m.Theme())
	}
	if len(m.Favorites()) != 0 {
		t.Errorf("Favorites() = %v, want empty", m.Favorites())
	}
	a, b := m.WorkWindows()
	want := overlap.WorkWindow{StartHour: 9, EndHour: 17}
	if a != want || b != want {
		t.Errorf("WorkWindows() = %v, %v; want 9-17 for both", a, b)
	}
}

func TestFavorites(t *testing.T) {
	store := NewMemoryStore()
	m, err := Open(store, nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, z := range []string{"Asia/Kolkata", "Europe/London", "Asia/Kolkata"} {
		if err := m.AddFavorite(z); err != nil {
			t.Fatal(err)
		}
	}
	if got := m.Favorites(); !slices.Equal(got, []string{"Asia/Kolkata", "Europe/London"}) {
		t.Errorf("Favorites() = %v", got)
	}

	on, err := m.ToggleFavorite("Europe/London")
	if err != nil || on {
		t.Errorf("ToggleFavorite(existing) = %v, %v; want false, nil", on, err)
	}
	on, err = m.ToggleFavorite("Pacific/Fiji")
	if err != nil || !on {
		t.Errorf("ToggleFavorite(new) = %v, %v; want true, nil", on, err)
	}
	if err := m.RemoveFavorite("Not/There"); err != nil {
		t.Errorf("RemoveFavorite(missing) = %v", err)
	}

	raw, ok, _ := store.Load(KeyFavorites)
	if !ok || raw != `["Asia/Kolkata","Pacific/Fiji"]` {
		t.Errorf("stored favorites = %q, %v", raw, ok)
	}

	// A fresh manager sees what was written.
	again, err := Open(store, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !again.IsFavorite("Pacific/Fiji") || again.IsFavorite("Europe/London") {
		t.Errorf("reloaded favorites = %v", again.Favorites())
	}
}

func TestUnreadableValuesFallBack(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Save(KeyFavorites, "{not json")
	_ = store.Save(KeyTheme, "neon")
	_ = store.Save(KeyWorkWindowA, "17-9")
	_ = store.Save(KeyWorkWindowB, "8-16")

	m, err := Open(store, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Favorites()) != 0 || m.Theme() != ThemeLight {
		t.Errorf("favorites %v theme %q, want defaults", m.Favorites(), m.Theme())
	}
	a, b := m.WorkWindows()
	if a != (overlap.WorkWindow{StartHour: 9, EndHour: 17}) || b != (overlap.WorkWindow{StartHour: 8, EndHour: 16}) {
		t.Errorf("WorkWindows() = %v, %v", a, b)
	}
}

func TestThemeAndWindows(t *testing.T) {
	m, err := Open(NewMemoryStore(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.SetTheme(ThemeDark); err != nil || m.Theme() != ThemeDark {
		t.Errorf("SetTheme(dark) = %v, theme %q", err, m.Theme())
	}
	if err := m.SetTheme("sepia"); err == nil {
		t.Error("SetTheme(sepia) succeeded")
	}

	bad := overlap.WorkWindow{StartHour: 10, EndHour: 10}
	if err := m.SetWorkWindows(bad, bad); !errors.Is(err, overlap.ErrInvalidWindow) {
		t.Errorf("SetWorkWindows(invalid) = %v, want ErrInvalidWindow", err)
	}
	good := overlap.WorkWindow{StartHour: 7, EndHour: 15}
	if err := m.SetWorkWindows(good, good); err != nil {
		t.Fatal(err)
	}
	if a, _ := m.WorkWindows(); a != good {
		t.Errorf("WorkWindows() = %v, want %v", a, good)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")

	s, err := OpenFileStore(path, nil)
	if err != nil {
		t.Fatalf("OpenFileStore(missing): %v", err)
	}
	m, err := Open(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.AddFavorite("America/Sao_Paulo"); err != nil {
		t.Fatal(err)
	}
	if err := m.SetTheme(ThemeDark); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "theme: dark") {
		t.Errorf("preference file missing theme:\n%s", data)
	}

	reopened, err := OpenFileStore(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := Open(reopened, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m2.Theme() != ThemeDark || !m2.IsFavorite("America/Sao_Paulo") {
		t.Errorf("reopened theme %q favorites %v", m2.Theme(), m2.Favorites())
	}
}

func TestFileStoreEmptyAndCorrupt(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := OpenFileStore(empty, nil)
	if err != nil {
		t.Fatalf("OpenFileStore(empty): %v", err)
	}
	if err := s.Save("k", "v"); err != nil {
		t.Errorf("Save on empty store: %v", err)
	}

	corrupt := filepath.Join(dir, "corrupt.yaml")
	if err := os.WriteFile(corrupt, []byte("- not\n- a map\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFileStore(corrupt, nil); err == nil {
		t.Error("OpenFileStore(corrupt) returned nil error")
	}
}

func TestFileStoreSaveFailureKeepsOldValue(t *testing.T) {
	dir := t.TempDir()
	// The parent "directory" is a regular file, so every write fails.
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := &FileStore{
		path:   filepath.Join(blocker, "prefs.yaml"),
		logger: slog.New(slog.DiscardHandler),
		values: make(map[string]string),
	}
	if err := s.Save("theme", "dark"); err == nil {
		t.Fatal("Save succeeded under a file path")
	}
	if _, ok, _ := s.Load("theme"); ok {
		t.Error("failed Save left the value in memory")
	}
}

func TestParseTheme(t *testing.T) {
	if th, err := ParseTheme("dark"); err != nil || th != ThemeDark {
		t.Errorf("ParseTheme(dark) = %q, %v", th, err)
	}
	if _, err := ParseTheme("Dark"); err == nil {
		t.Error("ParseTheme is case-sensitive")
	}
}
