package catalog

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// zoneinfoDirs are the usual places an OS keeps its compiled tz database.
var zoneinfoDirs = []string{
	"/usr/share/zoneinfo",
	"/usr/lib/zoneinfo",
	"/usr/share/lib/zoneinfo",
	"/etc/zoneinfo",
}

// Trees inside zoneinfo that duplicate the main tree or are not zones.
var skippedTrees = map[string]bool{
	"posix": true,
	"right": true,
}

// Top-level files that look like zone names but are not selectable.
var skippedNames = map[string]bool{
	"Factory":    true,
	"localtime":  true,
	"posixrules": true,
}

var tzifMagic = []byte("TZif")

// FallbackZoneIDs is the list used when the platform cannot enumerate zones.
func FallbackZoneIDs() []string {
	return []string{
		"UTC",
		"America/Los_Angeles",
		"America/Denver",
		"America/Chicago",
		"America/New_York",
		"America/Sao_Paulo",
		"Europe/London",
		"Europe/Paris",
		"Europe/Berlin",
		"Africa/Cairo",
		"Africa/Johannesburg",
		"Asia/Dubai",
		"Asia/Kolkata",
		"Asia/Shanghai",
		"Asia/Tokyo",
		"Australia/Sydney",
	}
}

// SystemZoneIDs walks a zoneinfo directory and returns the sorted identifiers
// of every TZif file in it.
func SystemZoneIDs(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading zoneinfo dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("zoneinfo path %s is not a directory", dir)
	}

	var ids []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if skippedTrees[rel] || !isZoneComponent(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if skippedNames[rel] || !isZoneName(rel) {
			return nil
		}
		if ok, err := isTZif(path); err != nil || !ok {
			return nil //nolint:nilerr // unreadable entries are not zones
		}
		ids = append(ids, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking zoneinfo dir: %w", err)
	}

	sort.Strings(ids)
	return ids, nil
}

// ZoneIDs enumerates zones from dir, or from the usual OS locations when dir
// is empty. It never fails: when nothing can be enumerated it logs and
// returns FallbackZoneIDs.
func ZoneIDs(dir string, logger *slog.Logger) []string {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dirs := zoneinfoDirs
	if dir != "" {
		dirs = []string{dir}
	}

	for _, d := range dirs {
		ids, err := SystemZoneIDs(d)
		if err != nil {
			logger.Debug("zoneinfo enumeration failed", "dir", d, "error", err)
			continue
		}
		if len(ids) == 0 {
			logger.Debug("zoneinfo dir has no zones", "dir", d)
			continue
		}
		logger.Debug("enumerated zones", "dir", d, "count", len(ids))
		return ids
	}

	logger.Info("using fallback zone list", "count", len(FallbackZoneIDs()))
	return FallbackZoneIDs()
}

// isZoneName reports whether every component of a slash path looks like an
// IANA name component: it starts with an uppercase letter and has no dot.
func isZoneName(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if !isZoneComponent(part) {
			return false
		}
	}
	return true
}

func isZoneComponent(s string) bool {
	if s == "" || strings.Contains(s, ".") {
		return false
	}
	return s[0] >= 'A' && s[0] <= 'Z'
}

func isTZif(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close() //nolint:errcheck // read-only

	header := make([]byte, len(tzifMagic))
	if _, err := io.ReadFull(f, header); err != nil {
		return false, nil //nolint:nilerr // short files are not zones
	}
	return bytes.Equal(header, tzifMagic), nil
}
