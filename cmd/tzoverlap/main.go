// Package main implements the tzoverlap CLI for timezone catalogs and working-hour overlaps.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/fatih/color"

	"github.com/codeGROOVE-dev/tzoverlap/pkg/catalog"
	"github.com/codeGROOVE-dev/tzoverlap/pkg/continent"
	"github.com/codeGROOVE-dev/tzoverlap/pkg/histogram"
	"github.com/codeGROOVE-dev/tzoverlap/pkg/overlap"
	"github.com/codeGROOVE-dev/tzoverlap/pkg/prefs"
	"github.com/codeGROOVE-dev/tzoverlap/pkg/tzconvert"
)

var (
	prefsPath   = flag.String("prefs", "", "Preference file (or set TZOVERLAP_PREFS)")
	zoneinfoDir = flag.String("zoneinfo", "", "zoneinfo directory to enumerate (or set ZONEINFO)")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	version     = flag.Bool("version", false, "Show version")
	noColor     = flag.Bool("no-color", false, "Disable colored output")
	jsonOut     = flag.Bool("json", false, "Print results as JSON")

	windowA    = flag.String("window-a", "", "Work window for the first zone, e.g. 9-17 (default: saved or 9-17)")
	windowB    = flag.String("window-b", "", "Work window for the second zone, e.g. 9-17 (default: saved or 9-17)")
	dateFlag   = flag.String("date", "", "UTC day to scan, YYYY-MM-DD (default: today)")
	minOverlap = flag.Int("min-overlap", 180, "Minimum overlap in minutes for a usable meeting window")
	slotSize   = flag.Int("slot", 15, "Slot size in minutes (must divide 1440)")
	save       = flag.Bool("save", false, "Remember the work windows used for this overlap")

	continentFilter = flag.String("continent", "", "Only list zones on this continent (e.g. Europe, \"South America\")")
	search          = flag.String("search", "", "Only list zones whose name contains this text")
	onlyFavorites   = flag.Bool("favorites", false, "Only list favorite zones")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  %s [flags] zones\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s [flags] overlap <zone-a> <zone-b>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s [flags] favorites [add|remove <zone>]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s [flags] theme [light|dark]\n\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Println("tzoverlap CLI v1.0.0")
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	if *noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
	if *prefsPath == "" {
		*prefsPath = os.Getenv("TZOVERLAP_PREFS")
	}
	if *zoneinfoDir == "" {
		*zoneinfoDir = os.Getenv("ZONEINFO")
	}

	if err := run(args, logger); err != nil {
		logger.Error("command failed", "command", args[0], "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, logger *slog.Logger) error {
	manager, err := openPrefs(logger)
	if err != nil {
		return err
	}
	cal := tzconvert.NewSystem()

	switch args[0] {
	case "zones":
		return runZones(cal, manager, logger)
	case "overlap":
		if len(args) != 3 {
			return errors.New("overlap needs two zones: overlap <zone-a> <zone-b>")
		}
		return runOverlap(cal, manager, args[1], args[2], logger)
	case "favorites":
		return runFavorites(cal, manager, args[1:])
	case "theme":
		return runTheme(manager, args[1:])
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func openPrefs(logger *slog.Logger) (*prefs.Manager, error) {
	path := *prefsPath
	if path == "" {
		var err error
		path, err = prefs.DefaultPath()
		if err != nil {
			logger.Debug("preferences disabled", "error", err)
			return prefs.Open(prefs.NewMemoryStore(), logger)
		}
	}

	store, err := prefs.OpenFileStore(path, logger)
	if err != nil {
		return nil, err
	}
	return prefs.Open(store, logger)
}

func runZones(cal tzconvert.Calendar, manager *prefs.Manager, logger *slog.Logger) error {
	var label continent.Label
	if *continentFilter != "" {
		l, ok := continent.Parse(*continentFilter)
		if !ok {
			names := make([]string, 0, len(continent.All()))
			for _, l := range continent.All() {
				names = append(names, string(l))
			}
			return fmt.Errorf("unknown continent %q (want one of: %s)", *continentFilter, strings.Join(names, ", "))
		}
		label = l
	}

	now := time.Now()
	ids := catalog.ZoneIDs(*zoneinfoDir, logger)
	if *onlyFavorites {
		ids = manager.Favorites()
	}
	entries := catalog.Filter(catalog.NewBuilder(cal, logger).Build(ids, now), label, *search)

	if *jsonOut {
		return printJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No matching zones.")
		return nil
	}

	star := color.New(color.FgYellow)
	dim := color.New(color.FgHiBlack)
	for _, e := range entries {
		mark := " "
		if manager.IsFavorite(e.ID) {
			mark = star.Sprint("★")
		}
		local, err := cal.ResolveLocalTime(e.ID, now)
		if err != nil {
			logger.Debug("skipping clock for zone", "zone", e.ID, "error", err)
			continue
		}
		fmt.Printf("%s %s  %s  %-32s %s\n", mark, e.OffsetLabel(), local, e.ID, dim.Sprint(e.Continent))
	}
	return nil
}

func runOverlap(cal tzconvert.Calendar, manager *prefs.Manager, zoneA, zoneB string, logger *slog.Logger) error {
	wa, wb := manager.WorkWindows()
	var err error
	if *windowA != "" {
		if wa, err = overlap.ParseWorkWindow(*windowA); err != nil {
			return err
		}
	}
	if *windowB != "" {
		if wb, err = overlap.ParseWorkWindow(*windowB); err != nil {
			return err
		}
	}

	day := overlap.UTCMidnight(time.Now())
	if *dateFlag != "" {
		day, err = time.Parse(time.DateOnly, *dateFlag)
		if err != nil {
			return fmt.Errorf("invalid -date %q: %w", *dateFlag, err)
		}
	}

	engine := overlap.New(cal,
		overlap.WithLogger(logger),
		overlap.WithMinDuration(*minOverlap),
		overlap.WithSlotMinutes(*slotSize),
	)
	result, err := engine.FindOverlap(zoneA, zoneB, wa, wb, day)
	if err != nil {
		return err
	}

	if *save {
		if err := manager.SetWorkWindows(wa, wb); err != nil {
			return fmt.Errorf("saving work windows: %w", err)
		}
	}

	if *jsonOut {
		return printJSON(result)
	}
	fmt.Print(histogram.RenderOverlap(result))
	return nil
}

func runFavorites(cal tzconvert.Calendar, manager *prefs.Manager, args []string) error {
	if len(args) == 0 {
		favs := manager.Favorites()
		if *jsonOut {
			return printJSON(favs)
		}
		if len(favs) == 0 {
			fmt.Println("No favorites yet.")
			return nil
		}
		fmt.Println(strings.Join(favs, "\n"))
		return nil
	}

	if len(args) != 2 {
		return errors.New("usage: favorites [add|remove <zone>]")
	}
	zone := args[1]
	switch args[0] {
	case "add":
		// Only zones the calendar can resolve are worth remembering.
		if _, err := cal.ResolveOffset(zone, time.Now()); err != nil {
			return err
		}
		return manager.AddFavorite(zone)
	case "remove":
		return manager.RemoveFavorite(zone)
	default:
		return fmt.Errorf("unknown favorites action %q", args[0])
	}
}

func runTheme(manager *prefs.Manager, args []string) error {
	if len(args) == 0 {
		fmt.Println(manager.Theme())
		return nil
	}
	theme, err := prefs.ParseTheme(args[0])
	if err != nil {
		return err
	}
	return manager.SetTheme(theme)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
