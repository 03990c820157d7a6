// Package main implements the tzoverlap web server for zone catalogs and overlap queries.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/codeGROOVE-dev/tzoverlap/pkg/catalog"
	"github.com/codeGROOVE-dev/tzoverlap/pkg/tzconvert"
)

var (
	port        = flag.String("port", "", "Port for web server (or set PORT, default 8080)")
	zoneinfoDir = flag.String("zoneinfo", "", "zoneinfo directory to enumerate (or set ZONEINFO)")
	rateLimit   = flag.Int("rate-limit", 60, "Requests per minute allowed per client IP (0 disables)")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	version     = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("tzoverlap Server v1.0.0")
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *port == "" {
		*port = os.Getenv("PORT")
		if *port == "" {
			*port = "8080"
		}
	}
	if *zoneinfoDir == "" {
		*zoneinfoDir = os.Getenv("ZONEINFO")
	}

	logger.Info("Server configuration",
		"port", *port,
		"verbose", *verbose,
		"zoneinfo", *zoneinfoDir,
		"rate_limit", *rateLimit)

	cal := tzconvert.NewSystem()
	ids := catalog.ZoneIDs(*zoneinfoDir, logger)
	logger.Info("Zone catalog source loaded", "zones", len(ids))

	srv := &http.Server{
		Addr:              ":" + *port,
		Handler:           newServer(cal, ids, *rateLimit, logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", *port)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
