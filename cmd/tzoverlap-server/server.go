package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/codeGROOVE-dev/tzoverlap/pkg/catalog"
	"github.com/codeGROOVE-dev/tzoverlap/pkg/constants"
	"github.com/codeGROOVE-dev/tzoverlap/pkg/continent"
	"github.com/codeGROOVE-dev/tzoverlap/pkg/overlap"
	"github.com/codeGROOVE-dev/tzoverlap/pkg/tzconvert"
)

type server struct {
	calendar tzconvert.Calendar
	catalog  *catalog.Cache
	limiter  *rateLimiter
	logger   *slog.Logger
	now      func() time.Time
}

func newServer(cal tzconvert.Calendar, ids []string, perMinute int, logger *slog.Logger) *server {
	return &server{
		calendar: cal,
		catalog:  catalog.NewCache(catalog.NewBuilder(cal, logger), ids, logger),
		limiter:  newRateLimiter(perMinute),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/v1/zones", s.handleZones)
	mux.HandleFunc("GET /api/v1/overlap", s.handleOverlap)
	return s.wrap(mux)
}

type rateLimiter struct {
	requests  map[string][]time.Time
	perMinute int
	mu        sync.Mutex
}

func newRateLimiter(perMinute int) *rateLimiter {
	return &rateLimiter{
		requests:  make(map[string][]time.Time),
		perMinute: perMinute,
	}
}

func (rl *rateLimiter) allow(ip string, now time.Time) bool {
	if rl.perMinute <= 0 {
		return true
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-time.Minute)
	var valid []time.Time
	for _, t := range rl.requests[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	if len(valid) >= rl.perMinute {
		rl.requests[ip] = valid
		return false
	}
	rl.requests[ip] = append(valid, now)
	return true
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *server) wrap(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := s.now()
		requestID := fmt.Sprintf("%d-%d", now.Unix(), now.Nanosecond())
		w.Header().Set("X-Request-ID", requestID)

		defer func() {
			if err := recover(); err != nil {
				const size = 64 << 10
				buf := make([]byte, size)
				buf = buf[:runtime.Stack(buf, false)]
				s.logger.Error("PANIC: Request handler crashed",
					"error", err,
					"path", r.URL.Path,
					"method", r.Method,
					"request_id", requestID,
					"client_ip", clientIP(r),
					"stack", string(buf))
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "no-store")

		if !s.limiter.allow(clientIP(r), now) {
			s.logger.Warn("Rate limit exceeded",
				"request_id", requestID,
				"client_ip", clientIP(r))
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		handler.ServeHTTP(w, r)
	})
}

func (*server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

type zoneJSON struct {
	ID            string          `json:"id"`
	OffsetLabel   string          `json:"offset_label"`
	Continent     continent.Label `json:"continent"`
	OffsetMinutes int             `json:"offset_minutes"`
}

type zonesResponse struct {
	GeneratedAt time.Time  `json:"generated_at"`
	Zones       []zoneJSON `json:"zones"`
}

func (s *server) handleZones(w http.ResponseWriter, r *http.Request) {
	requestID := w.Header().Get("X-Request-ID")
	q := r.URL.Query()

	var label continent.Label
	if raw := q.Get("continent"); raw != "" {
		l, ok := continent.Parse(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown continent %q", raw))
			return
		}
		label = l
	}

	now := s.now().UTC()
	entries := catalog.Filter(s.catalog.Catalog(now), label, q.Get("q"))

	resp := zonesResponse{GeneratedAt: now, Zones: make([]zoneJSON, 0, len(entries))}
	for _, e := range entries {
		resp.Zones = append(resp.Zones, zoneJSON{
			ID:            e.ID,
			OffsetLabel:   e.OffsetLabel(),
			Continent:     e.Continent,
			OffsetMinutes: e.OffsetMinutes,
		})
	}

	s.logger.Debug("Zones request completed",
		"request_id", requestID,
		"continent", label,
		"query", q.Get("q"),
		"zones", len(resp.Zones))
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleOverlap(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := w.Header().Get("X-Request-ID")
	q := r.URL.Query()

	zoneA, zoneB := q.Get("a"), q.Get("b")
	if zoneA == "" || zoneB == "" {
		writeError(w, http.StatusBadRequest, "both a and b zones are required")
		return
	}

	windowA, err := windowParam(q.Get("window_a"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "window_a: "+err.Error())
		return
	}
	windowB, err := windowParam(q.Get("window_b"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "window_b: "+err.Error())
		return
	}

	day := overlap.UTCMidnight(s.now())
	if raw := q.Get("date"); raw != "" {
		day, err = time.Parse(time.DateOnly, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid date %q", raw))
			return
		}
	}

	opts := []overlap.Option{overlap.WithLogger(s.logger)}
	if raw := q.Get("min"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes < 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid min %q", raw))
			return
		}
		opts = append(opts, overlap.WithMinDuration(minutes))
	}

	result, err := overlap.New(s.calendar, opts...).FindOverlap(zoneA, zoneB, windowA, windowB, day)
	if err != nil {
		var zoneErr *overlap.ZoneError
		if errors.As(err, &zoneErr) {
			s.logger.Info("Overlap request rejected",
				"request_id", requestID,
				"zone", zoneErr.Zone,
				"error", zoneErr.Err)
			writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("cannot compute overlap for zone %s", zoneErr.Zone))
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Info("Overlap request completed",
		"request_id", requestID,
		"zone_a", zoneA,
		"zone_b", zoneB,
		"qualifying", result.HasQualifyingOverlap,
		"overlap_minutes", result.OverlapMinutes(),
		"duration_ms", time.Since(start).Milliseconds())
	writeJSON(w, http.StatusOK, result)
}

func windowParam(raw string) (overlap.WorkWindow, error) {
	if raw == "" {
		return overlap.WorkWindow{StartHour: constants.DefaultWorkStart, EndHour: constants.DefaultWorkEnd}, nil
	}
	return overlap.ParseWorkWindow(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
