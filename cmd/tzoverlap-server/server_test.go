package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/codeGROOVE-dev/tzoverlap/pkg/tzconvert"
)

var testIDs = []string{"UTC", "Europe/London", "Europe/Berlin", "America/New_York", "America/Sao_Paulo", "Asia/Kolkata"}

func newTestServer(t *testing.T, perMinute int) http.Handler {
	t.Helper()
	s := newServer(tzconvert.NewSystem(), testIDs, perMinute, slog.New(slog.DiscardHandler))
	s.now = func() time.Time { return time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC) }
	return s.routes()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t, 0), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "ok" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestZones(t *testing.T) {
	h := newTestServer(t, 0)

	tests := []struct {
		name   string
		target string
		want   []string
		status int
	}{
		{
			name:   "all zones sorted by offset",
			target: "/api/v1/zones",
			want:   []string{"America/New_York", "America/Sao_Paulo", "Europe/London", "UTC", "Europe/Berlin", "Asia/Kolkata"},
			status: http.StatusOK,
		},
		{
			name:   "continent filter",
			target: "/api/v1/zones?continent=europe",
			want:   []string{"Europe/London", "Europe/Berlin"},
			status: http.StatusOK,
		},
		{
			name:   "south america",
			target: "/api/v1/zones?continent=South+America",
			want:   []string{"America/Sao_Paulo"},
			status: http.StatusOK,
		},
		{
			name:   "query filter",
			target: "/api/v1/zones?q=new+york",
			want:   []string{"America/New_York"},
			status: http.StatusOK,
		},
		{
			name:   "unknown continent",
			target: "/api/v1/zones?continent=Atlantis",
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.status != http.StatusOK {
				return
			}
			var resp zonesResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			got := make([]string, 0, len(resp.Zones))
			for _, z := range resp.Zones {
				got = append(got, z.ID)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("zones = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestZonesOffsets(t *testing.T) {
	rec := get(t, newTestServer(t, 0), "/api/v1/zones?q=kolkata")
	var resp zonesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Zones) != 1 {
		t.Fatalf("got %d zones, want 1", len(resp.Zones))
	}
	z := resp.Zones[0]
	if z.OffsetMinutes != 330 || z.OffsetLabel != "UTC+05:30" || z.Continent != "Asia" {
		t.Errorf("zone = %+v", z)
	}
}

type overlapResponse struct {
	EarliestStart *struct {
		UTC time.Time `json:"utc"`
	} `json:"earliest_start"`
	ZoneA                string `json:"zone_a"`
	Segments             []any  `json:"segments"`
	Slots                []any  `json:"slots"`
	MinDurationMinutes   int    `json:"min_duration_minutes"`
	HasQualifyingOverlap bool   `json:"has_qualifying_overlap"`
}

func TestOverlap(t *testing.T) {
	h := newTestServer(t, 0)

	tests := []struct {
		name       string
		target     string
		wantStart  time.Time
		wantMin    int
		qualifying bool
	}{
		{
			name:       "london and new york share three hours",
			target:     "/api/v1/overlap?a=Europe/London&b=America/New_York&date=2025-01-15",
			qualifying: true,
			wantStart:  time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC),
			wantMin:    180,
		},
		{
			name:       "london and kolkata fall short",
			target:     "/api/v1/overlap?a=Europe/London&b=Asia/Kolkata&date=2025-01-15",
			qualifying: false,
			wantMin:    180,
		},
		{
			name:       "lower minimum qualifies kolkata",
			target:     "/api/v1/overlap?a=Europe/London&b=Asia/Kolkata&date=2025-01-15&min=60",
			qualifying: true,
			wantStart:  time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC),
			wantMin:    60,
		},
		{
			name:       "date defaults to today",
			target:     "/api/v1/overlap?a=UTC&b=UTC&window_a=10-16&window_b=9-17",
			qualifying: true,
			wantStart:  time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
			wantMin:    180,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			var resp overlapResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(resp.Slots) != 96 {
				t.Errorf("got %d slots, want 96", len(resp.Slots))
			}
			if resp.MinDurationMinutes != tt.wantMin {
				t.Errorf("min_duration_minutes = %d, want %d", resp.MinDurationMinutes, tt.wantMin)
			}
			if resp.HasQualifyingOverlap != tt.qualifying {
				t.Fatalf("has_qualifying_overlap = %v, want %v", resp.HasQualifyingOverlap, tt.qualifying)
			}
			if !tt.qualifying {
				if resp.EarliestStart != nil {
					t.Errorf("earliest_start = %v, want absent", resp.EarliestStart)
				}
				return
			}
			if resp.EarliestStart == nil || !resp.EarliestStart.UTC.Equal(tt.wantStart) {
				t.Errorf("earliest_start = %+v, want %v", resp.EarliestStart, tt.wantStart)
			}
		})
	}
}

func TestOverlapErrors(t *testing.T) {
	h := newTestServer(t, 0)

	tests := []struct {
		name    string
		target  string
		message string
		status  int
	}{
		{"missing zone", "/api/v1/overlap?a=UTC", "both a and b zones are required", http.StatusBadRequest},
		{"bad window", "/api/v1/overlap?a=UTC&b=UTC&window_a=17-9", "window_a", http.StatusBadRequest},
		{"bad date", "/api/v1/overlap?a=UTC&b=UTC&date=tomorrow", "invalid date", http.StatusBadRequest},
		{"bad min", "/api/v1/overlap?a=UTC&b=UTC&min=-5", "invalid min", http.StatusBadRequest},
		{"unknown zone", "/api/v1/overlap?a=UTC&b=Mars/Olympus", "cannot compute overlap for zone Mars/Olympus", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !strings.Contains(body["error"], tt.message) {
				t.Errorf("error = %q, want it to contain %q", body["error"], tt.message)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	h := newTestServer(t, 2)
	for i := range 2 {
		if rec := get(t, h, "/healthz"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}
	if rec := get(t, h, "/healthz"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
}

func TestRateLimiterWindow(t *testing.T) {
	rl := newRateLimiter(1)
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	if !rl.allow("1.2.3.4", now) {
		t.Fatal("first request denied")
	}
	if rl.allow("1.2.3.4", now.Add(30*time.Second)) {
		t.Error("second request within a minute allowed")
	}
	if !rl.allow("5.6.7.8", now.Add(30*time.Second)) {
		t.Error("other client denied")
	}
	if !rl.allow("1.2.3.4", now.Add(61*time.Second)) {
		t.Error("request after the window denied")
	}
}

func TestPanicRecovery(t *testing.T) {
	s := newServer(tzconvert.NewSystem(), testIDs, 0, slog.New(slog.DiscardHandler))
	h := s.wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := get(t, h, "/")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
