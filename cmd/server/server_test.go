package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/resort-booking/internal/config"
	"github.com/codr1/resort-booking/internal/drafts"
	"github.com/codr1/resort-booking/internal/email"
	"github.com/codr1/resort-booking/internal/models"
	"github.com/codr1/resort-booking/internal/ratelimit"
	"github.com/codr1/resort-booking/internal/testutil"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	cfg, err := config.Parse([]byte(`
app:
  name: "Barali Beach Resort"
  port: 8080
api:
  base_url: "http://resort.test"
`))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.App.StaticDir = t.TempDir()

	fake := testutil.NewFakeResortAPI(t,
		testutil.Room("1", "Sea View Villa", "Villa", 1000, nil),
	)
	fake.Types = []models.AccommodationType{{Name: "Villa"}}

	limiter := ratelimit.New(nil)
	t.Cleanup(limiter.Close)

	d := deps{
		api:     fake,
		store:   drafts.NewStore(time.Hour, nil),
		cookies: drafts.NewCookies("test-secret", false, time.Hour),
		sender:  email.LogSender{},
		limiter: limiter,
	}
	return newServer(cfg, d).Handler
}

func TestServerRoutes(t *testing.T) {
	handler := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		status int
		want   string
	}{
		{name: "home", method: http.MethodGet, path: "/", status: http.StatusOK, want: `action="/search-results"`},
		{name: "health", method: http.MethodGet, path: "/health", status: http.StatusOK, want: "OK"},
		{name: "results", method: http.MethodGet, path: "/search-results", status: http.StatusOK, want: "Sea View Villa"},
		{name: "booking", method: http.MethodGet, path: "/booking?room=1", status: http.StatusOK, want: "booking-form"},
		{name: "confirmation without draft", method: http.MethodGet, path: "/booking-confirmation", status: http.StatusSeeOther},
		{name: "payment", method: http.MethodGet, path: "/payment", status: http.StatusOK, want: `id="payment"`},
		{name: "unknown", method: http.MethodGet, path: "/nope", status: http.StatusNotFound},
		{name: "confirm requires post", method: http.MethodGet, path: "/booking/confirm", status: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, rec.Code)
			}
			if tt.want != "" && !strings.Contains(rec.Body.String(), tt.want) {
				t.Fatalf("expected %q in body", tt.want)
			}
			if rec.Header().Get("X-Request-ID") == "" {
				t.Fatalf("expected request id header")
			}
		})
	}
}

func TestServerBookingFlow(t *testing.T) {
	handler := newTestServer(t)

	form := url.Values{
		"room":            {"1"},
		"checkIn":         {"2024-01-10"},
		"checkOut":        {"2024-01-13"},
		"adults":          {"2"},
		"submissionToken": {"flow-token"},
	}
	req := httptest.NewRequest(http.MethodPost, "/booking/confirm", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d: %s", rec.Code, rec.Body.String())
	}

	confirm := httptest.NewRequest(http.MethodGet, rec.Header().Get("Location"), nil)
	for _, cookie := range rec.Result().Cookies() {
		confirm.AddCookie(cookie)
	}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, confirm)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Sea View Villa") || !strings.Contains(body, "3,000 บาท") {
		t.Fatalf("expected confirmation summary with total, got %s", body)
	}
}

func TestSetupLoggerDebugFlag(t *testing.T) {
	prevLevel := zerolog.GlobalLevel()
	prevLogger := log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prevLevel)
		log.Logger = prevLogger
	})

	setupLogger("production", true)
	if got := zerolog.GlobalLevel(); got != zerolog.DebugLevel {
		t.Fatalf("expected debug level with enable_debug, got %s", got)
	}

	setupLogger("production", false)
	if got := zerolog.GlobalLevel(); got != zerolog.InfoLevel {
		t.Fatalf("expected info level without enable_debug, got %s", got)
	}
}
