// cmd/server/server.go
package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/resort-booking/internal/api"
	"github.com/codr1/resort-booking/internal/api/apiutil"
	"github.com/codr1/resort-booking/internal/api/booking"
	"github.com/codr1/resort-booking/internal/api/confirmation"
	"github.com/codr1/resort-booking/internal/api/search"
	"github.com/codr1/resort-booking/internal/config"
	"github.com/codr1/resort-booking/internal/templates/components/payment"
	"github.com/codr1/resort-booking/internal/templates/layouts"
)

func newServer(cfg *config.Config, d deps) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	search.InitHandlers(d.api, cfg.API.UploadsURL, cfg.Theme)
	booking.InitHandlers(d.api, d.store, d.cookies, cfg.API.UploadsURL, cfg.Theme)
	confirmation.InitHandlers(d.store, d.cookies, d.sender, d.limiter, cfg.App.TrustProxy, cfg.Theme)

	registerRoutes(router, cfg)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, cfg *config.Config) {
	mux.HandleFunc("GET /{$}", search.HandleHome)
	mux.HandleFunc("GET /search-results", search.HandleSearchResults)

	mux.HandleFunc("GET /booking", booking.HandleBookingPage)
	mux.HandleFunc("POST /booking/confirm", booking.HandleConfirm)

	mux.HandleFunc("GET /booking-confirmation", confirmation.HandleConfirmationPage)
	mux.HandleFunc("POST /booking-confirmation/email", confirmation.HandleSummaryEmail)

	// Payment is handled elsewhere; this only terminates the flow.
	mux.HandleFunc("GET /payment", func(w http.ResponseWriter, r *http.Request) {
		page := layouts.Base("ชำระเงิน", cfg.Theme, payment.Placeholder())
		apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render payment page", "Failed to render page")
	})

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"}); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write health response")
		}
	})

	staticDir := cfg.App.StaticDir
	if staticDir == "" {
		staticDir = "static"
	}
	fs := http.FileServer(http.Dir(staticDir))

	mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Ctx(r.Context()).Debug().
			Str("path", r.URL.Path).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
