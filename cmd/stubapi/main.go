// cmd/stubapi/main.go
package main

import (
	_ "embed"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//go:embed fixture.yaml
var defaultFixture []byte

func main() {
	addr := flag.String("addr", ":8090", "listen address")
	fixturePath := flag.String("fixture", "", "fixture YAML file (defaults to the embedded sample)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	f, err := loadFixture(*fixturePath, defaultFixture)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load fixture")
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           newRouter(f),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info().
		Str("addr", *addr).
		Int("accommodations", len(f.Accommodations)).
		Msg("Starting resort API stub")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Stub server failed")
	}
}
