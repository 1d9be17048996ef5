// Package main is the entry point for TypeCity.
package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/samdwyer/typecity/internal/app"
	"github.com/samdwyer/typecity/internal/entity"
	"github.com/samdwyer/typecity/internal/game"
	"github.com/samdwyer/typecity/internal/gamedata"
	"github.com/samdwyer/typecity/internal/telemetry"
	"github.com/samdwyer/typecity/internal/ui"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_TYPECITY_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	// Map our Honeycomb variables onto the OTEL_* ones the exporter reads
	if !telemetry.ConfigureHoneycomb(os.Getenv, os.Setenv) {
		log.Printf("Note: HONEYCOMB_TYPECITY_API_KEY not set, traces will not be accepted")
	}

	cfg := game.DefaultConfig()
	cfg.Debug = os.Getenv("TYPECITY_DEBUG") != ""

	logger, closeLog, err := openLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer closeLog()

	ctx := context.Background()
	sessionID := uuid.NewString()

	catalog, err := gamedata.LoadBuildingRegistry(entity.NewLedger().Names())
	if err != nil {
		log.Fatalf("Failed to load buildings: %v", err)
	}

	ctrl, err := game.New(cfg, catalog, game.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx, telemetry.Session{
		ID:            sessionID,
		DaysToSurvive: cfg.DaysToSurvive,
		Buildings:     catalog.Count(),
		Keys:          len(ctrl.Keyboard().Keys()),
	})
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	theme, err := ui.LoadTheme()
	if err != nil {
		log.Printf("Warning: theme not loaded, using default colors: %v", err)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}

	logger.Printf("session %s started", sessionID)
	runErr := app.New(screen, ui.NewRenderer(screen, theme), ctrl, sessionID, app.WithLogger(logger)).Run(ctx)
	screen.Close()
	if runErr != nil {
		log.Fatalf("Game error: %v", runErr)
	}
	logger.Printf("session %s ended, mode %s, money %d", sessionID, ctrl.Mode(), ctrl.Ledger().Money().Amount)
}

// openLogger returns the debug logger. Without debug, output is discarded
// since the terminal belongs to the game.
func openLogger(debug bool) (*log.Logger, func(), error) {
	if !debug {
		return log.New(io.Discard, "", 0), func() {}, nil
	}

	path := os.Getenv("TYPECITY_LOG_FILE")
	if path == "" {
		path = "typecity.log"
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return log.New(f, "typecity ", log.LstdFlags|log.Lmicroseconds), func() { f.Close() }, nil
}
