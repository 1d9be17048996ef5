// Package app runs the terminal game loop.
package app

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/typecity/internal/game"
	"github.com/samdwyer/typecity/internal/telemetry"
	"github.com/samdwyer/typecity/internal/ui"
)

// frameDelay is the pause between loop iterations.
const frameDelay = 10 * time.Millisecond

// App drives a game controller from a terminal screen.
type App struct {
	screen    *ui.Screen
	renderer  *ui.Renderer
	game      *game.Controller
	sessionID string
	logger    *log.Logger
}

// Option customizes an App.
type Option func(*App)

// WithLogger sets the logger for recovered render failures.
func WithLogger(logger *log.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// New creates an app. The caller owns the screen and closes it.
func New(screen *ui.Screen, renderer *ui.Renderer, ctrl *game.Controller, sessionID string, opts ...Option) *App {
	a := &App{
		screen:    screen,
		renderer:  renderer,
		game:      ctrl,
		sessionID: sessionID,
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes the main loop until the player exits, Ctrl-C is pressed or
// ctx is cancelled. Each iteration handles at most one pending event, then
// ticks timers and redraws, so the screen stays live without input.
func (a *App) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("app")

	_, initSpan := tracer.Start(ctx, "game.init")
	initSpan.SetAttributes(
		attribute.String("session.id", a.sessionID),
		attribute.Int("keyboard.keys", len(a.game.Keyboard().Keys())),
		attribute.Int("keyboard.unlocked", a.game.Keyboard().UnlockedCount()),
		attribute.Int("catalog.buildings", a.game.Catalog().Count()),
		attribute.Int("days_to_survive", a.game.Config().DaysToSurvive),
	)
	initSpan.End()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if a.screen.HasPendingEvent() {
			if quit := a.handleEvent(ctx, a.screen.PollEvent()); quit {
				return nil
			}
		}

		a.game.Tick()
		a.render()
		if a.game.ShouldExit() {
			return nil
		}
		time.Sleep(frameDelay)
	}
}

// render draws one frame. A panic while drawing loses the frame, not the game.
func (a *App) render() {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Printf("render failed in %s: %v", a.game.Mode(), r)
		}
	}()
	a.renderer.Render(a.game)
}

// handleEvent processes a single terminal event and reports whether the
// loop should stop immediately.
func (a *App) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return true
		}
		a.game.HandleEvent(ctx, translateKey(ev))
	case *tcell.EventResize:
		a.screen.Sync()
	case nil:
		// Screen finalized.
		return true
	}
	return false
}
