package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"
	"unicode"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/typecity/internal/combat"
	"github.com/samdwyer/typecity/internal/entity"
	"github.com/samdwyer/typecity/internal/gamedata"
	"github.com/samdwyer/typecity/internal/telemetry"
	"github.com/samdwyer/typecity/internal/typing"
	"github.com/samdwyer/typecity/internal/world"
)

// maxMessages is how many messages are shown at once.
const maxMessages = 3

// Controller owns all game state and applies input events to it.
// It is driven by a single loop and is not safe for concurrent use.
type Controller struct {
	cfg    Config
	clock  Clock
	rng    *rand.Rand
	logger *log.Logger

	ledger   *entity.Ledger
	catalog  *gamedata.BuildingRegistry
	prompts  *gamedata.PromptDeck
	keyboard *world.Keyboard
	cycle    *world.Cycle

	mode Mode
	won  bool
	exit bool

	currentKey *world.Key
	input      typing.Buffer     // Intro phrase or building name being typed
	challenge  *typing.Challenge // Active typing challenge, nil outside ModeTyping
	wpm        float64
	accuracy   float64

	threat       int
	messages     *MessageQueue
	battleReport []string
	escapeAt     time.Time

	pressedKey rune // Highlighted key, 0 when none
	pressedAt  time.Time
	debugLine  string
}

// Option customizes a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock.
func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithRand replaces the random source used for prompt order.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithLogger sets the debug logger. Without one, logs are discarded.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// New creates a controller for a fresh game using the given building catalog.
func New(cfg Config, catalog *gamedata.BuildingRegistry, opts ...Option) (*Controller, error) {
	if catalog == nil {
		return nil, errors.New("no building catalog")
	}

	c := &Controller{
		cfg:      cfg,
		clock:    systemClock{},
		ledger:   entity.NewLedger(),
		catalog:  catalog,
		cycle:    world.NewCycle(),
		mode:     ModeIntro,
		messages: NewMessageQueue(maxMessages),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		c.rng = rand.New(rand.NewSource(seed))
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard, "", 0)
	}
	c.prompts = gamedata.NewPromptDeck(c.rng)

	for _, def := range catalog.All() {
		if _, err := c.ledger.FindByName(def.Output); err != nil {
			return nil, fmt.Errorf("building %s output: %w", def.ID, err)
		}
		if def.HasInput() {
			if _, err := c.ledger.FindByName(def.Input); err != nil {
				return nil, fmt.Errorf("building %s input: %w", def.ID, err)
			}
		}
	}

	keyboard, err := world.NewKeyboard(cfg.Layout, cfg.CenterKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to build keyboard: %w", err)
	}
	for ch, id := range cfg.StarterBuildings {
		def := catalog.GetByID(id)
		if def == nil {
			return nil, fmt.Errorf("starter building %q not in catalog", id)
		}
		if err := keyboard.AssignStarter(ch, def); err != nil {
			return nil, err
		}
	}
	c.keyboard = keyboard
	c.threat = c.threatFor(c.cycle.Day)

	return c, nil
}

// HandleEvent applies one input event. It never blocks.
func (c *Controller) HandleEvent(ctx context.Context, ev Event) {
	if ev.Kind == EventNone {
		return
	}
	now := c.clock.Now()
	c.logf("event %s in %s", ev, c.mode)

	switch ev.Kind {
	case EventRune:
		if c.mode != ModeGameOver {
			c.pressedKey = unicode.ToLower(ev.Rune)
			c.pressedAt = now
		}
		c.handleRune(ctx, ev.Rune, now)
		c.evaluate(ctx, now)
	case EventBackspace:
		c.handleBackspace()
		c.evaluate(ctx, now)
	case EventAdvance:
		c.advancePhase(ctx, now)
	case EventEscape:
		c.handleEscape(now)
	}
}

// Tick expires timed state: the pressed-key highlight and stale messages.
// Messages never expire once the game is over.
func (c *Controller) Tick() {
	now := c.clock.Now()
	if c.pressedKey != 0 && now.Sub(c.pressedAt) > c.cfg.KeyHighlight {
		c.pressedKey = 0
	}
	if c.mode != ModeGameOver && c.messages.Expired(now, c.cfg.MessageTimeout) {
		c.messages.Clear()
	}
}

// handleRune routes a typed character according to the current mode.
func (c *Controller) handleRune(ctx context.Context, r rune, now time.Time) {
	switch c.mode {
	case ModeIntro:
		if c.input.Len() < len([]rune(c.cfg.IntroPhrase)) {
			c.input.Append(r)
		}
	case ModeIdle:
		c.interactKey(ctx, r, now)
	case ModeTyping:
		c.challenge.Type(r)
	case ModeBuildingSelect:
		c.input.Append(r)
	case ModeNightReport:
		c.addMessage("The city sleeps at night...", SeverityNight, now)
	case ModeGameOver:
	}
}

// interactKey unlocks, activates or starts building on the pressed key.
func (c *Controller) interactKey(ctx context.Context, r rune, now time.Time) {
	if c.cycle.IsNight() {
		c.addMessage("The city sleeps at night...", SeverityNight, now)
		return
	}

	key := c.keyboard.GetByChar(r)
	if key == nil {
		c.logf("no key for %q", r)
		return
	}

	switch {
	case key.Locked:
		c.unlockKey(ctx, key, now)
	case key.HasBuilding() && !key.Active:
		c.addMessage(fmt.Sprintf("%s on '%c' already worked this phase.",
			key.Building.Name, unicode.ToUpper(key.Char)), SeverityWarning, now)
	case key.HasBuilding():
		c.startChallenge(key, now)
	default:
		c.currentKey = key
		c.input.Clear()
		c.mode = ModeBuildingSelect
	}
}

// unlockKey spends knowledge on a locked key.
func (c *Controller) unlockKey(ctx context.Context, key *world.Key, now time.Time) {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "key.unlock")
	defer span.End()

	knowledge := c.ledger.Knowledge()
	ok := key.Unlock(knowledge)
	span.SetAttributes(
		attribute.String("key", string(key.Char)),
		attribute.Int("cost", key.UnlockCost),
		attribute.Bool("unlocked", ok),
	)

	if ok {
		c.addMessage(fmt.Sprintf("Key '%c' unlocked!", unicode.ToUpper(key.Char)), SeveritySuccess, now)
		return
	}
	c.addMessage(fmt.Sprintf("You need %d%s to unlock '%c'!",
		key.UnlockCost, knowledge.Symbol, unicode.ToUpper(key.Char)), SeverityError, now)
}

// startChallenge enters typing mode for the key's building if its input is available.
func (c *Controller) startChallenge(key *world.Key, now time.Time) {
	def := key.Building
	if def.HasInput() {
		input, err := c.ledger.FindByName(def.Input)
		if err != nil {
			c.logf("building %s: %v", def.ID, err)
			return
		}
		if !input.Has(def.InputAmount) {
			c.addMessage(fmt.Sprintf("You need %d%s to activate %s!",
				def.InputAmount, input.Symbol, def.Name), SeverityError, now)
			return
		}
	}

	c.currentKey = key
	c.input.Clear()
	c.challenge = typing.NewChallenge(c.prompts.Next(def), now)
	c.wpm = 0
	c.accuracy = 1
	c.mode = ModeTyping
}

// handleBackspace removes the last typed character in text modes.
func (c *Controller) handleBackspace() {
	switch c.mode {
	case ModeTyping:
		c.challenge.Backspace()
	case ModeIntro, ModeBuildingSelect:
		c.input.Backspace()
	case ModeIdle, ModeNightReport, ModeGameOver:
	}
}

// handleEscape exits on a double press outside text entry, otherwise cancels.
func (c *Controller) handleEscape(now time.Time) {
	switch c.mode {
	case ModeTyping, ModeBuildingSelect:
		c.reset(true)
	case ModeIntro, ModeIdle, ModeNightReport, ModeGameOver:
		if !c.escapeAt.IsZero() && now.Sub(c.escapeAt) <= c.cfg.EscapeWindow {
			c.exit = true
			return
		}
		c.escapeAt = now
		c.addMessage("To exit press [Esc] again!", SeverityWarning, now)
	}
}

// evaluate checks whether the typed input completes the current mode.
func (c *Controller) evaluate(ctx context.Context, now time.Time) {
	switch c.mode {
	case ModeIntro:
		if c.input.String() == c.cfg.IntroPhrase {
			c.reset(true)
		}
	case ModeBuildingSelect:
		c.checkBuildingName(ctx, now)
	case ModeTyping:
		c.wpm = c.challenge.WPM(now)
		c.accuracy = c.challenge.Accuracy()
		if c.challenge.Complete() {
			c.completeChallenge(ctx, now)
		}
	case ModeIdle, ModeNightReport, ModeGameOver:
	}
}

// checkBuildingName constructs the building once its full name is typed.
func (c *Controller) checkBuildingName(ctx context.Context, now time.Time) {
	def := c.catalog.GetByName(c.input.String())
	if def == nil {
		return
	}

	money := c.ledger.Money()
	if !money.Has(def.Cost) {
		c.addMessage(fmt.Sprintf("You need %d%s to build %s!", def.Cost, money.Symbol, def.Name), SeverityError, now)
		return
	}

	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "building.construct")
	span.SetAttributes(
		attribute.String("building", def.ID),
		attribute.String("key", string(c.currentKey.Char)),
		attribute.Int("cost", def.Cost),
	)
	span.End()

	c.currentKey.Building = def
	money.Subtract(def.Cost)
	c.addMessage(fmt.Sprintf("%s built on key '%c'!", def.Name, unicode.ToUpper(c.currentKey.Char)), SeveritySuccess, now)
	c.reset(false)
}

// completeChallenge pays out a finished typing challenge.
func (c *Controller) completeChallenge(ctx context.Context, now time.Time) {
	key := c.currentKey
	def := key.Building

	output, err := c.ledger.FindByName(def.Output)
	if err != nil {
		c.logf("building %s: %v", def.ID, err)
		c.reset(false)
		return
	}

	gained := c.challenge.Reward(def.OutputAmount)
	output.Add(gained)
	key.Active = false
	if def.HasInput() {
		if err := c.ledger.Subtract(def.Input, def.InputAmount); err != nil {
			c.logf("building %s: %v", def.ID, err)
		}
	}

	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "challenge.complete")
	span.SetAttributes(
		attribute.String("building", def.ID),
		attribute.Int("prompt_length", c.challenge.Length()),
		attribute.Int("mistakes", c.challenge.Mistakes),
		attribute.Float64("wpm", c.wpm),
		attribute.Float64("accuracy", c.accuracy),
		attribute.Int("reward", gained),
	)
	span.End()

	accuracySeverity := SeveritySuccess
	if c.accuracy < 0.5 {
		accuracySeverity = SeverityError
	}
	c.addMessage(fmt.Sprintf("You gained %d%s!", gained, output.Symbol), SeveritySuccess, now)
	c.addMessage(fmt.Sprintf("Your WPM was: %.2f!", c.wpm), SeveritySuccess, now)
	c.addMessage(fmt.Sprintf("Your accuracy was: %.2f%%.", c.accuracy*100), accuracySeverity, now)
	c.reset(false)
}

// advancePhase moves the day forward. Only allowed while idle or after a raid.
func (c *Controller) advancePhase(ctx context.Context, now time.Time) {
	if c.mode != ModeIdle && c.mode != ModeNightReport {
		return
	}

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "phase.advance")
	defer span.End()

	phase := c.cycle.Advance()
	c.keyboard.ResetActivity()
	c.threat = c.threatFor(c.cycle.Day)

	span.SetAttributes(
		attribute.String("phase", phase.String()),
		attribute.Int("day", c.cycle.Day),
		attribute.Int("threat", c.threat),
	)

	switch phase {
	case world.PhaseNight:
		c.resolveNight(ctx, now)
	case world.PhaseMorning:
		c.battleReport = nil
		c.mode = ModeIdle
	}
}

// resolveNight fights the raid. Defeat ends the game immediately.
func (c *Controller) resolveNight(ctx context.Context, now time.Time) {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "raid.resolve")
	defer span.End()

	report := combat.ResolveRaid(c.threat, c.ledger)
	c.battleReport = report.Lines

	span.SetAttributes(
		attribute.String("outcome", report.Outcome.String()),
		attribute.Int("threat", report.Threat),
		attribute.Int("military", report.Military),
		attribute.Int("day", c.cycle.Day),
	)

	if !report.Victory() {
		c.gameOver(false, now)
		return
	}
	c.mode = ModeNightReport
	if c.cycle.Day >= c.cfg.DaysToSurvive {
		c.gameOver(true, now)
	}
}

// gameOver ends the game and leaves the final messages on screen.
func (c *Controller) gameOver(win bool, now time.Time) {
	c.reset(true)
	c.mode = ModeGameOver
	c.won = win
	if win {
		c.addMessage("You have beaten the game!", SeveritySuccess, now)
	} else {
		c.addMessage("You have lost!", SeverityError, now)
	}
	c.addMessage(fmt.Sprintf("Your total money was %d!", c.ledger.Money().Amount), SeveritySuccess, now)
	c.addMessage("Press [Esc] to exit the game.", SeverityInfo, now)
}

// reset returns to idle, dropping the current interaction.
func (c *Controller) reset(clearMessages bool) {
	if clearMessages {
		c.messages.Clear()
	}
	c.mode = ModeIdle
	c.currentKey = nil
	c.input.Clear()
	c.challenge = nil
}

func (c *Controller) addMessage(text string, severity Severity, now time.Time) {
	c.messages.Add(text, severity, now)
}

func (c *Controller) threatFor(day int) int {
	return combat.ThreatLevel(day, c.cfg.ThreatBase, c.cfg.ThreatGrowth)
}

func (c *Controller) logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	c.logger.Print(line)
	if c.cfg.Debug {
		c.debugLine = line
	}
}

// =============================================================================
// Read-only accessors for the renderer
// =============================================================================

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// Won returns true if the game ended in victory.
func (c *Controller) Won() bool { return c.won }

// ShouldExit returns true once the player confirmed exiting.
func (c *Controller) ShouldExit() bool { return c.exit }

// Ledger returns the resource pools.
func (c *Controller) Ledger() *entity.Ledger { return c.ledger }

// Keyboard returns the key grid.
func (c *Controller) Keyboard() *world.Keyboard { return c.keyboard }

// Cycle returns the day cycle.
func (c *Controller) Cycle() *world.Cycle { return c.cycle }

// Catalog returns the building catalog.
func (c *Controller) Catalog() *gamedata.BuildingRegistry { return c.catalog }

// Config returns the game configuration.
func (c *Controller) Config() Config { return c.cfg }

// Threat returns the raid strength for the current day.
func (c *Controller) Threat() int { return c.threat }

// Messages returns the visible messages, oldest first.
func (c *Controller) Messages() []Message { return c.messages.Messages() }

// BattleReport returns the last raid's narrative, or nil outside the night.
func (c *Controller) BattleReport() []string { return c.battleReport }

// Challenge returns the active typing challenge, or nil.
func (c *Controller) Challenge() *typing.Challenge { return c.challenge }

// Input returns the intro phrase or building name typed so far.
func (c *Controller) Input() string { return c.input.String() }

// CurrentKey returns the key being interacted with, or nil.
func (c *Controller) CurrentKey() *world.Key { return c.currentKey }

// PressedKey returns the highlighted key character, or 0.
func (c *Controller) PressedKey() rune { return c.pressedKey }

// WPM returns the live words-per-minute of the current or last challenge.
func (c *Controller) WPM() float64 { return c.wpm }

// Accuracy returns the live accuracy ratio of the current or last challenge.
func (c *Controller) Accuracy() float64 { return c.accuracy }

// DebugLine returns the last logged line when debug is on.
func (c *Controller) DebugLine() string { return c.debugLine }
