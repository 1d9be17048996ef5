package game

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/samdwyer/typecity/internal/entity"
	"github.com/samdwyer/typecity/internal/gamedata"
	"github.com/samdwyer/typecity/internal/world"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func testCatalog(t *testing.T) *gamedata.BuildingRegistry {
	t.Helper()
	defs := []gamedata.BuildingDef{
		{ID: "market", Name: "Market", Symbol: "M", Cost: 100, Output: "money", OutputAmount: 20, Texts: []string{"count coins"}},
		{ID: "hut", Name: "Hut", Symbol: "H", Cost: 10, Output: "food", OutputAmount: 5, Texts: []string{"gather hay"}},
		{ID: "tent", Name: "Tent", Symbol: "T", Cost: 5, Output: "military", OutputAmount: 2, Input: "food", InputAmount: 1, Texts: []string{"hold"}},
		{ID: "school", Name: "School", Symbol: "S", Cost: 75, Output: "knowledge", OutputAmount: 10, Texts: []string{"read"}},
	}
	registry, err := gamedata.NewBuildingRegistry(defs, entity.NewLedger().Names())
	if err != nil {
		t.Fatalf("NewBuildingRegistry() error: %v", err)
	}
	return registry
}

func newTestController(t *testing.T, cfg Config) (*Controller, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	c, err := New(cfg, testCatalog(t), WithClock(clock), WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c, clock
}

// startedController returns a controller past the intro screen.
func startedController(t *testing.T) (*Controller, *fakeClock) {
	t.Helper()
	c, clock := newTestController(t, DefaultConfig())
	typeText(c, c.Config().IntroPhrase)
	if c.Mode() != ModeIdle {
		t.Fatalf("Mode() after intro = %v, want idle", c.Mode())
	}
	return c, clock
}

func typeText(c *Controller, s string) {
	for _, r := range s {
		c.HandleEvent(context.Background(), RuneEvent(r))
	}
}

func send(c *Controller, kind EventKind) {
	c.HandleEvent(context.Background(), Event{Kind: kind})
}

func lastMessage(t *testing.T, c *Controller) Message {
	t.Helper()
	msgs := c.Messages()
	if len(msgs) == 0 {
		t.Fatal("no messages queued")
	}
	return msgs[len(msgs)-1]
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected string
	}{
		{ModeIntro, "intro"},
		{ModeIdle, "idle"},
		{ModeTyping, "typing"},
		{ModeBuildingSelect, "building_select"},
		{ModeNightReport, "night_report"},
		{ModeGameOver, "game_over"},
		{Mode(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.expected {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.expected)
		}
	}
}

func TestNewController(t *testing.T) {
	c, _ := newTestController(t, DefaultConfig())

	if c.Mode() != ModeIntro {
		t.Errorf("Mode() = %v, want intro", c.Mode())
	}
	if c.Threat() != 5 {
		t.Errorf("Threat() = %d, want 5", c.Threat())
	}
	kb := c.Keyboard()
	if b := kb.GetByChar('f').Building; b == nil || b.ID != "hut" {
		t.Errorf("key f building = %v, want hut", b)
	}
	if b := kb.GetByChar('j').Building; b == nil || b.ID != "market" {
		t.Errorf("key j building = %v, want market", b)
	}
	g := kb.GetByChar('g')
	if g.Locked || g.HasBuilding() {
		t.Errorf("key g should start unlocked and empty, got locked=%v building=%v", g.Locked, g.Building)
	}
}

func TestNewRejectsBadStarter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StarterBuildings = map[rune]string{'f': "castle"}
	if _, err := New(cfg, testCatalog(t)); err == nil {
		t.Error("Expected error for starter building missing from catalog")
	}

	cfg = DefaultConfig()
	cfg.StarterBuildings = map[rune]string{'a': "hut"}
	if _, err := New(cfg, testCatalog(t)); err == nil {
		t.Error("Expected error for starter building on a locked key")
	}
}

func TestNewRejectsUnknownResource(t *testing.T) {
	defs := []gamedata.BuildingDef{
		{ID: "quarry", Name: "Quarry", Output: "stone", OutputAmount: 3, Texts: []string{"cut"}},
	}
	registry, err := gamedata.NewBuildingRegistry(defs, []string{"stone"})
	if err != nil {
		t.Fatalf("NewBuildingRegistry() error: %v", err)
	}
	cfg := DefaultConfig()
	cfg.StarterBuildings = nil
	if _, err := New(cfg, registry); err == nil {
		t.Error("Expected error for catalog referencing a resource the ledger lacks")
	}
	if _, err := New(cfg, nil); err == nil {
		t.Error("Expected error for nil catalog")
	}
}

func TestIntroRequiresExactPhrase(t *testing.T) {
	c, _ := newTestController(t, DefaultConfig())
	phrase := c.Config().IntroPhrase

	typeText(c, phrase[:len(phrase)-1]+"X")
	if c.Mode() != ModeIntro {
		t.Fatalf("Mode() = %v after a wrong phrase, want intro", c.Mode())
	}

	typeText(c, "zz") // capped at the phrase length
	if got := c.Input(); len(got) != len(phrase) {
		t.Errorf("Input() length = %d, want %d", len(got), len(phrase))
	}

	send(c, EventBackspace)
	typeText(c, phrase[len(phrase)-1:])
	if c.Mode() != ModeIdle {
		t.Errorf("Mode() = %v after the phrase, want idle", c.Mode())
	}
	if c.Input() != "" {
		t.Errorf("Input() = %q after leaving intro, want empty", c.Input())
	}
}

// Scenario A: unlocking a 25-knowledge key on a fresh game fails cleanly.
func TestUnlockInsufficientKnowledge(t *testing.T) {
	c, _ := startedController(t)
	before := c.Ledger().String()

	typeText(c, "d")

	d := c.Keyboard().GetByChar('d')
	if !d.Locked {
		t.Error("key d should stay locked")
	}
	if got := c.Ledger().String(); got != before {
		t.Errorf("ledger changed: %s -> %s", before, got)
	}
	if c.Mode() != ModeIdle {
		t.Errorf("Mode() = %v, want idle", c.Mode())
	}
	msg := lastMessage(t, c)
	if msg.Severity != SeverityError || msg.Text != "You need 25🧠 to unlock 'D'!" {
		t.Errorf("last message = %+v, want unlock error", msg)
	}
}

func TestUnlockSucceedsOnce(t *testing.T) {
	c, _ := startedController(t)
	c.Ledger().Knowledge().Add(30)

	typeText(c, "d")

	if c.Keyboard().GetByChar('d').Locked {
		t.Fatal("key d should be unlocked")
	}
	if got := c.Ledger().Knowledge().Amount; got != 5 {
		t.Errorf("Knowledge = %d, want 5", got)
	}
	if msg := lastMessage(t, c); msg.Text != "Key 'D' unlocked!" || msg.Severity != SeveritySuccess {
		t.Errorf("last message = %+v, want unlock success", msg)
	}

	// Pressing it again opens the build menu instead of charging twice.
	typeText(c, "d")
	if c.Mode() != ModeBuildingSelect {
		t.Errorf("Mode() = %v, want building_select", c.Mode())
	}
	if got := c.Ledger().Knowledge().Amount; got != 5 {
		t.Errorf("Knowledge after second press = %d, want 5", got)
	}
}

// Scenario B: building a Hut on an empty key.
func TestBuildHut(t *testing.T) {
	c, _ := startedController(t)

	typeText(c, "g")
	if c.Mode() != ModeBuildingSelect {
		t.Fatalf("Mode() = %v, want building_select", c.Mode())
	}
	if c.CurrentKey() != c.Keyboard().GetByChar('g') {
		t.Error("CurrentKey() should be g")
	}

	typeText(c, "HuT")

	if got := c.Ledger().Money().Amount; got != 40 {
		t.Errorf("Money = %d, want 40", got)
	}
	g := c.Keyboard().GetByChar('g')
	if g.Building == nil || g.Building.Name != "Hut" {
		t.Errorf("key g building = %v, want Hut", g.Building)
	}
	if c.Mode() != ModeIdle {
		t.Errorf("Mode() = %v, want idle", c.Mode())
	}
	if msg := lastMessage(t, c); msg.Text != "Hut built on key 'G'!" || msg.Severity != SeveritySuccess {
		t.Errorf("last message = %+v, want build success", msg)
	}
}

func TestBuildInsufficientMoney(t *testing.T) {
	c, _ := startedController(t)

	typeText(c, "gmarket")

	if c.Mode() != ModeBuildingSelect {
		t.Errorf("Mode() = %v, want building_select", c.Mode())
	}
	if c.Keyboard().GetByChar('g').HasBuilding() {
		t.Error("market should not be built without money")
	}
	if got := c.Ledger().Money().Amount; got != 50 {
		t.Errorf("Money = %d, want 50", got)
	}
	if msg := lastMessage(t, c); msg.Severity != SeverityError || !strings.Contains(msg.Text, "100") {
		t.Errorf("last message = %+v, want build cost error", msg)
	}

	// Backspace and type another name.
	for i := 0; i < len("market"); i++ {
		send(c, EventBackspace)
	}
	typeText(c, "tent")
	if b := c.Keyboard().GetByChar('g').Building; b == nil || b.ID != "tent" {
		t.Errorf("key g building = %v, want tent", b)
	}
	if got := c.Ledger().Money().Amount; got != 45 {
		t.Errorf("Money = %d, want 45", got)
	}
}

// Scenario C: a clean 10-character prompt typed in 5 seconds.
func TestChallengeCompletes(t *testing.T) {
	c, clock := startedController(t)

	typeText(c, "f")
	if c.Mode() != ModeTyping {
		t.Fatalf("Mode() = %v, want typing", c.Mode())
	}
	ch := c.Challenge()
	if ch == nil || ch.Target != "gather hay" {
		t.Fatalf("Challenge() = %+v, want target \"gather hay\"", ch)
	}

	clock.Advance(5 * time.Second)
	typeText(c, "gather hay")

	if got := c.Ledger().Food().Amount; got != 5 {
		t.Errorf("Food = %d, want 5", got)
	}
	if got := c.WPM(); got != 24.0 {
		t.Errorf("WPM() = %v, want 24.0", got)
	}
	if got := c.Accuracy(); got != 1.0 {
		t.Errorf("Accuracy() = %v, want 1.0", got)
	}
	if c.Keyboard().GetByChar('f').Active {
		t.Error("key f should be inactive after harvest")
	}
	if c.Mode() != ModeIdle || c.Challenge() != nil {
		t.Errorf("Mode() = %v, challenge = %v, want idle with no challenge", c.Mode(), c.Challenge())
	}

	want := []string{"You gained 5🍖!", "Your WPM was: 24.00!", "Your accuracy was: 100.00%."}
	msgs := c.Messages()
	if len(msgs) != len(want) {
		t.Fatalf("Messages() = %+v, want %d messages", msgs, len(want))
	}
	for i := range want {
		if msgs[i].Text != want[i] {
			t.Errorf("Messages()[%d] = %q, want %q", i, msgs[i].Text, want[i])
		}
	}
}

func TestChallengeMistakesReduceReward(t *testing.T) {
	c, clock := startedController(t)

	typeText(c, "f")
	clock.Advance(2 * time.Second)
	typeText(c, "gx")
	send(c, EventBackspace)
	typeText(c, "y")
	send(c, EventBackspace)
	typeText(c, "ather hay")

	if c.Mode() != ModeIdle {
		t.Fatalf("Mode() = %v, want idle after completing", c.Mode())
	}
	// 2 mistakes over 10 characters: 80% of 5.
	if got := c.Ledger().Food().Amount; got != 4 {
		t.Errorf("Food = %d, want 4", got)
	}
	if got := c.Accuracy(); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("Accuracy() = %v, want 0.8", got)
	}
}

func TestChallengeWaitsForCorrection(t *testing.T) {
	c, _ := startedController(t)

	typeText(c, "f")
	typeText(c, "gather hax")
	if c.Mode() != ModeTyping {
		t.Fatalf("Mode() = %v, want typing until the prompt matches", c.Mode())
	}
	send(c, EventBackspace)
	typeText(c, "y")
	if c.Mode() != ModeIdle {
		t.Errorf("Mode() = %v, want idle after the fix", c.Mode())
	}
}

func TestHarvestedBuildingWarns(t *testing.T) {
	c, _ := startedController(t)
	typeText(c, "fgather hay")

	typeText(c, "f")

	if c.Mode() != ModeIdle {
		t.Errorf("Mode() = %v, want idle", c.Mode())
	}
	if msg := lastMessage(t, c); msg.Severity != SeverityWarning {
		t.Errorf("last message = %+v, want warning", msg)
	}
}

func TestActivationNeedsInput(t *testing.T) {
	c, _ := startedController(t)
	typeText(c, "gtent")

	typeText(c, "g")
	if c.Mode() != ModeIdle {
		t.Fatalf("Mode() = %v, want idle without food", c.Mode())
	}
	if msg := lastMessage(t, c); msg.Text != "You need 1🍖 to activate Tent!" {
		t.Errorf("last message = %q, want activation error", msg.Text)
	}

	c.Ledger().Food().Add(3)
	typeText(c, "g")
	if c.Mode() != ModeTyping {
		t.Fatalf("Mode() = %v, want typing", c.Mode())
	}
	typeText(c, "hold")

	if got := c.Ledger().Military().Amount; got != 2 {
		t.Errorf("Military = %d, want 2", got)
	}
	if got := c.Ledger().Food().Amount; got != 2 {
		t.Errorf("Food = %d, want 2", got)
	}
}

func TestUnknownKeyIsNoop(t *testing.T) {
	c, _ := startedController(t)
	before := c.Ledger().String()

	typeText(c, "@ ")

	if c.Mode() != ModeIdle {
		t.Errorf("Mode() = %v, want idle", c.Mode())
	}
	if len(c.Messages()) != 0 {
		t.Errorf("Messages() = %+v, want none", c.Messages())
	}
	if c.Ledger().String() != before {
		t.Error("ledger changed on unknown key")
	}
}

func TestAdvanceOnlyFromIdle(t *testing.T) {
	c, _ := startedController(t)

	typeText(c, "g")
	send(c, EventAdvance)
	if c.Cycle().Phase != world.PhaseMorning {
		t.Errorf("Phase = %v, advance should be ignored while building", c.Cycle().Phase)
	}

	send(c, EventEscape)
	send(c, EventAdvance)
	if c.Cycle().Phase != world.PhaseAfternoon {
		t.Errorf("Phase = %v, want afternoon", c.Cycle().Phase)
	}
}

func TestAdvanceResetsActivity(t *testing.T) {
	c, _ := startedController(t)
	typeText(c, "fgather hay")

	send(c, EventAdvance)

	if !c.Keyboard().GetByChar('f').Active {
		t.Error("key f should recharge on phase advance")
	}
}

func TestNightVictory(t *testing.T) {
	c, _ := startedController(t)
	c.Ledger().Military().Add(5)

	for i := 0; i < 3; i++ {
		send(c, EventAdvance)
	}

	if c.Mode() != ModeNightReport {
		t.Fatalf("Mode() = %v, want night_report", c.Mode())
	}
	report := c.BattleReport()
	if len(report) != 4 || report[0] != "VICTORY!" || report[1] != "THREAT LEVEL: 5 | MILITARY: 5" {
		t.Errorf("BattleReport() = %q", report)
	}
	if got := c.Ledger().Knowledge().Amount; got != 5 {
		t.Errorf("Knowledge = %d, want 5", got)
	}

	typeText(c, "f")
	if c.Mode() != ModeNightReport {
		t.Errorf("Mode() = %v, key presses should be rejected at night", c.Mode())
	}
	if msg := lastMessage(t, c); msg.Text != "The city sleeps at night..." || msg.Severity != SeverityNight {
		t.Errorf("last message = %+v, want night notice", msg)
	}

	send(c, EventAdvance)
	if c.Mode() != ModeIdle || c.Cycle().Day != 2 {
		t.Errorf("after night: mode %v day %d, want idle day 2", c.Mode(), c.Cycle().Day)
	}
	if c.BattleReport() != nil {
		t.Error("BattleReport() should clear in the morning")
	}
	if c.Threat() != 12 {
		t.Errorf("Threat() = %d, want 12 on day 2", c.Threat())
	}
}

// Scenario D: no military at night ends the game without touching resources.
func TestNightDefeat(t *testing.T) {
	c, _ := startedController(t)
	c.Ledger().Food().Add(7)

	for i := 0; i < 3; i++ {
		send(c, EventAdvance)
	}

	if c.Mode() != ModeGameOver || c.Won() {
		t.Fatalf("Mode() = %v won=%v, want lost game over", c.Mode(), c.Won())
	}
	if c.Ledger().Money().Amount != 50 || c.Ledger().Food().Amount != 7 {
		t.Errorf("defeat changed the ledger: %s", c.Ledger())
	}
	if report := c.BattleReport(); len(report) == 0 || report[0] != "DEFEAT..." {
		t.Errorf("BattleReport() = %q, want defeat", report)
	}

	msgs := c.Messages()
	if len(msgs) != 3 || msgs[0].Text != "You have lost!" || msgs[1].Text != "Your total money was 50!" {
		t.Errorf("Messages() = %+v", msgs)
	}

	// Terminal: nothing but Escape does anything.
	send(c, EventAdvance)
	typeText(c, "g")
	if c.Mode() != ModeGameOver || c.Cycle().Phase != world.PhaseNight {
		t.Errorf("game over state changed: mode %v phase %v", c.Mode(), c.Cycle().Phase)
	}
}

func TestWinAfterSurvivingDays(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DaysToSurvive = 2
	c, _ := newTestController(t, cfg)
	typeText(c, cfg.IntroPhrase)
	c.Ledger().Military().Add(1000)

	for i := 0; i < 3; i++ {
		send(c, EventAdvance)
	}
	if c.Mode() != ModeNightReport {
		t.Fatalf("Mode() after night 1 = %v, want night_report", c.Mode())
	}
	for i := 0; i < 4; i++ {
		send(c, EventAdvance)
	}

	if c.Mode() != ModeGameOver || !c.Won() {
		t.Fatalf("Mode() = %v won=%v, want won game over", c.Mode(), c.Won())
	}
	if msg := c.Messages()[0]; msg.Text != "You have beaten the game!" {
		t.Errorf("first message = %q, want victory", msg.Text)
	}
}

func TestEscapeDoublePressExits(t *testing.T) {
	c, clock := startedController(t)

	send(c, EventEscape)
	if c.ShouldExit() {
		t.Fatal("first Escape should only warn")
	}
	if msg := lastMessage(t, c); msg.Text != "To exit press [Esc] again!" {
		t.Errorf("last message = %q, want exit warning", msg.Text)
	}

	clock.Advance(6 * time.Second)
	send(c, EventEscape)
	if c.ShouldExit() {
		t.Fatal("Escape outside the window should re-arm, not exit")
	}

	clock.Advance(5 * time.Second)
	send(c, EventEscape)
	if !c.ShouldExit() {
		t.Error("second Escape within the window should exit")
	}
}

func TestEscapeCancelsTyping(t *testing.T) {
	c, _ := startedController(t)
	typeText(c, "d") // queue an error message
	typeText(c, "fgat")

	send(c, EventEscape)

	if c.ShouldExit() {
		t.Error("Escape while typing should not exit")
	}
	if c.Mode() != ModeIdle || c.Challenge() != nil {
		t.Errorf("Mode() = %v, want idle with no challenge", c.Mode())
	}
	if len(c.Messages()) != 0 {
		t.Errorf("Messages() = %+v, want cleared", c.Messages())
	}
	if !c.Keyboard().GetByChar('f').Active {
		t.Error("cancelled challenge should not use up the building")
	}
}

func TestTickExpiresMessages(t *testing.T) {
	c, clock := startedController(t)
	typeText(c, "d")

	clock.Advance(3 * time.Second)
	c.Tick()
	if len(c.Messages()) != 1 {
		t.Fatalf("Messages() cleared at exactly the timeout")
	}

	clock.Advance(time.Millisecond)
	c.Tick()
	if len(c.Messages()) != 0 {
		t.Errorf("Messages() = %+v, want cleared after timeout", c.Messages())
	}
}

func TestTickKeepsGameOverMessages(t *testing.T) {
	c, clock := startedController(t)
	for i := 0; i < 3; i++ {
		send(c, EventAdvance)
	}

	clock.Advance(time.Hour)
	c.Tick()
	if len(c.Messages()) != 3 {
		t.Errorf("Messages() = %d entries, game over messages should persist", len(c.Messages()))
	}
}

func TestTickExpiresKeyHighlight(t *testing.T) {
	c, clock := startedController(t)

	typeText(c, "D")
	if c.PressedKey() != 'd' {
		t.Fatalf("PressedKey() = %q, want 'd'", c.PressedKey())
	}
	clock.Advance(50 * time.Millisecond)
	c.Tick()
	if c.PressedKey() != 'd' {
		t.Error("highlight expired early")
	}
	clock.Advance(60 * time.Millisecond)
	c.Tick()
	if c.PressedKey() != 0 {
		t.Errorf("PressedKey() = %q after highlight window, want 0", c.PressedKey())
	}
}

func TestDebugLine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Debug = true
	c, _ := newTestController(t, cfg)

	typeText(c, "d")
	if !strings.Contains(c.DebugLine(), "'d'") {
		t.Errorf("DebugLine() = %q, want the last event", c.DebugLine())
	}
}

func TestEventFromKeyCode(t *testing.T) {
	tests := []struct {
		code int
		want Event
	}{
		{-1, Event{}},
		{9, Event{Kind: EventAdvance}},
		{10, Event{Kind: EventAdvance}},
		{13, Event{Kind: EventAdvance}},
		{8, Event{Kind: EventBackspace}},
		{127, Event{Kind: EventBackspace}},
		{263, Event{Kind: EventBackspace}},
		{27, Event{Kind: EventEscape}},
		{'a', RuneEvent('a')},
		{' ', RuneEvent(' ')},
		{'~', RuneEvent('~')},
		{1, Event{}},
		{500, Event{}},
	}

	for _, tt := range tests {
		if got := EventFromKeyCode(tt.code); got != tt.want {
			t.Errorf("EventFromKeyCode(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
