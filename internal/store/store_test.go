package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/cjnemes/sympathetic-resonance/internal/faction"
	"github.com/cjnemes/sympathetic-resonance/internal/player"
	"github.com/cjnemes/sympathetic-resonance/internal/quest"
)

func openTestStore(t *testing.T) *SaveStore {
	t.Helper()
	s, err := Open(DialectSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSave() *SaveData {
	p := player.New("tester")
	p.Theories["harmonic_fundamentals"] = 0.45
	p.FactionStandings[faction.MagistersCouncil] = 12
	p.GrantCapability("basic_frequency_matching")

	global := quest.NewGlobalState()
	global.UnlockQuestLine("crystal_analysis")
	global.SetFlag("met_elara", "yes")

	factions := faction.NewSystem()
	factions.ModifyReputationWithReason(faction.NeutralScholars, 7, "test setup")

	return &SaveData{
		Player:     p,
		Progress:   map[string]*quest.Progress{},
		Global:     global,
		Reputation: factions,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Save("slot1", sampleSave())
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if id == "" {
		t.Fatal("Save returned an empty ID")
	}

	loaded, err := s.Load("slot1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Player.Name != "tester" {
		t.Errorf("player name = %q, want tester", loaded.Player.Name)
	}
	if got := loaded.Player.Theories["harmonic_fundamentals"]; got != 0.45 {
		t.Errorf("theory level = %v, want 0.45", got)
	}
	if got := loaded.Player.FactionStandings[faction.MagistersCouncil]; got != 12 {
		t.Errorf("standing = %d, want 12", got)
	}
	if !loaded.Player.HasCapability("basic_frequency_matching") {
		t.Error("capability lost in round trip")
	}
	if !loaded.Global.QuestLineUnlocked("crystal_analysis") {
		t.Error("unlocked quest line lost in round trip")
	}
	if v, ok := loaded.Global.Flag("met_elara"); !ok || v != "yes" {
		t.Error("global flag lost in round trip")
	}
	if got := loaded.Reputation.Reputation(faction.NeutralScholars); got != 7 {
		t.Errorf("reputation = %d, want 7", got)
	}
}

func TestSaveRoundTripsQuestProgress(t *testing.T) {
	s := openTestStore(t)

	catalog, err := quest.NewCatalog([]*quest.Definition{
		{
			ID:    "errand",
			Title: "An Errand",
			Objectives: []quest.Objective{
				{ID: "deliver", Description: "Deliver the package", Spec: quest.VisitLocation{LocationID: "market"}, Visible: true},
			},
		},
	})
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	engine := quest.NewEngine(catalog)
	p := player.New("tester")
	if _, err := engine.StartQuest("errand", p); err != nil {
		t.Fatalf("StartQuest failed: %v", err)
	}
	engine.HandleLocationVisit("market")

	progress, global := engine.Snapshot()
	data := &SaveData{Player: p, Progress: progress, Global: global, Reputation: faction.NewSystem()}
	if _, err := s.Save("slot1", data); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := s.Load("slot1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	restored := quest.NewEngine(catalog)
	restored.Restore(loaded.Progress, loaded.Global)
	prog, ok := restored.Progress("errand")
	if !ok {
		t.Fatal("restored engine missing quest progress")
	}
	if prog.Status != quest.StatusCompleted {
		t.Errorf("restored status = %s, want %s", prog.Status, quest.StatusCompleted)
	}
	if op := prog.Objectives["deliver"]; op == nil || !op.Completed {
		t.Error("restored objective should be completed")
	}
}

func TestLoadReturnsLatestSave(t *testing.T) {
	s := openTestStore(t)

	first := sampleSave()
	if _, err := s.Save("slot1", first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := sampleSave()
	second.Player.Name = "later"
	if _, err := s.Save("slot1", second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := s.Load("slot1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Player.Name != "later" {
		t.Errorf("player name = %q, want the most recent save", loaded.Player.Name)
	}
}

func TestLoadMissingSlot(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Load("empty_slot")
	if !errors.Is(err, ErrNoSave) {
		t.Errorf("Load(empty slot) = %v, want ErrNoSave", err)
	}
}

func TestSlots(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Save("alpha", sampleSave()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := s.Save("beta", sampleSave()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	slots, err := s.Slots()
	if err != nil {
		t.Fatalf("Slots failed: %v", err)
	}
	if len(slots) != 2 {
		t.Errorf("got %d slots, want 2: %v", len(slots), slots)
	}
}

func TestDialects(t *testing.T) {
	sqlite := NewDialect(DialectSQLite)
	if sqlite.DriverName() != "sqlite" || sqlite.Placeholder(3) != "?" {
		t.Error("sqlite dialect wrong")
	}
	if !sqlite.IsDuplicateKeyError(errors.New("UNIQUE constraint failed: saves.id")) {
		t.Error("sqlite duplicate detection wrong")
	}

	postgres := NewDialect(DialectPostgres)
	if postgres.DriverName() != "postgres" || postgres.Placeholder(3) != "$3" {
		t.Error("postgres dialect wrong")
	}
	if !postgres.IsDuplicateKeyError(errors.New(`pq: duplicate key value violates unique constraint "saves_pkey"`)) {
		t.Error("postgres duplicate detection wrong")
	}

	// Unknown types fall back to SQLite.
	if NewDialect("mystery").DriverName() != "sqlite" {
		t.Error("unknown dialect should default to sqlite")
	}
}
