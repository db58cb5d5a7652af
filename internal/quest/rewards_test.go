package quest

import (
	"errors"
	"strings"
	"testing"

	"github.com/cjnemes/sympathetic-resonance/internal/faction"
	"github.com/cjnemes/sympathetic-resonance/internal/player"
)

func TestApplyQuestRewardsGuards(t *testing.T) {
	e := newTestEngine(t, simpleQuest("alpha"))
	p := player.New("tester")
	factions := faction.NewSystem()

	if _, err := e.ApplyQuestRewards("missing", p, factions); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown quest = %v, want ErrNotFound", err)
	}
	if _, err := e.ApplyQuestRewards("alpha", p, factions); !errors.Is(err, ErrNotFound) {
		t.Errorf("never-started quest = %v, want ErrNotFound", err)
	}

	startQuest(t, e, "alpha", p)
	if _, err := e.ApplyQuestRewards("alpha", p, factions); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("in-progress quest = %v, want ErrInvalidTransition", err)
	}
}

func TestApplyQuestRewardsMutations(t *testing.T) {
	def := simpleQuest("breakthrough")
	def.Rewards = Rewards{
		Experience: 150,
		Attributes: AttributeBonuses{MentalAcuity: 2, ResonanceSensitivity: 1},
		TheoryBonuses: map[string]float64{
			"harmonic_fundamentals": 0.1,  // started, plenty of headroom
			"crystal_structures":    0.15, // started, will clamp at 1.0
			"bio_resonance":         0.2,  // never started, skipped
		},
		FactionChanges: map[faction.ID]int{
			faction.MagistersCouncil:   10,
			faction.UndergroundNetwork: -5,
		},
		Items:        []string{"resonance_meter"},
		Capabilities: []string{"advanced_attunement"},
	}
	e := newTestEngine(t, def)
	p := player.New("tester")
	p.Theories["harmonic_fundamentals"] = 0.5
	p.Theories["crystal_structures"] = 0.95
	factions := faction.NewSystem()

	startQuest(t, e, "breakthrough", p)
	completeQuest(t, e, "breakthrough")

	msg, err := e.ApplyQuestRewards("breakthrough", p, factions)
	if err != nil {
		t.Fatalf("ApplyQuestRewards failed: %v", err)
	}

	if p.Attributes.MentalAcuity != 27 {
		t.Errorf("mental acuity = %d, want 27", p.Attributes.MentalAcuity)
	}
	if p.Attributes.ResonanceSensitivity != 21 {
		t.Errorf("resonance sensitivity = %d, want 21", p.Attributes.ResonanceSensitivity)
	}

	if got := p.Theories["harmonic_fundamentals"]; got != 0.6 {
		t.Errorf("harmonic_fundamentals = %v, want 0.6", got)
	}
	// Understanding caps at full mastery.
	if got := p.Theories["crystal_structures"]; got != 1.0 {
		t.Errorf("crystal_structures = %v, want clamped to 1.0", got)
	}
	// An unstarted theory gains nothing from a completion bonus.
	if _, started := p.Theories["bio_resonance"]; started {
		t.Error("bio_resonance should remain unstarted")
	}

	if got := factions.Reputation(faction.MagistersCouncil); got != 10 {
		t.Errorf("council reputation = %d, want 10", got)
	}
	if got := factions.Reputation(faction.UndergroundNetwork); got != -5 {
		t.Errorf("network reputation = %d, want -5", got)
	}
	changes := factions.RecentChanges(1)
	if len(changes) != 1 || !strings.Contains(changes[0].Reason, "completed quest breakthrough") {
		t.Errorf("reputation history should record the quest, got %+v", changes)
	}

	for _, want := range []string{
		"Quest Completed: Quest breakthrough",
		"* 150 experience points",
		"* +2 Mental Acuity",
		"* New capability unlocked: advanced_attunement",
		"* Items received: resonance_meter",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("summary missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "bio_resonance") {
		t.Errorf("summary should not mention the skipped theory:\n%s", msg)
	}
}

func TestApplyQuestRewardsUnlocksQuestLines(t *testing.T) {
	def := simpleQuest("gateway")
	def.Rewards = Rewards{UnlockedQuests: []string{"advanced_studies", "tutorial"}}
	e := newTestEngine(t, def)
	p := player.New("tester")
	factions := faction.NewSystem()

	startQuest(t, e, "gateway", p)
	completeQuest(t, e, "gateway")

	msg, err := e.ApplyQuestRewards("gateway", p, factions)
	if err != nil {
		t.Fatalf("ApplyQuestRewards failed: %v", err)
	}

	if !e.Global().QuestLineUnlocked("advanced_studies") {
		t.Error("advanced_studies should be unlocked")
	}
	if !strings.Contains(msg, "* New quest available: advanced_studies") {
		t.Errorf("summary should announce the new line:\n%s", msg)
	}
	// The tutorial line was already unlocked, so no duplicate announcement.
	if strings.Contains(msg, "New quest available: tutorial") {
		t.Errorf("already-unlocked line should not be announced:\n%s", msg)
	}
}
