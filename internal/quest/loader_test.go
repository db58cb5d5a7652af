package quest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cjnemes/sympathetic-resonance/internal/faction"
)

func writeQuestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

const sampleQuestYAML = `
quests:
  crystal_survey:
    title: "Crystal Survey"
    description: "Survey the crystal deposits for the Council."
    category: research
    difficulty: intermediate
    requirements:
      theories:
        - theory: crystal_structures
          min_level: 0.4
      faction_minimums:
        - faction: magisters_council
          standing: 10
      faction_restrictions:
        - faction: underground_network
          standing: 30
      prerequisites: [resonance_foundation]
      min_mental_acuity: 20
      capabilities: [basic_attunement]
      locations: [crystal_caverns, survey_camp]
    objectives:
      - id: reach_caverns
        description: "Reach the crystal caverns"
        type: visit_location
        location: crystal_caverns
      - id: gather_samples
        description: "Gather crystal samples"
        type: collect_items
        items:
          - id: quartz_shard
            quantity: 3
          - id: resonant_dust
        optional: true
        reward:
          experience: 20
      - id: report_findings
        description: "Report to the survey master"
        type: talk_to_npc
        npc: survey_master
        topic: findings
        hidden: true
    rewards:
      experience: 120
      attributes:
        mental_acuity: 1
      theory_bonuses:
        crystal_structures: 0.1
      faction_changes:
        magisters_council: 8
      capabilities: [field_surveying]
      unlocked_quests: [deep_caverns]
    faction_effects:
      magisters_council: 8
    educational:
      primary_concepts: [crystal_lattices]
    branches:
      thorough:
        name: "Thorough Survey"
        description: "Map every chamber."
        requirements:
          min_resonance_sensitivity: 25
        objectives:
          - id: map_chambers
            description: "Map the deep chambers"
            type: research
            theory: crystal_structures
            points: 50
        faction_implications:
          neutral_scholars: 4
    npcs: [survey_master]
    locations: [crystal_caverns]
    estimated_minutes: 90
`

func TestLoadFileBuildsDefinitions(t *testing.T) {
	dir := t.TempDir()
	path := writeQuestFile(t, dir, "survey.yaml", sampleQuestYAML)

	catalog, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	def, ok := catalog.Get("crystal_survey")
	if !ok {
		t.Fatal("crystal_survey missing from catalog")
	}

	if def.Title != "Crystal Survey" || def.Category != CategoryResearch || def.Difficulty != DifficultyIntermediate {
		t.Errorf("header fields wrong: %+v", def)
	}

	req := def.Requirements
	if len(req.Theories) != 1 || req.Theories[0].TheoryID != "crystal_structures" || req.Theories[0].MinLevel != 0.4 {
		t.Errorf("theories = %+v", req.Theories)
	}
	if len(req.FactionMinimums) != 1 || req.FactionMinimums[0].Faction != faction.MagistersCouncil || req.FactionMinimums[0].Min != 10 {
		t.Errorf("faction minimums = %+v", req.FactionMinimums)
	}
	if len(req.FactionRestrictions) != 1 || req.FactionRestrictions[0].Max != 30 {
		t.Errorf("faction restrictions = %+v", req.FactionRestrictions)
	}
	if req.Attributes.MinMentalAcuity != 20 {
		t.Errorf("min mental acuity = %d, want 20", req.Attributes.MinMentalAcuity)
	}
	if len(req.Locations) != 2 {
		t.Errorf("locations = %v", req.Locations)
	}

	if len(def.Objectives) != 3 {
		t.Fatalf("got %d objectives, want 3", len(def.Objectives))
	}
	if spec, ok := def.Objectives[0].Spec.(VisitLocation); !ok || spec.LocationID != "crystal_caverns" {
		t.Errorf("objective 0 spec = %#v", def.Objectives[0].Spec)
	}
	collect, ok := def.Objectives[1].Spec.(CollectItems)
	if !ok {
		t.Fatalf("objective 1 spec = %#v", def.Objectives[1].Spec)
	}
	if len(collect.ItemIDs) != 2 || collect.Quantities[0] != 3 {
		t.Errorf("collect items = %+v", collect)
	}
	// An omitted quantity defaults to one.
	if collect.Quantities[1] != 1 {
		t.Errorf("default quantity = %d, want 1", collect.Quantities[1])
	}
	if !def.Objectives[1].Optional || def.Objectives[1].Reward.Experience != 20 {
		t.Errorf("objective 1 flags = %+v", def.Objectives[1])
	}
	if def.Objectives[2].Visible {
		t.Error("hidden objective should not be visible")
	}
	if spec, ok := def.Objectives[2].Spec.(TalkToNPC); !ok || spec.NPCID != "survey_master" || spec.Topic != "findings" {
		t.Errorf("objective 2 spec = %#v", def.Objectives[2].Spec)
	}

	if def.Rewards.Experience != 120 || def.Rewards.Attributes.MentalAcuity != 1 {
		t.Errorf("rewards = %+v", def.Rewards)
	}
	if def.Rewards.FactionChanges[faction.MagistersCouncil] != 8 {
		t.Errorf("faction changes = %+v", def.Rewards.FactionChanges)
	}
	if def.FactionEffects[faction.MagistersCouncil] != 8 {
		t.Errorf("faction effects = %+v", def.FactionEffects)
	}

	br, ok := def.Branches["thorough"]
	if !ok {
		t.Fatal("thorough branch missing")
	}
	if br.Name != "Thorough Survey" || br.Requirements.Attributes.MinResonanceSensitivity != 25 {
		t.Errorf("branch = %+v", br)
	}
	if spec, ok := br.Objectives[0].Spec.(Research); !ok || spec.Points != 50 {
		t.Errorf("branch objective spec = %#v", br.Objectives[0].Spec)
	}
	if br.FactionImplications[faction.NeutralScholars] != 4 {
		t.Errorf("faction implications = %+v", br.FactionImplications)
	}
	if def.EstimatedMinutes != 90 {
		t.Errorf("estimated minutes = %d, want 90", def.EstimatedMinutes)
	}
}

func TestLoadFileUnknownObjectiveType(t *testing.T) {
	dir := t.TempDir()
	path := writeQuestFile(t, dir, "bad.yaml", `
quests:
  broken:
    title: "Broken"
    category: research
    difficulty: beginner
    objectives:
      - id: mystery
        description: "???"
        type: slay_dragon
`)
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), `unknown objective type "slay_dragon"`) {
		t.Errorf("unknown type error = %v", err)
	}
}

func TestLoadFileUnknownFaction(t *testing.T) {
	dir := t.TempDir()
	path := writeQuestFile(t, dir, "bad.yaml", `
quests:
  broken:
    title: "Broken"
    category: research
    difficulty: beginner
    objectives:
      - id: greet
        description: "Greet"
        type: talk_to_npc
        npc: someone
    rewards:
      faction_changes:
        pirates_guild: 5
`)
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), `unknown faction "pirates_guild"`) {
		t.Errorf("unknown faction error = %v", err)
	}
}

func TestLoadFileUnknownCategoryAndDifficulty(t *testing.T) {
	dir := t.TempDir()
	path := writeQuestFile(t, dir, "bad.yaml", `
quests:
  broken:
    title: "Broken"
    category: chores
    difficulty: beginner
`)
	if _, err := LoadFile(path); err == nil || !strings.Contains(err.Error(), `unknown category "chores"`) {
		t.Errorf("unknown category error = %v", err)
	}

	path = writeQuestFile(t, dir, "bad2.yaml", `
quests:
  broken:
    title: "Broken"
    category: research
    difficulty: impossible
`)
	if _, err := LoadFile(path); err == nil || !strings.Contains(err.Error(), `unknown difficulty "impossible"`) {
		t.Errorf("unknown difficulty error = %v", err)
	}
}

func TestLoadDirectoryMergesFiles(t *testing.T) {
	dir := t.TempDir()
	writeQuestFile(t, dir, "one.yaml", `
quests:
  quest_one:
    title: "One"
    category: research
    difficulty: beginner
    objectives:
      - id: step_one
        description: "Step one"
        type: visit_location
        location: hall
`)
	writeQuestFile(t, dir, "two.yml", `
quests:
  quest_two:
    title: "Two"
    category: social
    difficulty: beginner
    objectives:
      - id: step_two
        description: "Step two"
        type: talk_to_npc
        npc: someone
`)
	writeQuestFile(t, dir, "notes.txt", "not a quest file")

	catalog, err := LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory failed: %v", err)
	}
	if catalog.Count() != 2 {
		t.Errorf("Count = %d, want 2", catalog.Count())
	}
}

func TestLoadDirectoryRejectsCrossFileDuplicates(t *testing.T) {
	dir := t.TempDir()
	const questYAML = `
quests:
  quest_one:
    title: "One"
    category: research
    difficulty: beginner
    objectives:
      - id: step_one
        description: "Step one"
        type: visit_location
        location: hall
`
	writeQuestFile(t, dir, "a.yaml", questYAML)
	writeQuestFile(t, dir, "b.yaml", questYAML)

	_, err := LoadDirectory(dir)
	if err == nil || !strings.Contains(err.Error(), "already defined in another file") {
		t.Errorf("cross-file duplicate error = %v", err)
	}
}
