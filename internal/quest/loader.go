package quest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cjnemes/sympathetic-resonance/internal/faction"
	"github.com/cjnemes/sympathetic-resonance/internal/logger"
)

// YAML mirror structs for quest content files.

type theoryRequirementYAML struct {
	Theory   string  `yaml:"theory"`
	MinLevel float64 `yaml:"min_level"`
}

type standingYAML struct {
	Faction  string `yaml:"faction"`
	Standing int    `yaml:"standing"`
}

type requirementsYAML struct {
	Theories                []theoryRequirementYAML `yaml:"theories"`
	FactionMinimums         []standingYAML          `yaml:"faction_minimums"`
	FactionRestrictions     []standingYAML          `yaml:"faction_restrictions"`
	Prerequisites           []string                `yaml:"prerequisites"`
	MinMentalAcuity         int                     `yaml:"min_mental_acuity"`
	MinResonanceSensitivity int                     `yaml:"min_resonance_sensitivity"`
	MinPlaytimeMinutes      int                     `yaml:"min_playtime_minutes"`
	Capabilities            []string                `yaml:"capabilities"`
	Locations               []string                `yaml:"locations"`
}

type itemRequirementYAML struct {
	ID       string `yaml:"id"`
	Quantity int    `yaml:"quantity"`
}

type objectiveRewardYAML struct {
	Experience     int                `yaml:"experience"`
	TheoryInsights map[string]float64 `yaml:"theory_insights"`
	FactionChanges map[string]int     `yaml:"faction_changes"`
	Items          []string           `yaml:"items"`
}

type objectiveYAML struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	Optional    bool   `yaml:"optional"`
	Hidden      bool   `yaml:"hidden"`

	// Type-specific matching fields; which are read depends on Type.
	NPC       string                `yaml:"npc"`
	Topic     string                `yaml:"topic"`
	Theory    string                `yaml:"theory"`
	MinLevel  float64               `yaml:"min_level"`
	Count     int                   `yaml:"count"`
	Tier      int                   `yaml:"tier"`
	Location  string                `yaml:"location"`
	Faction   string                `yaml:"faction"`
	Standing  int                   `yaml:"standing"`
	Threshold float64               `yaml:"threshold"`
	Points    int                   `yaml:"points"`
	Choice    string                `yaml:"choice"`
	Factions  []string              `yaml:"factions"`
	Items     []itemRequirementYAML `yaml:"items"`
	Method    string                `yaml:"method"`
	Minutes   int                   `yaml:"minutes"`

	Reward objectiveRewardYAML `yaml:"reward"`
}

type attributeBonusesYAML struct {
	MentalAcuity         int `yaml:"mental_acuity"`
	ResonanceSensitivity int `yaml:"resonance_sensitivity"`
}

type rewardsYAML struct {
	Experience     int                  `yaml:"experience"`
	Attributes     attributeBonusesYAML `yaml:"attributes"`
	TheoryBonuses  map[string]float64   `yaml:"theory_bonuses"`
	FactionChanges map[string]int       `yaml:"faction_changes"`
	Items          []string             `yaml:"items"`
	Capabilities   []string             `yaml:"capabilities"`
	UnlockedQuests []string             `yaml:"unlocked_quests"`
}

type educationalYAML struct {
	PrimaryConcepts    []string `yaml:"primary_concepts"`
	SecondaryConcepts  []string `yaml:"secondary_concepts"`
	Applications       []string `yaml:"applications"`
	Methods            []string `yaml:"methods"`
	AssessmentCriteria []string `yaml:"assessment_criteria"`
}

type branchYAML struct {
	Name                string           `yaml:"name"`
	Description         string           `yaml:"description"`
	Requirements        requirementsYAML `yaml:"requirements"`
	Objectives          []objectiveYAML  `yaml:"objectives"`
	FactionImplications map[string]int   `yaml:"faction_implications"`
	Educational         educationalYAML  `yaml:"educational"`
}

type definitionYAML struct {
	Title            string                `yaml:"title"`
	Description      string                `yaml:"description"`
	Category         string                `yaml:"category"`
	Difficulty       string                `yaml:"difficulty"`
	Requirements     requirementsYAML      `yaml:"requirements"`
	Objectives       []objectiveYAML       `yaml:"objectives"`
	Rewards          rewardsYAML           `yaml:"rewards"`
	FactionEffects   map[string]int        `yaml:"faction_effects"`
	Educational      educationalYAML       `yaml:"educational"`
	Branches         map[string]branchYAML `yaml:"branches"`
	NPCs             []string              `yaml:"npcs"`
	Locations        []string              `yaml:"locations"`
	EstimatedMinutes int                   `yaml:"estimated_minutes"`
}

type questsFile struct {
	Quests map[string]definitionYAML `yaml:"quests"`
}

// LoadFile parses one quest content file into a catalog.
func LoadFile(path string) (*Catalog, error) {
	raw, err := loadQuestsYAML(path)
	if err != nil {
		return nil, err
	}
	return buildCatalog(raw)
}

// LoadDirectory parses and merges every .yaml/.yml file in a directory
// into a catalog. Later files may not redefine earlier quest IDs.
func LoadDirectory(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read quest directory %s: %w", dir, err)
	}

	merged := make(map[string]definitionYAML)
	fileCount := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		path := filepath.Join(dir, name)
		raw, err := loadQuestsYAML(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		for id, def := range raw {
			if _, dup := merged[id]; dup {
				return nil, fmt.Errorf("%s: quest %q already defined in another file", path, id)
			}
			merged[id] = def
		}
		fileCount++
		logger.Info("Loaded quest file", "path", path, "quests", len(raw))
	}

	catalog, err := buildCatalog(merged)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded quest catalog", "dir", dir, "files", fileCount, "quests", catalog.Count())
	return catalog, nil
}

func loadQuestsYAML(path string) (map[string]definitionYAML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quest file: %w", err)
	}

	var file questsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse quest YAML: %w", err)
	}
	return file.Quests, nil
}

func buildCatalog(raw map[string]definitionYAML) (*Catalog, error) {
	defs := make([]*Definition, 0, len(raw))
	for id, y := range raw {
		def, err := buildDefinition(id, &y)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return NewCatalog(defs)
}

func buildDefinition(id string, y *definitionYAML) (*Definition, error) {
	category, err := parseCategory(y.Category)
	if err != nil {
		return nil, fmt.Errorf("quest %q: %w", id, err)
	}
	difficulty, err := parseDifficulty(y.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("quest %q: %w", id, err)
	}
	requirements, err := buildRequirements(&y.Requirements)
	if err != nil {
		return nil, fmt.Errorf("quest %q: %w", id, err)
	}
	objectives, err := buildObjectives(y.Objectives)
	if err != nil {
		return nil, fmt.Errorf("quest %q: %w", id, err)
	}
	rewards, err := buildRewards(&y.Rewards)
	if err != nil {
		return nil, fmt.Errorf("quest %q: %w", id, err)
	}
	factionEffects, err := buildFactionMap(y.FactionEffects)
	if err != nil {
		return nil, fmt.Errorf("quest %q: %w", id, err)
	}

	branches := make(map[string]Branch, len(y.Branches))
	for name, by := range y.Branches {
		branch, err := buildBranch(name, &by)
		if err != nil {
			return nil, fmt.Errorf("quest %q: branch %q: %w", id, name, err)
		}
		branches[name] = branch
	}

	return &Definition{
		ID:               id,
		Title:            y.Title,
		Description:      y.Description,
		Category:         category,
		Difficulty:       difficulty,
		Requirements:     requirements,
		Objectives:       objectives,
		Rewards:          rewards,
		FactionEffects:   factionEffects,
		Educational:      buildEducational(&y.Educational),
		Branches:         branches,
		InvolvedNPCs:     y.NPCs,
		Locations:        y.Locations,
		EstimatedMinutes: y.EstimatedMinutes,
	}, nil
}

func buildBranch(name string, y *branchYAML) (Branch, error) {
	requirements, err := buildRequirements(&y.Requirements)
	if err != nil {
		return Branch{}, err
	}
	objectives, err := buildObjectives(y.Objectives)
	if err != nil {
		return Branch{}, err
	}
	implications, err := buildFactionMap(y.FactionImplications)
	if err != nil {
		return Branch{}, err
	}
	branchName := y.Name
	if branchName == "" {
		branchName = name
	}
	return Branch{
		Name:                branchName,
		Description:         y.Description,
		Requirements:        requirements,
		Objectives:          objectives,
		FactionImplications: implications,
		Educational:         buildEducational(&y.Educational),
	}, nil
}

func buildRequirements(y *requirementsYAML) (Requirements, error) {
	req := Requirements{
		Prerequisites: y.Prerequisites,
		Attributes: AttributeRequirements{
			MinMentalAcuity:         y.MinMentalAcuity,
			MinResonanceSensitivity: y.MinResonanceSensitivity,
			MinPlaytimeMinutes:      y.MinPlaytimeMinutes,
		},
		Capabilities: y.Capabilities,
		Locations:    y.Locations,
	}

	for _, t := range y.Theories {
		req.Theories = append(req.Theories, TheoryRequirement{TheoryID: t.Theory, MinLevel: t.MinLevel})
	}
	for _, s := range y.FactionMinimums {
		fid, err := parseFaction(s.Faction)
		if err != nil {
			return Requirements{}, err
		}
		req.FactionMinimums = append(req.FactionMinimums, StandingRequirement{Faction: fid, Min: s.Standing})
	}
	for _, s := range y.FactionRestrictions {
		fid, err := parseFaction(s.Faction)
		if err != nil {
			return Requirements{}, err
		}
		req.FactionRestrictions = append(req.FactionRestrictions, StandingRestriction{Faction: fid, Max: s.Standing})
	}
	return req, nil
}

func buildObjectives(ys []objectiveYAML) ([]Objective, error) {
	objectives := make([]Objective, 0, len(ys))
	for i := range ys {
		obj, err := buildObjective(&ys[i])
		if err != nil {
			return nil, err
		}
		objectives = append(objectives, obj)
	}
	return objectives, nil
}

func buildObjective(y *objectiveYAML) (Objective, error) {
	spec, err := buildObjectiveSpec(y)
	if err != nil {
		return Objective{}, fmt.Errorf("objective %q: %w", y.ID, err)
	}
	factionChanges, err := buildFactionMap(y.Reward.FactionChanges)
	if err != nil {
		return Objective{}, fmt.Errorf("objective %q: %w", y.ID, err)
	}
	return Objective{
		ID:          y.ID,
		Description: y.Description,
		Spec:        spec,
		Optional:    y.Optional,
		Visible:     !y.Hidden,
		Reward: ObjectiveReward{
			Experience:     y.Reward.Experience,
			TheoryInsights: y.Reward.TheoryInsights,
			FactionChanges: factionChanges,
			Items:          y.Reward.Items,
		},
	}, nil
}

func buildObjectiveSpec(y *objectiveYAML) (ObjectiveSpec, error) {
	switch Kind(y.Type) {
	case KindTalkToNPC:
		return TalkToNPC{NPCID: y.NPC, Topic: y.Topic}, nil
	case KindLearnTheory:
		return LearnTheory{TheoryID: y.Theory, MinLevel: y.MinLevel}, nil
	case KindMasterTheories:
		return MasterTheories{Count: y.Count, Tier: y.Tier}, nil
	case KindVisitLocation:
		return VisitLocation{LocationID: y.Location}, nil
	case KindFactionStanding:
		fid, err := parseFaction(y.Faction)
		if err != nil {
			return nil, err
		}
		return FactionStanding{Faction: fid, Target: y.Standing}, nil
	case KindMagicalDemonstration:
		return MagicalDemonstration{TheoryID: y.Theory, Threshold: y.Threshold}, nil
	case KindTeachTheory:
		return TeachTheory{NPCID: y.NPC, TheoryID: y.Theory}, nil
	case KindResearch:
		return Research{TheoryID: y.Theory, Points: y.Points}, nil
	case KindDiplomaticChoice:
		factions := make([]faction.ID, 0, len(y.Factions))
		for _, name := range y.Factions {
			fid, err := parseFaction(name)
			if err != nil {
				return nil, err
			}
			factions = append(factions, fid)
		}
		return DiplomaticChoice{ChoiceID: y.Choice, Factions: factions}, nil
	case KindCollectItems:
		ids := make([]string, 0, len(y.Items))
		quantities := make([]int, 0, len(y.Items))
		for _, item := range y.Items {
			qty := item.Quantity
			if qty <= 0 {
				qty = 1
			}
			ids = append(ids, item.ID)
			quantities = append(quantities, qty)
		}
		return CollectItems{ItemIDs: ids, Quantities: quantities}, nil
	case KindLearningActivity:
		return LearningActivity{TheoryID: y.Theory, Method: y.Method, Minutes: y.Minutes}, nil
	default:
		return nil, fmt.Errorf("unknown objective type %q", y.Type)
	}
}

func buildRewards(y *rewardsYAML) (Rewards, error) {
	factionChanges, err := buildFactionMap(y.FactionChanges)
	if err != nil {
		return Rewards{}, err
	}
	return Rewards{
		Experience: y.Experience,
		Attributes: AttributeBonuses{
			MentalAcuity:         y.Attributes.MentalAcuity,
			ResonanceSensitivity: y.Attributes.ResonanceSensitivity,
		},
		TheoryBonuses:  y.TheoryBonuses,
		FactionChanges: factionChanges,
		Items:          y.Items,
		Capabilities:   y.Capabilities,
		UnlockedQuests: y.UnlockedQuests,
	}, nil
}

func buildEducational(y *educationalYAML) EducationalMetadata {
	return EducationalMetadata{
		PrimaryConcepts:    y.PrimaryConcepts,
		SecondaryConcepts:  y.SecondaryConcepts,
		Applications:       y.Applications,
		Methods:            y.Methods,
		AssessmentCriteria: y.AssessmentCriteria,
	}
}

func buildFactionMap(raw map[string]int) (map[faction.ID]int, error) {
	if raw == nil {
		return map[faction.ID]int{}, nil
	}
	m := make(map[faction.ID]int, len(raw))
	for name, delta := range raw {
		fid, err := parseFaction(name)
		if err != nil {
			return nil, err
		}
		m[fid] = delta
	}
	return m, nil
}

func parseFaction(name string) (faction.ID, error) {
	fid := faction.ID(name)
	if !faction.Valid(fid) {
		return "", fmt.Errorf("unknown faction %q", name)
	}
	return fid, nil
}

func parseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryTutorial, CategoryResearch, CategoryPolitical, CategoryPractical,
		CategorySocial, CategoryExperimental, CategoryNarrative:
		return Category(s), nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

func parseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced,
		DifficultyExpert, DifficultyMaster:
		return Difficulty(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
}
