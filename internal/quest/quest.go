// Package quest implements the quest-progression engine: an immutable
// catalog of quest definitions, a per-player progress tracker, a
// requirement evaluator, an event matcher, a reward applier, and a
// recommendation ranker. The engine is synchronous and single-owner;
// every operation runs to completion within the caller's turn.
package quest

import "github.com/cjnemes/sympathetic-resonance/internal/faction"

// Category organizes quests by narrative role.
type Category string

const (
	CategoryTutorial     Category = "tutorial"
	CategoryResearch     Category = "research"
	CategoryPolitical    Category = "political"
	CategoryPractical    Category = "practical"
	CategorySocial       Category = "social"
	CategoryExperimental Category = "experimental"
	CategoryNarrative    Category = "narrative"
)

// Difficulty tiers, roughly tracking how many theories a quest expects.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
	DifficultyMaster       Difficulty = "master"
)

// TheoryRequirement gates on a minimum understanding level of one theory.
type TheoryRequirement struct {
	TheoryID string
	MinLevel float64
}

// StandingRequirement gates on a minimum faction standing. A missing
// standing entry fails the requirement.
type StandingRequirement struct {
	Faction faction.ID
	Min     int
}

// StandingRestriction gates on a maximum faction standing. A missing
// standing entry satisfies the restriction.
type StandingRestriction struct {
	Faction faction.ID
	Max     int
}

// AttributeRequirements are optional attribute floors; zero means no floor.
type AttributeRequirements struct {
	MinMentalAcuity         int
	MinResonanceSensitivity int
	MinPlaytimeMinutes      int
}

// Requirements is the full eligibility gate for starting a quest or
// selecting a branch.
type Requirements struct {
	Theories            []TheoryRequirement
	FactionMinimums     []StandingRequirement
	FactionRestrictions []StandingRestriction
	Prerequisites       []string // quest IDs that must be Completed
	Attributes          AttributeRequirements
	Capabilities        []string // required capability tokens
	Locations           []string // any-of, only enforced when non-empty
}

// ObjectiveReward is granted when a single objective completes. It is
// reported to the caller; authoritative accounting is external.
type ObjectiveReward struct {
	Experience     int
	TheoryInsights map[string]float64
	FactionChanges map[faction.ID]int
	Items          []string
}

// Objective is a single trackable sub-goal of a quest.
type Objective struct {
	ID          string
	Description string
	Spec        ObjectiveSpec

	// Optional objectives never block quest completion.
	Optional bool

	// Visible seeds the per-instance revealed flag; hidden objectives
	// are revealed by game logic external to this engine.
	Visible bool

	Reward ObjectiveReward
}

// AttributeBonuses are attribute improvements from quest completion.
type AttributeBonuses struct {
	MentalAcuity         int
	ResonanceSensitivity int
}

// Rewards is everything granted when a quest completes.
type Rewards struct {
	Experience     int
	Attributes     AttributeBonuses
	TheoryBonuses  map[string]float64
	FactionChanges map[faction.ID]int
	Items          []string
	Capabilities   []string
	UnlockedQuests []string
}

// EducationalMetadata describes the learning content of a quest. It is
// cosmetic: nothing in the engine evaluates it beyond the recommendation
// ranker's presence check.
type EducationalMetadata struct {
	PrimaryConcepts    []string
	SecondaryConcepts  []string
	Applications       []string
	Methods            []string
	AssessmentCriteria []string
}

// Branch is an alternate objective path within one quest, selected at
// most once per quest instance.
type Branch struct {
	Name                string
	Description         string
	Requirements        Requirements
	Objectives          []Objective
	FactionImplications map[faction.ID]int
	Educational         EducationalMetadata
}

// Definition is an immutable quest definition. Quest IDs are unique
// within the catalog; objective IDs are unique within a quest, including
// across its branches.
type Definition struct {
	ID          string
	Title       string
	Description string
	Category    Category
	Difficulty  Difficulty

	Requirements Requirements
	Objectives   []Objective
	Rewards      Rewards

	// FactionEffects declares how completing (or abandoning) the quest
	// lands with each faction.
	FactionEffects map[faction.ID]int

	Educational EducationalMetadata
	Branches    map[string]Branch

	InvolvedNPCs     []string
	Locations        []string
	EstimatedMinutes int
}

// Objective returns the objective with the given ID, searching base
// objectives and all branches.
func (d *Definition) Objective(id string) (*Objective, bool) {
	for i := range d.Objectives {
		if d.Objectives[i].ID == id {
			return &d.Objectives[i], true
		}
	}
	for _, br := range d.Branches {
		for i := range br.Objectives {
			if br.Objectives[i].ID == id {
				return &br.Objectives[i], true
			}
		}
	}
	return nil, false
}

// trackedObjectives returns the objectives an instance is accountable
// for: the base sequence plus the chosen branch's, if any.
func (d *Definition) trackedObjectives(chosenBranch string) []Objective {
	if chosenBranch == "" {
		return d.Objectives
	}
	br, ok := d.Branches[chosenBranch]
	if !ok {
		return d.Objectives
	}
	objectives := make([]Objective, 0, len(d.Objectives)+len(br.Objectives))
	objectives = append(objectives, d.Objectives...)
	objectives = append(objectives, br.Objectives...)
	return objectives
}
