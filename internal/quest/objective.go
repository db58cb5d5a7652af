package quest

import "github.com/cjnemes/sympathetic-resonance/internal/faction"

// Kind identifies the event category an objective matches against.
type Kind string

const (
	KindTalkToNPC            Kind = "talk_to_npc"
	KindLearnTheory          Kind = "learn_theory"
	KindMasterTheories       Kind = "master_theories"
	KindVisitLocation        Kind = "visit_location"
	KindFactionStanding      Kind = "faction_standing"
	KindMagicalDemonstration Kind = "magical_demonstration"
	KindTeachTheory          Kind = "teach_theory"
	KindResearch             Kind = "research"
	KindDiplomaticChoice     Kind = "diplomatic_choice"
	KindCollectItems         Kind = "collect_items"
	KindLearningActivity     Kind = "learning_activity"
)

// ObjectiveSpec is the closed set of objective descriptors. Each concrete
// type carries the matching fields for one event category; the event
// matcher dispatches over this set exhaustively.
type ObjectiveSpec interface {
	Kind() Kind
	isObjectiveSpec()
}

// TalkToNPC matches a dialogue turn with a specific NPC. An empty Topic
// accepts any topic.
type TalkToNPC struct {
	NPCID string
	Topic string
}

// LearnTheory matches a theory understanding change reaching MinLevel.
type LearnTheory struct {
	TheoryID string
	MinLevel float64
}

// MasterTheories matches when the player's mastered-theory count reaches
// Count. Tier 0 means any tier.
type MasterTheories struct {
	Count int
	Tier  int
}

// VisitLocation matches entering a specific location.
type VisitLocation struct {
	LocationID string
}

// FactionStanding matches a faction standing reaching Target.
type FactionStanding struct {
	Faction faction.ID
	Target  int
}

// MagicalDemonstration matches a demonstration of a theory scoring at or
// above Threshold.
type MagicalDemonstration struct {
	TheoryID  string
	Threshold float64
}

// TeachTheory matches teaching a specific theory to a specific NPC.
type TeachTheory struct {
	NPCID    string
	TheoryID string
}

// Research accumulates research points on a theory until Points is reached.
type Research struct {
	TheoryID string
	Points   int
}

// DiplomaticChoice matches the player resolving a named choice. Factions
// lists the parties with a stake in the outcome.
type DiplomaticChoice struct {
	ChoiceID string
	Factions []faction.ID
}

// CollectItems accumulates item pickups until every listed item reaches
// its quantity. ItemIDs and Quantities are parallel.
type CollectItems struct {
	ItemIDs    []string
	Quantities []int
}

// LearningActivity accumulates minutes spent studying a theory with a
// specific method until Minutes is reached.
type LearningActivity struct {
	TheoryID string
	Method   string
	Minutes  int
}

func (TalkToNPC) Kind() Kind            { return KindTalkToNPC }
func (LearnTheory) Kind() Kind          { return KindLearnTheory }
func (MasterTheories) Kind() Kind       { return KindMasterTheories }
func (VisitLocation) Kind() Kind        { return KindVisitLocation }
func (FactionStanding) Kind() Kind      { return KindFactionStanding }
func (MagicalDemonstration) Kind() Kind { return KindMagicalDemonstration }
func (TeachTheory) Kind() Kind          { return KindTeachTheory }
func (Research) Kind() Kind             { return KindResearch }
func (DiplomaticChoice) Kind() Kind     { return KindDiplomaticChoice }
func (CollectItems) Kind() Kind         { return KindCollectItems }
func (LearningActivity) Kind() Kind     { return KindLearningActivity }

func (TalkToNPC) isObjectiveSpec()            {}
func (LearnTheory) isObjectiveSpec()          {}
func (MasterTheories) isObjectiveSpec()       {}
func (VisitLocation) isObjectiveSpec()        {}
func (FactionStanding) isObjectiveSpec()      {}
func (MagicalDemonstration) isObjectiveSpec() {}
func (TeachTheory) isObjectiveSpec()          {}
func (Research) isObjectiveSpec()             {}
func (DiplomaticChoice) isObjectiveSpec()     {}
func (CollectItems) isObjectiveSpec()         {}
func (LearningActivity) isObjectiveSpec()     {}
