package quest

import "github.com/cjnemes/sympathetic-resonance/internal/faction"

// GlobalState is the process-wide quest state: unlocked quest lines,
// narrative flags, and cross-faction relationship adjustments. It is
// mutated only by quest completion side effects and persisted with the
// save.
type GlobalState struct {
	UnlockedQuestLines []string           `json:"unlocked_quest_lines"`
	Flags              map[string]string  `json:"flags"`
	RelationModifiers  map[string]float64 `json:"relation_modifiers"`
}

// NewGlobalState creates the initial global state with the tutorial
// line unlocked.
func NewGlobalState() *GlobalState {
	return &GlobalState{
		UnlockedQuestLines: []string{"tutorial"},
		Flags:              make(map[string]string),
		RelationModifiers:  make(map[string]float64),
	}
}

// RelationKey builds the map key for a directed faction pair.
func RelationKey(from, to faction.ID) string {
	return string(from) + "/" + string(to)
}

// UnlockQuestLine records a quest line as unlocked. Returns false if it
// was already unlocked.
func (g *GlobalState) UnlockQuestLine(line string) bool {
	for _, unlocked := range g.UnlockedQuestLines {
		if unlocked == line {
			return false
		}
	}
	g.UnlockedQuestLines = append(g.UnlockedQuestLines, line)
	return true
}

// QuestLineUnlocked reports whether a quest line has been unlocked.
func (g *GlobalState) QuestLineUnlocked(line string) bool {
	for _, unlocked := range g.UnlockedQuestLines {
		if unlocked == line {
			return true
		}
	}
	return false
}

// SetFlag records a global narrative flag.
func (g *GlobalState) SetFlag(key, value string) {
	if g.Flags == nil {
		g.Flags = make(map[string]string)
	}
	g.Flags[key] = value
}

// Flag returns a global narrative flag.
func (g *GlobalState) Flag(key string) (string, bool) {
	value, ok := g.Flags[key]
	return value, ok
}

// AdjustRelation accumulates a relationship modifier between two factions.
func (g *GlobalState) AdjustRelation(from, to faction.ID, delta float64) {
	if g.RelationModifiers == nil {
		g.RelationModifiers = make(map[string]float64)
	}
	g.RelationModifiers[RelationKey(from, to)] += delta
}

// Relation returns the accumulated relationship modifier between two
// factions.
func (g *GlobalState) Relation(from, to faction.ID) float64 {
	return g.RelationModifiers[RelationKey(from, to)]
}
