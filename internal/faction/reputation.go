package faction

import "time"

// Reputation is clamped to this range.
const (
	MinReputation = -100
	MaxReputation = 100
)

// Change records a single reputation adjustment and why it happened.
type Change struct {
	Faction ID        `json:"faction"`
	Delta   int       `json:"delta"`
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at"`
}

// System is the faction collaborator: it owns the authoritative reputation
// table the quest engine mutates through ModifyReputation.
type System struct {
	Scores  map[ID]int `json:"scores"`
	History []Change   `json:"history,omitempty"`
}

// NewSystem creates a reputation table with every faction at zero.
func NewSystem() *System {
	scores := make(map[ID]int, len(All()))
	for _, id := range All() {
		scores[id] = 0
	}
	return &System{Scores: scores}
}

// Reputation returns the player's standing with a faction.
func (s *System) Reputation(id ID) int {
	return s.Scores[id]
}

// ModifyReputation adjusts standing with a faction, clamped to ±100.
func (s *System) ModifyReputation(id ID, delta int) {
	s.ModifyReputationWithReason(id, delta, "")
}

// ModifyReputationWithReason adjusts standing and records the change.
func (s *System) ModifyReputationWithReason(id ID, delta int, reason string) {
	score := s.Scores[id] + delta
	if score > MaxReputation {
		score = MaxReputation
	}
	if score < MinReputation {
		score = MinReputation
	}
	s.Scores[id] = score
	s.History = append(s.History, Change{
		Faction: id,
		Delta:   delta,
		Reason:  reason,
		At:      time.Now().UTC(),
	})
}

// RecentChanges returns up to count most recent reputation changes,
// newest first.
func (s *System) RecentChanges(count int) []Change {
	if count > len(s.History) {
		count = len(s.History)
	}
	changes := make([]Change, 0, count)
	for i := len(s.History) - 1; i >= len(s.History)-count; i-- {
		changes = append(changes, s.History[i])
	}
	return changes
}

// Allies returns factions with positive standing.
func (s *System) Allies() []ID {
	var allies []ID
	for _, id := range All() {
		if s.Scores[id] > 0 {
			allies = append(allies, id)
		}
	}
	return allies
}

// Enemies returns factions with negative standing.
func (s *System) Enemies() []ID {
	var enemies []ID
	for _, id := range All() {
		if s.Scores[id] < 0 {
			enemies = append(enemies, id)
		}
	}
	return enemies
}
