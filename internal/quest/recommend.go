package quest

import (
	"sort"

	"github.com/cjnemes/sympathetic-resonance/internal/player"
)

// Recommendation scoring. The ranker is best-effort player guidance;
// nothing in the progression state machine depends on it.
const (
	recommendThreshold = 6
	recommendLimit     = 5
)

// Recommendation is one surfaced quest suggestion.
type Recommendation struct {
	QuestID string
	Reason  string
	Score   int
}

// Recommendations scores every currently available quest against the
// player's progress and returns the top suggestions.
func (e *Engine) Recommendations(p *player.Player) []Recommendation {
	var recs []Recommendation
	mastered := p.MasteredCount()

	for _, def := range e.AvailableQuests(p) {
		score := 0
		reason := ""

		switch {
		case def.Difficulty == DifficultyBeginner && mastered <= 2:
			score += 10
			reason = "Good for your current level"
		case def.Difficulty == DifficultyIntermediate && mastered >= 3:
			score += 8
			reason = "Matches your intermediate knowledge"
		case def.Difficulty == DifficultyAdvanced && mastered >= 5:
			score += 6
			reason = "Challenges your advanced skills"
		default:
			score += 2
		}

		if len(def.Educational.PrimaryConcepts) > 0 {
			score += 5
			if reason == "" {
				reason = "Teaches important concepts"
			}
		}

		for _, fid := range sortedFactions(def.FactionEffects) {
			if p.FactionStandings[fid] > 20 {
				score += 3
				if reason == "" {
					reason = "Aligns with your " + fid.DisplayName() + " standing"
				}
			}
		}

		if score >= recommendThreshold {
			recs = append(recs, Recommendation{QuestID: def.ID, Reason: reason, Score: score})
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].QuestID < recs[j].QuestID
	})
	if len(recs) > recommendLimit {
		recs = recs[:recommendLimit]
	}
	return recs
}
