package quest

import (
	"fmt"
	"strconv"

	"github.com/cjnemes/sympathetic-resonance/internal/faction"
	"github.com/cjnemes/sympathetic-resonance/internal/player"
)

// The event matcher reacts to discrete gameplay events: one entry point
// per event category. Every handler follows the same two-phase shape:
// collect matches across all in-progress quests against a consistent
// snapshot, then apply them. One event can therefore satisfy one
// objective in each of several concurrently active quests.

type matchResult struct {
	value     float64
	completed bool
	data      map[string]string // merged into the objective's Data on apply
}

type objectiveMatch struct {
	questID   string
	objective Objective
	result    matchResult
}

// collectMatches scans every tracked, uncompleted objective of every
// in-progress quest without mutating anything.
func (e *Engine) collectMatches(match func(obj *Objective, op *ObjectiveProgress) (matchResult, bool)) []objectiveMatch {
	var matches []objectiveMatch
	for _, questID := range e.ActiveQuestIDs() {
		def, ok := e.catalog.Get(questID)
		if !ok {
			continue
		}
		prog := e.progress[questID]
		objectives := def.trackedObjectives(prog.ChosenBranch)
		for i := range objectives {
			op := prog.Objectives[objectives[i].ID]
			if op == nil || op.Completed {
				continue
			}
			if result, ok := match(&objectives[i], op); ok {
				matches = append(matches, objectiveMatch{
					questID:   questID,
					objective: objectives[i],
					result:    result,
				})
			}
		}
	}
	return matches
}

// applyMatches applies collected matches and renders one line per match.
func (e *Engine) applyMatches(matches []objectiveMatch) []string {
	var lines []string
	for _, m := range matches {
		if len(m.result.data) > 0 {
			if op := e.progress[m.questID].Objectives[m.objective.ID]; op != nil {
				if op.Data == nil {
					op.Data = make(map[string]string)
				}
				for k, v := range m.result.data {
					op.Data[k] = v
				}
			}
		}

		// Progress records are known to exist here; the error path is
		// unreachable for matches collected a moment ago.
		_ = e.UpdateObjectiveProgress(m.questID, m.objective.ID, m.result.value, m.result.completed)

		if m.result.completed {
			line := "Quest objective completed: " + m.objective.Description
			if m.objective.Reward.Experience > 0 {
				line += fmt.Sprintf(" (+%d experience)", m.objective.Reward.Experience)
			}
			lines = append(lines, line)
		} else {
			lines = append(lines, fmt.Sprintf("Quest objective progress: %s (%.0f%%)",
				m.objective.Description, m.result.value*100))
		}
	}
	return lines
}

// HandleDialogue reacts to a dialogue turn with an NPC. An objective with
// no required topic accepts any topic.
func (e *Engine) HandleDialogue(npcID, topic string) []string {
	return e.applyMatches(e.collectMatches(func(obj *Objective, _ *ObjectiveProgress) (matchResult, bool) {
		spec, ok := obj.Spec.(TalkToNPC)
		if !ok || spec.NPCID != npcID {
			return matchResult{}, false
		}
		if spec.Topic != "" && spec.Topic != topic {
			return matchResult{}, false
		}
		return matchResult{value: 1, completed: true}, true
	}))
}

// HandleTheoryChange reacts to the player's understanding of a theory
// reaching a new level. It also re-checks mastery-count objectives
// against the player snapshot.
func (e *Engine) HandleTheoryChange(theoryID string, newLevel float64, p *player.Player) []string {
	return e.applyMatches(e.collectMatches(func(obj *Objective, _ *ObjectiveProgress) (matchResult, bool) {
		switch spec := obj.Spec.(type) {
		case LearnTheory:
			if spec.TheoryID == theoryID && newLevel >= spec.MinLevel {
				return matchResult{value: 1, completed: true}, true
			}
		case MasterTheories:
			if p.MasteredCount() >= spec.Count {
				return matchResult{value: 1, completed: true}, true
			}
		}
		return matchResult{}, false
	}))
}

// HandleLocationVisit reacts to the player entering a location.
func (e *Engine) HandleLocationVisit(locationID string) []string {
	return e.applyMatches(e.collectMatches(func(obj *Objective, _ *ObjectiveProgress) (matchResult, bool) {
		spec, ok := obj.Spec.(VisitLocation)
		if !ok || spec.LocationID != locationID {
			return matchResult{}, false
		}
		return matchResult{value: 1, completed: true}, true
	}))
}

// HandleDemonstration reacts to a magical demonstration of a theory with
// the achieved success score.
func (e *Engine) HandleDemonstration(theoryID string, score float64) []string {
	return e.applyMatches(e.collectMatches(func(obj *Objective, _ *ObjectiveProgress) (matchResult, bool) {
		spec, ok := obj.Spec.(MagicalDemonstration)
		if !ok || spec.TheoryID != theoryID || score < spec.Threshold {
			return matchResult{}, false
		}
		return matchResult{value: 1, completed: true}, true
	}))
}

// HandleFactionChange reacts to the player's standing with a faction
// reaching a new value.
func (e *Engine) HandleFactionChange(id faction.ID, standing int) []string {
	return e.applyMatches(e.collectMatches(func(obj *Objective, _ *ObjectiveProgress) (matchResult, bool) {
		spec, ok := obj.Spec.(FactionStanding)
		if !ok || spec.Faction != id || standing < spec.Target {
			return matchResult{}, false
		}
		return matchResult{value: 1, completed: true}, true
	}))
}

// HandleTeaching reacts to the player teaching a theory to an NPC.
func (e *Engine) HandleTeaching(npcID, theoryID string) []string {
	return e.applyMatches(e.collectMatches(func(obj *Objective, _ *ObjectiveProgress) (matchResult, bool) {
		spec, ok := obj.Spec.(TeachTheory)
		if !ok || spec.NPCID != npcID || spec.TheoryID != theoryID {
			return matchResult{}, false
		}
		return matchResult{value: 1, completed: true}, true
	}))
}

// HandleDiplomaticChoice reacts to the player resolving a named choice,
// recording the chosen option on every quest tracking it.
func (e *Engine) HandleDiplomaticChoice(choiceID, optionID string) []string {
	matches := e.collectMatches(func(obj *Objective, _ *ObjectiveProgress) (matchResult, bool) {
		spec, ok := obj.Spec.(DiplomaticChoice)
		if !ok || spec.ChoiceID != choiceID {
			return matchResult{}, false
		}
		return matchResult{value: 1, completed: true, data: map[string]string{"option": optionID}}, true
	})
	for _, m := range matches {
		// Recording a choice never fails for a quest collected as active.
		_ = e.RecordChoice(m.questID, choiceID, optionID)
	}
	return e.applyMatches(matches)
}

// HandleResearch reacts to a research tick, accumulating points toward
// research objectives on the theory.
func (e *Engine) HandleResearch(theoryID string, points int) []string {
	return e.applyMatches(e.collectMatches(func(obj *Objective, op *ObjectiveProgress) (matchResult, bool) {
		spec, ok := obj.Spec.(Research)
		if !ok || spec.TheoryID != theoryID || spec.Points <= 0 {
			return matchResult{}, false
		}
		accumulated := dataInt(op, "points") + points
		return matchResult{
			value:     float64(accumulated) / float64(spec.Points),
			completed: accumulated >= spec.Points,
			data:      map[string]string{"points": strconv.Itoa(accumulated)},
		}, true
	}))
}

// HandleItemCollected reacts to the player obtaining count of an item,
// accumulating per-item tallies toward collection objectives.
func (e *Engine) HandleItemCollected(itemID string, count int) []string {
	return e.applyMatches(e.collectMatches(func(obj *Objective, op *ObjectiveProgress) (matchResult, bool) {
		spec, ok := obj.Spec.(CollectItems)
		if !ok {
			return matchResult{}, false
		}

		wanted := false
		for _, id := range spec.ItemIDs {
			if id == itemID {
				wanted = true
				break
			}
		}
		if !wanted {
			return matchResult{}, false
		}

		key := "item:" + itemID
		have := dataInt(op, key) + count

		satisfied, required := 0, 0
		allMet := true
		for i, id := range spec.ItemIDs {
			qty := 1
			if i < len(spec.Quantities) {
				qty = spec.Quantities[i]
			}
			got := dataInt(op, "item:"+id)
			if id == itemID {
				got = have
			}
			if got > qty {
				got = qty
			}
			satisfied += got
			required += qty
			if got < qty {
				allMet = false
			}
		}

		value := 1.0
		if required > 0 {
			value = float64(satisfied) / float64(required)
		}
		return matchResult{
			value:     value,
			completed: allMet,
			data:      map[string]string{key: strconv.Itoa(have)},
		}, true
	}))
}

// HandleLearningActivity reacts to time spent studying a theory with a
// specific method, accumulating minutes toward learning objectives.
func (e *Engine) HandleLearningActivity(theoryID, method string, minutes int) []string {
	return e.applyMatches(e.collectMatches(func(obj *Objective, op *ObjectiveProgress) (matchResult, bool) {
		spec, ok := obj.Spec.(LearningActivity)
		if !ok || spec.TheoryID != theoryID || spec.Method != method || spec.Minutes <= 0 {
			return matchResult{}, false
		}
		accumulated := dataInt(op, "minutes") + minutes
		return matchResult{
			value:     float64(accumulated) / float64(spec.Minutes),
			completed: accumulated >= spec.Minutes,
			data:      map[string]string{"minutes": strconv.Itoa(accumulated)},
		}, true
	}))
}

func dataInt(op *ObjectiveProgress, key string) int {
	if op == nil || op.Data == nil {
		return 0
	}
	n, err := strconv.Atoi(op.Data[key])
	if err != nil {
		return 0
	}
	return n
}
