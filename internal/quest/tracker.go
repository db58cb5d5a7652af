package quest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cjnemes/sympathetic-resonance/internal/faction"
	"github.com/cjnemes/sympathetic-resonance/internal/player"
)

// StartQuest begins a quest, creating a fresh progress record with every
// base objective uncompleted. A quest already in progress or completed
// cannot be re-started; a previously abandoned or failed quest may be,
// after passing the raw requirement predicate again.
func (e *Engine) StartQuest(questID string, p *player.Player) (string, error) {
	def, ok := e.catalog.Get(questID)
	if !ok {
		return "", fmt.Errorf("quest %q: %w", questID, ErrNotFound)
	}

	if prog, exists := e.progress[questID]; exists {
		switch prog.Status {
		case StatusInProgress:
			return "", fmt.Errorf("quest %q is already underway: %w", def.Title, ErrInvalidTransition)
		case StatusCompleted:
			return "", fmt.Errorf("quest %q is already completed: %w", def.Title, ErrInvalidTransition)
		case StatusAbandoned, StatusFailed:
			if !e.MeetsRequirements(&def.Requirements, p) {
				return "", fmt.Errorf("quest %q: %w", def.Title, ErrRequirementsNotMet)
			}
		}
	} else if !e.IsAvailable(def, p) {
		return "", fmt.Errorf("quest %q: %w", def.Title, ErrRequirementsNotMet)
	}

	e.progress[questID] = newProgress(def)

	return fmt.Sprintf("Started quest: %s\n%s", def.Title, def.Description), nil
}

// UpdateObjectiveProgress records progress on one objective. The value is
// clamped to [0,1]; the completed flag latches on its first true and the
// completion timestamp never changes afterward. An unknown objective ID
// is ignored. The quest completion check runs after every update.
func (e *Engine) UpdateObjectiveProgress(questID, objectiveID string, value float64, completed bool) error {
	prog, ok := e.progress[questID]
	if !ok {
		return fmt.Errorf("no progress for quest %q: %w", questID, ErrNotFound)
	}

	if op, ok := prog.Objectives[objectiveID]; ok && !op.Completed {
		op.Value = clamp01(value)
		if completed {
			op.Completed = true
			now := time.Now().UTC()
			op.CompletedAt = &now
		}
	}

	e.checkCompletion(questID)
	return nil
}

// checkCompletion transitions a quest to Completed the moment every
// non-optional tracked objective (base plus chosen branch) is complete.
// Completed quests never change status again.
func (e *Engine) checkCompletion(questID string) {
	def, ok := e.catalog.Get(questID)
	if !ok {
		return
	}
	prog, ok := e.progress[questID]
	if !ok || prog.Status != StatusInProgress {
		return
	}

	for _, obj := range def.trackedObjectives(prog.ChosenBranch) {
		if obj.Optional {
			continue
		}
		op, ok := prog.Objectives[obj.ID]
		if !ok || !op.Completed {
			return
		}
	}

	prog.Status = StatusCompleted
	now := time.Now().UTC()
	prog.CompletedAt = &now
}

// AbandonQuest abandons an in-progress quest. Tutorial quests cannot be
// abandoned. Every faction that declared a positive effect on the quest
// takes back half of it as a reputation penalty.
func (e *Engine) AbandonQuest(questID string, factions *faction.System) (string, error) {
	def, ok := e.catalog.Get(questID)
	if !ok {
		return "", fmt.Errorf("quest %q: %w", questID, ErrNotFound)
	}

	prog, ok := e.progress[questID]
	if !ok {
		return "", fmt.Errorf("quest %q was never started: %w", def.Title, ErrNotFound)
	}
	if prog.Status != StatusInProgress {
		return "", fmt.Errorf("cannot abandon quest %q with status %s: %w", def.Title, prog.Status, ErrInvalidTransition)
	}
	if def.Category == CategoryTutorial {
		return "", fmt.Errorf("tutorial quests cannot be abandoned: %w", ErrInvalidTransition)
	}

	prog.Status = StatusAbandoned
	now := time.Now().UTC()
	prog.CompletedAt = &now

	var sb strings.Builder
	fmt.Fprintf(&sb, "You have abandoned the quest: %s\n\n", def.Title)

	totalPenalty := 0
	for _, fid := range sortedFactions(def.FactionEffects) {
		effect := def.FactionEffects[fid]
		if effect <= 0 {
			continue
		}
		penalty := -(effect / 2)
		factions.ModifyReputationWithReason(fid, penalty, "abandoned quest "+def.ID)
		totalPenalty += -penalty
		fmt.Fprintf(&sb, "* %s reputation: %d (abandonment penalty)\n", fid.DisplayName(), penalty)
	}
	if totalPenalty == 0 {
		sb.WriteString("No faction reputation penalties.\n")
	}
	sb.WriteString("\nThe quest may become available again in the future.")

	return sb.String(), nil
}

// RevealObjective makes a hidden objective visible in status output.
// Which game event reveals an objective is decided outside this engine.
func (e *Engine) RevealObjective(questID, objectiveID string) error {
	prog, ok := e.progress[questID]
	if !ok {
		return fmt.Errorf("no progress for quest %q: %w", questID, ErrNotFound)
	}
	op, ok := prog.Objectives[objectiveID]
	if !ok {
		return fmt.Errorf("objective %q in quest %q: %w", objectiveID, questID, ErrNotFound)
	}
	op.Revealed = true
	return nil
}

// AddTimeInvested accrues elapsed quest time, fed by the caller's clock.
func (e *Engine) AddTimeInvested(questID string, minutes int) error {
	prog, ok := e.progress[questID]
	if !ok {
		return fmt.Errorf("no progress for quest %q: %w", questID, ErrNotFound)
	}
	prog.TimeInvested += minutes
	return nil
}

// RecordChoice records a player decision made during a quest.
func (e *Engine) RecordChoice(questID, choiceID, optionID string) error {
	prog, ok := e.progress[questID]
	if !ok {
		return fmt.Errorf("no progress for quest %q: %w", questID, ErrNotFound)
	}
	if prog.Choices == nil {
		prog.Choices = make(map[string]string)
	}
	prog.Choices[choiceID] = optionID
	return nil
}

// QuestStatus renders a human-readable report for one quest: status,
// description, and per-objective completion. Hidden objectives are not
// described.
func (e *Engine) QuestStatus(questID string) (string, error) {
	def, ok := e.catalog.Get(questID)
	if !ok {
		return "", fmt.Errorf("quest %q: %w", questID, ErrNotFound)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== %s ===\n", def.Title)

	prog, started := e.progress[questID]
	if !started {
		fmt.Fprintf(&sb, "%s\n\nStatus: Not Started", def.Description)
		return sb.String(), nil
	}

	fmt.Fprintf(&sb, "Status: %s\n", prog.Status)
	fmt.Fprintf(&sb, "Description: %s\n\n", def.Description)

	sb.WriteString("Objectives:\n")
	for _, obj := range def.trackedObjectives(prog.ChosenBranch) {
		op := prog.Objectives[obj.ID]
		completed := op != nil && op.Completed
		value := 0.0
		revealed := false
		if op != nil {
			value = op.Value
			revealed = op.Revealed
		}

		if !revealed && !completed {
			sb.WriteString("  [?] (undiscovered objective)\n")
			continue
		}

		mark := "[ ]"
		if completed {
			mark = "[x]"
		}
		optionalTag := ""
		if obj.Optional {
			optionalTag = " (Optional)"
		}
		fmt.Fprintf(&sb, "  %s %s - %.0f%%%s\n", mark, obj.Description, value*100, optionalTag)
	}

	if prog.ChosenBranch != "" {
		fmt.Fprintf(&sb, "\nChosen path: %s\n", prog.ChosenBranch)
	}
	if prog.Status == StatusInProgress {
		fmt.Fprintf(&sb, "\nTime invested: %d minutes\n", prog.TimeInvested)
	}

	return sb.String(), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func sortedFactions(m map[faction.ID]int) []faction.ID {
	ids := make([]faction.ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
