package quest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cjnemes/sympathetic-resonance/internal/faction"
	"github.com/cjnemes/sympathetic-resonance/internal/player"
)

// ApplyQuestRewards translates a completed quest's declared rewards into
// mutations on the player and faction collaborators and returns an
// itemized summary. Application is ordered and deliberately not atomic:
// side effects already applied stay applied if a later step has nothing
// to do. Experience, items, and capabilities are reported only; their
// accounting belongs to external systems.
func (e *Engine) ApplyQuestRewards(questID string, p *player.Player, factions *faction.System) (string, error) {
	def, ok := e.catalog.Get(questID)
	if !ok {
		return "", fmt.Errorf("quest %q: %w", questID, ErrNotFound)
	}

	prog, ok := e.progress[questID]
	if !ok {
		return "", fmt.Errorf("no progress for quest %q: %w", questID, ErrNotFound)
	}
	if prog.Status != StatusCompleted {
		return "", fmt.Errorf("quest %q is not completed: %w", def.Title, ErrInvalidTransition)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Quest Completed: %s\n\nRewards:\n", def.Title)

	if def.Rewards.Experience > 0 {
		fmt.Fprintf(&sb, "* %d experience points\n", def.Rewards.Experience)
	}

	if bonus := def.Rewards.Attributes.MentalAcuity; bonus > 0 {
		p.Attributes.MentalAcuity += bonus
		fmt.Fprintf(&sb, "* +%d Mental Acuity\n", bonus)
	}
	if bonus := def.Rewards.Attributes.ResonanceSensitivity; bonus > 0 {
		p.Attributes.ResonanceSensitivity += bonus
		fmt.Fprintf(&sb, "* +%d Resonance Sensitivity\n", bonus)
	}

	// Theory bonuses only deepen understanding the player already has;
	// unstarted theories are skipped without error.
	for _, theoryID := range sortedKeys(def.Rewards.TheoryBonuses) {
		level, started := p.Theories[theoryID]
		if !started {
			continue
		}
		bonus := def.Rewards.TheoryBonuses[theoryID]
		level += bonus
		if level > 1.0 {
			level = 1.0
		}
		p.Theories[theoryID] = level
		fmt.Fprintf(&sb, "* +%.1f%% understanding in %s\n", bonus*100, theoryID)
	}

	for _, fid := range sortedFactions(def.Rewards.FactionChanges) {
		delta := def.Rewards.FactionChanges[fid]
		factions.ModifyReputationWithReason(fid, delta, "completed quest "+def.ID)
		fmt.Fprintf(&sb, "* %+d faction standing with %s\n", delta, fid.DisplayName())
	}

	for _, capability := range def.Rewards.Capabilities {
		fmt.Fprintf(&sb, "* New capability unlocked: %s\n", capability)
	}

	if len(def.Rewards.Items) > 0 {
		fmt.Fprintf(&sb, "* Items received: %s\n", strings.Join(def.Rewards.Items, ", "))
	}

	for _, unlocked := range def.Rewards.UnlockedQuests {
		if e.global.UnlockQuestLine(unlocked) {
			fmt.Fprintf(&sb, "* New quest available: %s\n", unlocked)
		}
	}

	return sb.String(), nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
