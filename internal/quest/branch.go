package quest

import (
	"fmt"
	"strings"

	"github.com/cjnemes/sympathetic-resonance/internal/faction"
	"github.com/cjnemes/sympathetic-resonance/internal/player"
)

// SelectBranch commits an in-progress quest to one of its branches. A
// branch may be chosen at most once per quest instance and is gated by
// its own requirements. Its objectives join the tracked set, so its
// non-optional objectives block completion from here on. The branch's
// faction implications apply immediately: taking a side is itself the
// diplomatic act.
func (e *Engine) SelectBranch(questID, branchName string, p *player.Player, factions *faction.System) (string, error) {
	def, ok := e.catalog.Get(questID)
	if !ok {
		return "", fmt.Errorf("quest %q: %w", questID, ErrNotFound)
	}

	prog, ok := e.progress[questID]
	if !ok {
		return "", fmt.Errorf("quest %q was never started: %w", def.Title, ErrNotFound)
	}
	if prog.Status != StatusInProgress {
		return "", fmt.Errorf("cannot choose a path for quest %q with status %s: %w", def.Title, prog.Status, ErrInvalidTransition)
	}
	if prog.ChosenBranch != "" {
		return "", fmt.Errorf("quest %q is already committed to the %q path: %w", def.Title, prog.ChosenBranch, ErrInvalidTransition)
	}

	br, ok := def.Branches[branchName]
	if !ok {
		return "", fmt.Errorf("quest %q has no path %q: %w", def.Title, branchName, ErrNotFound)
	}
	if !e.MeetsRequirements(&br.Requirements, p) {
		return "", fmt.Errorf("path %q: %w", br.Name, ErrRequirementsNotMet)
	}

	prog.ChosenBranch = branchName
	for i := range br.Objectives {
		prog.Objectives[br.Objectives[i].ID] = newObjectiveProgress(&br.Objectives[i])
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You have chosen: %s\n%s\n", br.Name, br.Description)

	for _, fid := range sortedFactions(br.FactionImplications) {
		delta := br.FactionImplications[fid]
		factions.ModifyReputationWithReason(fid, delta, "chose "+branchName+" in quest "+def.ID)
		fmt.Fprintf(&sb, "* %s standing: %+d\n", fid.DisplayName(), delta)
	}

	if len(br.Objectives) > 0 {
		sb.WriteString("\nNew objectives:\n")
		for _, obj := range br.Objectives {
			fmt.Fprintf(&sb, "  - %s\n", obj.Description)
		}
	}

	return sb.String(), nil
}
