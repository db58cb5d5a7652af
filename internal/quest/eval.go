package quest

import "github.com/cjnemes/sympathetic-resonance/internal/player"

// IsAvailable reports whether the player may begin a quest. If a progress
// record already exists, availability is governed solely by its status:
// requirements are checked once at discovery, and started or finished
// quests are not re-validated.
func (e *Engine) IsAvailable(def *Definition, p *player.Player) bool {
	if prog, ok := e.progress[def.ID]; ok {
		return prog.Status == StatusAvailable
	}
	return e.MeetsRequirements(&def.Requirements, p)
}

// AvailableQuests returns every catalog quest the player may begin, in
// stable catalog order.
func (e *Engine) AvailableQuests(p *player.Player) []*Definition {
	var available []*Definition
	for _, def := range e.catalog.All() {
		if e.IsAvailable(def, p) {
			available = append(available, def)
		}
	}
	return available
}

// MeetsRequirements evaluates a requirement set against the player
// snapshot. Sub-checks run in a fixed order and short-circuit on the
// first failure: theory levels, faction minimums, faction restrictions,
// prerequisite quests, attribute floors, capability tokens, location
// membership.
func (e *Engine) MeetsRequirements(req *Requirements, p *player.Player) bool {
	for _, tr := range req.Theories {
		if p.TheoryUnderstanding(tr.TheoryID) < tr.MinLevel {
			return false
		}
	}

	// A faction the player has no standing entry for fails a minimum
	// outright rather than counting as zero.
	for _, fr := range req.FactionMinimums {
		standing, ok := p.FactionStandings[fr.Faction]
		if !ok || standing < fr.Min {
			return false
		}
	}

	// Restrictions only bind when a standing entry exists.
	for _, fr := range req.FactionRestrictions {
		if standing, ok := p.FactionStandings[fr.Faction]; ok && standing > fr.Max {
			return false
		}
	}

	for _, prereq := range req.Prerequisites {
		prog, ok := e.progress[prereq]
		if !ok || prog.Status != StatusCompleted {
			return false
		}
	}

	if req.Attributes.MinMentalAcuity > 0 && p.Attributes.MentalAcuity < req.Attributes.MinMentalAcuity {
		return false
	}
	if req.Attributes.MinResonanceSensitivity > 0 && p.Attributes.ResonanceSensitivity < req.Attributes.MinResonanceSensitivity {
		return false
	}
	if req.Attributes.MinPlaytimeMinutes > 0 && p.PlaytimeMinutes < req.Attributes.MinPlaytimeMinutes {
		return false
	}

	for _, token := range req.Capabilities {
		if !p.HasCapability(token) {
			return false
		}
	}

	if len(req.Locations) > 0 {
		found := false
		for _, loc := range req.Locations {
			if loc == p.CurrentLocation {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}
