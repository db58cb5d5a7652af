// Package player holds the player state the quest engine reads during
// requirement evaluation and mutates (attributes, theory levels) during
// reward application. Everything else about the player belongs to other
// systems.
package player

import (
	"sort"

	"github.com/cjnemes/sympathetic-resonance/internal/faction"
)

// MasteryThreshold is the understanding level at which a theory counts
// as mastered.
const MasteryThreshold = 0.8

// Attributes are the core attributes quests can gate on and reward.
type Attributes struct {
	MentalAcuity         int `json:"mental_acuity"`
	ResonanceSensitivity int `json:"resonance_sensitivity"`
}

// Player is the engine-facing view of the player.
type Player struct {
	Name       string     `json:"name"`
	Attributes Attributes `json:"attributes"`

	// Theories maps theory ID to understanding level (0.0-1.0).
	Theories map[string]float64 `json:"theories"`

	// FactionStandings is the player's own view of faction disposition,
	// read during requirement checks. Mutation goes through the faction
	// collaborator.
	FactionStandings map[faction.ID]int `json:"faction_standings"`

	// Capabilities are unlocked gameplay ability tokens, checked by
	// membership only.
	Capabilities map[string]bool `json:"capabilities"`

	CurrentLocation string `json:"current_location"`
	PlaytimeMinutes int    `json:"playtime_minutes"`
}

// New creates a player with starting attributes in the tutorial chamber.
func New(name string) *Player {
	return &Player{
		Name: name,
		Attributes: Attributes{
			MentalAcuity:         25,
			ResonanceSensitivity: 20,
		},
		Theories:         make(map[string]float64),
		FactionStandings: make(map[faction.ID]int),
		Capabilities:     make(map[string]bool),
		CurrentLocation:  "tutorial_chamber",
	}
}

// TheoryUnderstanding returns the understanding level of a theory,
// or 0 if the player has not started it.
func (p *Player) TheoryUnderstanding(theoryID string) float64 {
	return p.Theories[theoryID]
}

// HasTheory reports whether the player has begun studying a theory.
func (p *Player) HasTheory(theoryID string) bool {
	_, ok := p.Theories[theoryID]
	return ok
}

// HasCapability reports whether a capability token is unlocked.
func (p *Player) HasCapability(token string) bool {
	return p.Capabilities[token]
}

// GrantCapability unlocks a capability token.
func (p *Player) GrantCapability(token string) {
	if p.Capabilities == nil {
		p.Capabilities = make(map[string]bool)
	}
	p.Capabilities[token] = true
}

// MasteredTheories returns the IDs of theories at or above the mastery
// threshold, sorted for deterministic output.
func (p *Player) MasteredTheories() []string {
	var mastered []string
	for id, level := range p.Theories {
		if level >= MasteryThreshold {
			mastered = append(mastered, id)
		}
	}
	sort.Strings(mastered)
	return mastered
}

// MasteredCount returns how many theories the player has mastered.
func (p *Player) MasteredCount() int {
	count := 0
	for _, level := range p.Theories {
		if level >= MasteryThreshold {
			count++
		}
	}
	return count
}
