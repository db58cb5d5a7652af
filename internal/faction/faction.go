package faction

// ID identifies one of the five factions of the magical community.
type ID string

const (
	MagistersCouncil     ID = "magisters_council"     // Academic/Regulatory
	OrderOfHarmony       ID = "order_of_harmony"      // Conservative/Traditional
	IndustrialConsortium ID = "industrial_consortium" // Commercial/Progressive
	UndergroundNetwork   ID = "underground_network"   // Libertarian/Revolutionary
	NeutralScholars      ID = "neutral_scholars"      // Academic/Independent
)

// All returns every faction ID in canonical order.
func All() []ID {
	return []ID{
		MagistersCouncil,
		OrderOfHarmony,
		IndustrialConsortium,
		UndergroundNetwork,
		NeutralScholars,
	}
}

// Valid reports whether id names a known faction.
func Valid(id ID) bool {
	for _, f := range All() {
		if f == id {
			return true
		}
	}
	return false
}

// DisplayName returns the faction's presentation name.
func (id ID) DisplayName() string {
	switch id {
	case MagistersCouncil:
		return "The Magisters' Council"
	case OrderOfHarmony:
		return "The Order of Natural Harmony"
	case IndustrialConsortium:
		return "The Industrial Consortium"
	case UndergroundNetwork:
		return "The Underground Network"
	case NeutralScholars:
		return "The Neutral Scholars"
	default:
		return string(id)
	}
}
