package game

// Mode is the party topology: how the four colors map onto logical
// controlling parties.
type Mode int

const (
	// TwoParty: two parties, each controlling two diagonal colors
	// (party 0 owns colors 0 and 2, party 1 owns colors 1 and 3).
	TwoParty Mode = iota
	// ThreeParty: three parties owning colors 0-2; color 3 is neutral and
	// played in rotation by whichever party currently holds it.
	ThreeParty
	// FourParty: four parties, one color each.
	FourParty
)

func (m Mode) String() string {
	switch m {
	case TwoParty:
		return "two-party"
	case ThreeParty:
		return "three-party"
	case FourParty:
		return "four-party"
	}
	return "unknown"
}

// Parties returns the number of controlling parties for the topology.
func (m Mode) Parties() int {
	switch m {
	case TwoParty:
		return 2
	case ThreeParty:
		return 3
	default:
		return 4
	}
}

// NeutralColor returns the rotating neutral color, or -1 if the topology has
// none.
func (m Mode) NeutralColor() Color {
	if m == ThreeParty {
		return 3
	}
	return -1
}

// PartyOf returns the party that permanently owns the color, or -1 for the
// neutral color in 3-party mode.
func (m Mode) PartyOf(c Color) int {
	switch m {
	case TwoParty:
		return int(c) % 2
	case ThreeParty:
		if c == 3 {
			return -1
		}
		return int(c)
	default:
		return int(c)
	}
}

// Allies returns the colors controlled by the same party as c, including c
// itself. holder is the party currently holding the neutral color; it is
// only consulted in 3-party mode.
func (m Mode) Allies(c Color, holder int) []Color {
	switch m {
	case TwoParty:
		if c%2 == 0 {
			return []Color{0, 2}
		}
		return []Color{1, 3}
	case ThreeParty:
		if c == 3 {
			return []Color{Color(holder), 3}
		}
		if holder == int(c) {
			return []Color{c, 3}
		}
		return []Color{c}
	default:
		return []Color{c}
	}
}

// Opponents returns the colors not controlled by c's party.
func (m Mode) Opponents(c Color, holder int) []Color {
	allied := make(map[Color]bool, 4)
	for _, a := range m.Allies(c, holder) {
		allied[a] = true
	}
	out := make([]Color, 0, 3)
	for v := Color(0); v < 4; v++ {
		if !allied[v] {
			out = append(out, v)
		}
	}
	return out
}
