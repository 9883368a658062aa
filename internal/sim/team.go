package sim

// Team identifies the side an agent or bullet belongs to.
type Team int

const (
	TeamNeutral Team = iota
	TeamA
	TeamB
)

func (t Team) String() string {
	switch t {
	case TeamA:
		return "team-a"
	case TeamB:
		return "team-b"
	default:
		return "neutral"
	}
}

// Opponent returns the opposing team, or neutral for neutral.
func (t Team) Opponent() Team {
	switch t {
	case TeamA:
		return TeamB
	case TeamB:
		return TeamA
	default:
		return TeamNeutral
	}
}
