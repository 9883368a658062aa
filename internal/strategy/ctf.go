package strategy

import "github.com/andronedrei/arena-battle/internal/sim"

func init() {
	Register("ctf", func() sim.Strategy { return &FlagRunner{} })
	Register("ctf-defender", func() sim.Strategy { return &FlagRunner{holdBase: true} })
}

// FlagRunner plays capture the flag by recomputing its role every tick:
// carry the enemy flag home when holding it, chase the thief when the own
// flag is taken, otherwise go for the enemy flag. The holdBase variant
// guards its own base instead of attacking. Outside a CTF match it degrades
// to a hunter-like chase.
type FlagRunner struct {
	holdBase bool

	hunter   Hunter
	approach approach
}

func (s *FlagRunner) Execute(a *sim.Agent, dt float64) {
	state, ok := a.Arena().CTF()
	if !ok {
		s.hunter.Execute(a, dt)
		return
	}
	ownFlag, enemyFlag := flagsFor(a.Team(), state)

	var goal sim.Vec2
	switch {
	case carriedBy(enemyFlag, a.ID()):
		// Carrying: sprint for the home base, shooting only what is
		// already in the way.
		goal = homeBase(a)
	case ownFlag.Status == sim.FlagCarried || ownFlag.Status == sim.FlagDropped:
		// Own flag is loose or stolen: its position is where the fight is.
		goal = sim.Vec2{X: ownFlag.X, Y: ownFlag.Y}
	case s.holdBase:
		goal = homeBase(a)
	default:
		goal = sim.Vec2{X: enemyFlag.X, Y: enemyFlag.Y}
	}

	if target, ok := a.ClosestEnemy(); ok {
		engage(a, target)
	} else {
		reloadWhenIdle(a)
		a.SetTargetGunAngle(goal.Sub(a.Position()).Angle())
	}
	s.approach.step(a, dt, goal)
}

// flagsFor splits the state into (own, enemy) flags for the given team.
func flagsFor(team sim.Team, state sim.CTFState) (own, enemy sim.FlagView) {
	if state.FlagA.Team == int(team) {
		return state.FlagA, state.FlagB
	}
	return state.FlagB, state.FlagA
}

// homeBase returns the agent's own base position from the world config. The
// own flag's current position cannot stand in for it once the flag moves.
func homeBase(a *sim.Agent) sim.Vec2 {
	cfg := a.Arena().Config().CTF
	if a.Team() == sim.TeamA {
		return cfg.BaseA
	}
	return cfg.BaseB
}

func carriedBy(f sim.FlagView, id sim.AgentID) bool {
	return f.Carrier != nil && *f.Carrier == id
}
