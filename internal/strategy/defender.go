package strategy

import "github.com/andronedrei/arena-battle/internal/sim"

func init() {
	Register("defender", func() sim.Strategy { return &Defender{} })
}

// leashRatio bounds how far a defender strays from its anchor, as a multiple
// of agent radius.
const leashRatio = 6

// Defender holds the ground where it spawned. It engages anything that comes
// into view but returns to its anchor instead of chasing.
type Defender struct {
	anchor    sim.Vec2
	hasAnchor bool
	approach  approach
}

func (s *Defender) Execute(a *sim.Agent, dt float64) {
	if !s.hasAnchor {
		s.anchor = a.Position()
		s.hasAnchor = true
	}
	leash := leashRatio * a.Radius()

	if target, ok := a.ClosestEnemy(); ok {
		engage(a, target)
		if a.Position().DistSq(s.anchor) > leash*leash {
			s.approach.step(a, dt, s.anchor)
		}
		return
	}

	reloadWhenIdle(a)
	if a.Position().DistSq(s.anchor) > a.Radius()*a.Radius() {
		s.approach.step(a, dt, s.anchor)
		return
	}
	// Idle on station: keep the target bearing ahead of the gun so it
	// sweeps continuously and the vision cone covers all approaches.
	a.SetTargetGunAngle(sim.NormalizeAngle(a.GunAngle() + 0.5))
}
