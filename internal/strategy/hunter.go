package strategy

import "github.com/andronedrei/arena-battle/internal/sim"

func init() {
	Register("hunter", func() sim.Strategy { return &Hunter{} })
}

// Hunter pursues the closest visible enemy and keeps firing while closing
// distance. With nothing in sight it sweeps the arena, remembering where it
// last saw a target.
type Hunter struct {
	wander   wander
	approach approach

	lastSeen    sim.Vec2
	hasLastSeen bool
}

func (s *Hunter) Execute(a *sim.Agent, dt float64) {
	if target, ok := a.ClosestEnemy(); ok {
		s.lastSeen = target.Pos
		s.hasLastSeen = true
		engage(a, target)
		s.approach.step(a, dt, target.Pos)
		return
	}

	reloadWhenIdle(a)
	if s.hasLastSeen {
		// Sweep the last known position before giving up the chase.
		if a.Position().DistSq(s.lastSeen) > a.Radius()*a.Radius() {
			a.SetTargetGunAngle(s.lastSeen.Sub(a.Position()).Angle())
			s.approach.step(a, dt, s.lastSeen)
			return
		}
		s.hasLastSeen = false
	}
	s.wander.step(a, dt)
}
