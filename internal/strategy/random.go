package strategy

import "github.com/andronedrei/arena-battle/internal/sim"

func init() {
	Register("random", func() sim.Strategy { return &Random{} })
}

// Random wanders the arena and fires opportunistically at whatever crosses
// its vision cone. Useful as a baseline opponent and in soak tests.
type Random struct {
	wander wander
}

func (s *Random) Execute(a *sim.Agent, dt float64) {
	s.wander.step(a, dt)

	if target, ok := a.ClosestEnemy(); ok {
		engage(a, target)
		return
	}
	reloadWhenIdle(a)
}
