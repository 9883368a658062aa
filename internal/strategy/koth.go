package strategy

import "github.com/andronedrei/arena-battle/internal/sim"

func init() {
	Register("koth", func() sim.Strategy { return &ZoneHolder{} })
}

// ZoneHolder plays king of the hill: push to the zone, hold the center, and
// shoot anything that contests it. Outside a KOTH match it degrades to a
// hunter-like chase since there is no zone to hold.
type ZoneHolder struct {
	hunter   Hunter
	approach approach
}

func (s *ZoneHolder) Execute(a *sim.Agent, dt float64) {
	state, ok := a.Arena().KOTH()
	if !ok {
		s.hunter.Execute(a, dt)
		return
	}
	zone := sim.Vec2{X: state.ZoneX, Y: state.ZoneY}

	if target, ok := a.ClosestEnemy(); ok {
		engage(a, target)
	} else {
		reloadWhenIdle(a)
		a.SetTargetGunAngle(sim.NormalizeAngle(a.GunAngle() + 0.5))
	}

	// Hold well inside the zone edge so a blocked step never costs control.
	holdRadius := state.ZoneRadius / 2
	if a.Position().DistSq(zone) > holdRadius*holdRadius {
		s.approach.step(a, dt, zone)
	}
}
