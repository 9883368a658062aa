package strategy

import (
	"math"

	"github.com/andronedrei/arena-battle/internal/sim"
)

// aimTolerance is how close the gun must be to the target bearing before a
// shot is worth spending the cooldown on.
const aimTolerance = 0.1

// engage aims at the target and fires once the gun is close enough to the
// bearing. Returns true so callers can chain it as "handled this tick".
func engage(a *sim.Agent, target sim.AgentInfo) bool {
	a.PointGunAt(target.Pos)
	bearing := target.Pos.Sub(a.Position()).Angle()
	if math.Abs(sim.NormalizeAngle(bearing-a.GunAngle())) <= aimTolerance {
		a.Fire()
	}
	return true
}

// reloadWhenIdle tops up a partially spent magazine while nothing is in
// sight, so the agent does not start the next fight short on ammo.
func reloadWhenIdle(a *sim.Agent) {
	if ammo, limited := a.Ammo(); limited && ammo == 0 && !a.Reloading() {
		a.StartReload()
	}
}

// wander keeps an agent drifting in a direction, re-rolling it on a timer or
// whenever the agent runs into something.
type wander struct {
	dir   sim.Direction
	timer float64
}

func (w *wander) step(a *sim.Agent, dt float64) {
	w.timer -= dt
	if w.timer <= 0 || a.Blocked() {
		dirs := sim.Directions()
		w.dir = dirs[a.Arena().Rand().Intn(len(dirs))]
		w.timer = 0.5 + a.Arena().Rand().Float64()*1.5
	}
	a.Move(dt, w.dir)
}

// approach walks toward a point, sidestepping along the perpendicular axis
// when the straight path is blocked.
type approach struct {
	sidestep      sim.Direction
	sidestepTimer float64
}

func (ap *approach) step(a *sim.Agent, dt float64, target sim.Vec2) {
	if ap.sidestepTimer > 0 {
		ap.sidestepTimer -= dt
		a.Move(dt, ap.sidestep)
		return
	}
	a.MoveTowards(dt, target)
	if !a.Blocked() {
		return
	}
	// Pick a perpendicular escape and commit to it briefly so the agent
	// does not oscillate against the obstacle.
	bearing := target.Sub(a.Position()).Angle()
	perp := bearing + math.Pi/2
	if a.Arena().Rand().Intn(2) == 0 {
		perp = bearing - math.Pi/2
	}
	ap.sidestep = sim.DirectionFromAngle(perp)
	ap.sidestepTimer = 0.4
	a.Move(dt, ap.sidestep)
}
