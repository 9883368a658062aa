package sim

import "math/rand"

// AgentInfo is a read-only copy of another agent's observable state.
type AgentInfo struct {
	ID       AgentID
	Team     Team
	Pos      Vec2
	Radius   float64
	GunAngle float64
	Health   float64
}

// BulletInfo is a read-only copy of a bullet's observable state.
type BulletInfo struct {
	ID    BulletID
	Owner AgentID
	Team  Team
	Pos   Vec2
	Vel   Vec2
}

// ArenaView is the window strategies get onto the world. Everything it
// returns is a copy; nothing reached through it can mutate the simulation.
type ArenaView struct {
	w *World
}

// Config returns the world's tuning values.
func (v ArenaView) Config() Config {
	return v.w.cfg
}

// Bounds returns the world dimensions in pixels.
func (v ArenaView) Bounds() (width, height float64) {
	return v.w.cfg.WorldWidth, v.w.cfg.WorldHeight
}

// Mode returns the active game mode name.
func (v ArenaView) Mode() string {
	return v.w.mode.Name()
}

// Tick returns the current simulation tick.
func (v ArenaView) Tick() uint64 {
	return v.w.tick
}

// Agent returns the observable state of an agent, dead or alive.
func (v ArenaView) Agent(id AgentID) (AgentInfo, bool) {
	a, ok := v.w.agents[id]
	if !ok {
		return AgentInfo{}, false
	}
	return a.info(), true
}

// Teammates returns the live agents on the given team, excluding the id in
// exclude when it matches.
func (v ArenaView) Teammates(team Team, exclude AgentID) []AgentInfo {
	var out []AgentInfo
	for id, a := range v.w.agents {
		if id == exclude || a.team != team || !a.IsAlive() {
			continue
		}
		out = append(out, a.info())
	}
	return out
}

// HasWallAt reports whether the pixel position falls in a solid wall cell.
func (v ArenaView) HasWallAt(x, y float64) bool {
	return v.w.walls.HasWallAt(x, y)
}

// CanStandAt reports whether an agent-sized circle fits at the position
// without touching a wall. Other agents are not considered.
func (v ArenaView) CanStandAt(pos Vec2) bool {
	return !v.w.walls.CircleOverlaps(pos.X, pos.Y, v.w.cfg.AgentRadius)
}

// KOTH returns the hill state when the world runs king of the hill.
func (v ArenaView) KOTH() (KOTHState, bool) {
	m, ok := v.w.mode.(*KOTHMode)
	if !ok {
		return KOTHState{}, false
	}
	return m.State(), true
}

// CTF returns the flag state when the world runs capture the flag.
func (v ArenaView) CTF() (CTFState, bool) {
	m, ok := v.w.mode.(*CTFMode)
	if !ok {
		return CTFState{}, false
	}
	return m.State(), true
}

// Rand exposes the world's deterministic random source so strategies stay
// reproducible under a seeded world.
func (v ArenaView) Rand() *rand.Rand {
	return v.w.rng
}
