package sim

import "sort"

// AgentSnapshot is one agent's broadcastable state.
type AgentSnapshot struct {
	ID       AgentID `json:"id"`
	Team     int     `json:"team"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	GunAngle float64 `json:"gunAngle"`
	Health   float64 `json:"health"`
	// Ammo is omitted for infinite magazines.
	Ammo      *int `json:"ammo,omitempty"`
	Reloading bool `json:"reloading,omitempty"`
}

// BulletSnapshot is one bullet's broadcastable state.
type BulletSnapshot struct {
	ID BulletID `json:"id"`
	X  float64  `json:"x"`
	Y  float64  `json:"y"`
	VX float64  `json:"vx"`
	VY float64  `json:"vy"`
}

// Snapshot is an immutable copy of the observable world state at one tick.
// Entity slices are sorted by id so identical states serialize identically.
type Snapshot struct {
	Tick    uint64           `json:"tick"`
	Elapsed float64          `json:"elapsed"`
	Mode    string           `json:"mode"`
	Agents  []AgentSnapshot  `json:"agents"`
	Bullets []BulletSnapshot `json:"bullets"`
	KOTH    *KOTHState       `json:"koth,omitempty"`
	CTF     *CTFState        `json:"ctf,omitempty"`
}

// Snapshot copies the observable world state. The returned value shares no
// memory with the live world, so it can cross goroutine boundaries freely.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:    w.tick,
		Elapsed: w.elapsed,
		Mode:    w.mode.Name(),
		Agents:  make([]AgentSnapshot, 0, len(w.agents)),
		Bullets: make([]BulletSnapshot, 0, len(w.bullets)),
	}

	for _, a := range w.agents {
		as := AgentSnapshot{
			ID:        a.id,
			Team:      int(a.team),
			X:         a.pos.X,
			Y:         a.pos.Y,
			GunAngle:  a.gunAngle,
			Health:    a.health,
			Reloading: a.reloading,
		}
		if a.ammo != infiniteAmmo {
			ammo := a.ammo
			as.Ammo = &ammo
		}
		snap.Agents = append(snap.Agents, as)
	}
	sort.Slice(snap.Agents, func(i, j int) bool { return snap.Agents[i].ID < snap.Agents[j].ID })

	for _, b := range w.bullets {
		snap.Bullets = append(snap.Bullets, BulletSnapshot{
			ID: b.id,
			X:  b.pos.X,
			Y:  b.pos.Y,
			VX: b.vel.X,
			VY: b.vel.Y,
		})
	}
	sort.Slice(snap.Bullets, func(i, j int) bool { return snap.Bullets[i].ID < snap.Bullets[j].ID })

	w.mode.appendSnapshot(&snap)
	return snap
}
