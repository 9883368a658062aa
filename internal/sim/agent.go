package sim

import (
	"math"
	"sort"
)

// AgentID is a compact numeric identity. IDs wrap around the uint16 space but
// are never reused while the owning agent is alive.
type AgentID = uint16

// MaxEntityID bounds the agent and bullet id spaces.
const MaxEntityID = math.MaxUint16

// CollisionKind distinguishes what blocked a movement attempt.
type CollisionKind int

const (
	CollisionNone CollisionKind = iota
	CollisionWall
	CollisionAgent
)

func (k CollisionKind) String() string {
	switch k {
	case CollisionWall:
		return "wall"
	case CollisionAgent:
		return "agent"
	default:
		return "none"
	}
}

// Obstruction records what stopped an agent's last movement attempt.
type Obstruction struct {
	Kind  CollisionKind
	Agent AgentID // set when Kind is CollisionAgent
	Cell  [2]int  // set when Kind is CollisionWall
}

const infiniteAmmo = -1

// Agent is a live combatant. All fields are owned by the World's tick loop;
// strategies interact through the exported accessors and intent methods.
type Agent struct {
	world *World

	id     AgentID
	team   Team
	pos    Vec2
	radius float64

	gunAngle       float64
	targetGunAngle float64
	gunTurnSpeed   float64

	health float64
	damage float64
	speed  float64

	cooldown    float64 // seconds until the weapon may fire again
	wantFire    bool
	ammo        int // bullets left in the magazine, infiniteAmmo when unlimited
	reloadTimer float64
	reloading   bool

	timeAlive float64
	detected  map[AgentID]struct{}
	blocked   *Obstruction

	strategy     Strategy
	strategyName string
}

// SpawnSpec describes one agent to create. Zero-valued tuning fields fall
// back to the world config defaults.
type SpawnSpec struct {
	Pos      Vec2
	Team     Team
	Strategy Strategy
	// StrategyName tags log events; purely informational.
	StrategyName string
	// GunAngle optionally fixes the initial gun angle. When nil the agent
	// faces the arena center: east from the left half, west from the right.
	GunAngle *float64
	Health   float64
	Damage   float64
	Speed    float64
}

// Identity and transform accessors.

func (a *Agent) ID() AgentID {
	return a.id
}

func (a *Agent) Team() Team {
	return a.team
}

func (a *Agent) Position() Vec2 {
	return a.pos
}

func (a *Agent) X() float64 {
	return a.pos.X
}

func (a *Agent) Y() float64 {
	return a.pos.Y
}

func (a *Agent) Radius() float64 {
	return a.radius
}

func (a *Agent) GunAngle() float64 {
	return a.gunAngle
}

func (a *Agent) Health() float64 {
	return a.health
}

func (a *Agent) IsAlive() bool {
	return a.health > 0
}

func (a *Agent) TimeAlive() float64 {
	return a.timeAlive
}

// Ammo returns the bullets left in the magazine; ok is false for infinite ammo.
func (a *Agent) Ammo() (count int, ok bool) {
	if a.ammo == infiniteAmmo {
		return 0, false
	}
	return a.ammo, true
}

func (a *Agent) Reloading() bool {
	return a.reloading
}

// Arena returns the read-only view strategies use to inspect other entities.
func (a *Agent) Arena() ArenaView {
	return ArenaView{w: a.world}
}

// Movement.

// Move attempts to advance one tick's worth of travel in the given direction.
// The move is rejected wholly on collision; Blocked/BlockedBy report what was
// hit so the strategy can react next tick.
func (a *Agent) Move(dt float64, dir Direction) {
	vec := dir.Vector()
	next := a.pos.Add(vec.Scale(a.speed * dt))

	obstruction := a.world.checkMove(a, next)
	if obstruction == nil {
		a.pos = next
		a.blocked = nil
		return
	}
	a.blocked = obstruction
}

// MoveTowards moves along the dominant cardinal axis toward the target.
func (a *Agent) MoveTowards(dt float64, target Vec2) {
	delta := target.Sub(a.pos)

	var dir Direction
	if math.Abs(delta.X) > math.Abs(delta.Y) {
		if delta.X > 0 {
			dir = East
		} else {
			dir = West
		}
	} else {
		if delta.Y > 0 {
			dir = North
		} else {
			dir = South
		}
	}
	a.Move(dt, dir)
}

func (a *Agent) Blocked() bool {
	return a.blocked != nil
}

// BlockedBy returns what stopped the last movement attempt, if anything.
func (a *Agent) BlockedBy() (Obstruction, bool) {
	if a.blocked == nil {
		return Obstruction{}, false
	}
	return *a.blocked, true
}

// Aiming and firing.

// SetTargetGunAngle sets the angle the gun turns toward over the next ticks.
func (a *Agent) SetTargetGunAngle(angle float64) {
	a.targetGunAngle = angle
}

// PointGunAt aims the gun at a world position.
func (a *Agent) PointGunAt(target Vec2) {
	a.SetTargetGunAngle(target.Sub(a.pos).Angle())
}

// Fire requests a shot this tick. Calling while the weapon is cooling down or
// reloading is a no-op; strategies may call it every tick and rely on the
// cooldown for rate limiting.
func (a *Agent) Fire() {
	a.wantFire = true
}

// StartReload begins refilling the magazine unless already reloading or the
// agent has infinite ammo.
func (a *Agent) StartReload() {
	if a.reloading || a.ammo == infiniteAmmo {
		return
	}
	a.reloading = true
	a.reloadTimer = a.world.cfg.ReloadDuration
}

// rotateGun turns the gun toward the target angle, capped by turn speed.
func (a *Agent) rotateGun(dt float64) {
	delta := NormalizeAngle(a.targetGunAngle - a.gunAngle)
	maxRotation := a.gunTurnSpeed * dt
	a.gunAngle = NormalizeAngle(a.gunAngle + math.Copysign(math.Min(math.Abs(delta), maxRotation), delta))
}

// Vision accessors.

// DetectedEnemies returns the ids of currently visible opposing agents,
// sorted for stable iteration.
func (a *Agent) DetectedEnemies() []AgentID {
	ids := make([]AgentID, 0, len(a.detected))
	for id := range a.detected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CanSee reports whether the given agent is in the detected set.
func (a *Agent) CanSee(id AgentID) bool {
	_, ok := a.detected[id]
	return ok
}

// RefreshDetection forces an immediate vision scan instead of waiting for the
// periodic refresh.
func (a *Agent) RefreshDetection() {
	a.world.refreshDetection(a)
}

// ClosestEnemy returns the nearest live detected enemy.
func (a *Agent) ClosestEnemy() (AgentInfo, bool) {
	var best AgentInfo
	bestDistSq := math.Inf(1)
	found := false
	for id := range a.detected {
		enemy, ok := a.world.agents[id]
		if !ok || !enemy.IsAlive() {
			continue
		}
		distSq := enemy.pos.DistSq(a.pos)
		if distSq < bestDistSq {
			bestDistSq = distSq
			best = enemy.info()
			found = true
		}
	}
	return best, found
}

// WeakestEnemy returns the live detected enemy with the least health, so
// strategies can focus fire.
func (a *Agent) WeakestEnemy() (AgentInfo, bool) {
	var best AgentInfo
	minHealth := math.Inf(1)
	found := false
	for id := range a.detected {
		enemy, ok := a.world.agents[id]
		if !ok || !enemy.IsAlive() {
			continue
		}
		if enemy.health < minHealth {
			minHealth = enemy.health
			best = enemy.info()
			found = true
		}
	}
	return best, found
}

func (a *Agent) info() AgentInfo {
	return AgentInfo{
		ID:       a.id,
		Team:     a.team,
		Pos:      a.pos,
		Radius:   a.radius,
		GunAngle: a.gunAngle,
		Health:   a.health,
	}
}
