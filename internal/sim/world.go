package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"github.com/andronedrei/arena-battle/logging"
	"github.com/andronedrei/arena-battle/logging/combat"
	"github.com/andronedrei/arena-battle/logging/lifecycle"
	"github.com/andronedrei/arena-battle/logging/simulation"
)

// World owns every entity in one match. It is not safe for concurrent use;
// the Match loop is the only goroutine that may call Step or the mutating
// methods once the match is running.
type World struct {
	cfg   Config
	walls *Walls
	mode  Mode

	agents  map[AgentID]*Agent
	bullets map[BulletID]*Bullet

	nextAgentID  AgentID
	nextBulletID BulletID

	tick    uint64
	elapsed float64

	rng       *rand.Rand
	ctx       context.Context
	publisher logging.Publisher

	result *Result
}

// Result is the terminal outcome of a match.
type Result struct {
	Winner Team
	Draw   bool
	Reason string
}

// WorldOptions bundles the construction inputs for a World.
type WorldOptions struct {
	Config Config
	// Walls defaults to the stock layout when nil.
	Walls *Walls
	// Mode defaults to deathmatch when nil.
	Mode Mode
	// Seed fixes the random source; 0 keeps it unseeded for tests that
	// want determinism off.
	Seed      int64
	Publisher logging.Publisher
}

// NewWorld builds an empty world. Wall layout errors are returned rather than
// logged; a malformed arena must abort match start.
func NewWorld(opts WorldOptions) (*World, error) {
	cfg := opts.Config.normalized()

	walls := opts.Walls
	if walls == nil {
		var err error
		walls, err = WallsFromLayout(DefaultLayout())
		if err != nil {
			return nil, fmt.Errorf("default wall layout: %w", err)
		}
	}
	width, height := walls.Bounds()
	if width != cfg.WorldWidth || height != cfg.WorldHeight {
		return nil, fmt.Errorf("wall layout is %gx%g but world is %gx%g", width, height, cfg.WorldWidth, cfg.WorldHeight)
	}

	mode := opts.Mode
	if mode == nil {
		mode = NewDeathmatch()
	}

	publisher := opts.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	return &World{
		cfg:       cfg,
		walls:     walls,
		mode:      mode,
		agents:    make(map[AgentID]*Agent),
		bullets:   make(map[BulletID]*Bullet),
		rng:       rand.New(rand.NewSource(seed)),
		ctx:       context.Background(),
		publisher: publisher,
	}, nil
}

// Config returns the world's tuning values.
func (w *World) Config() Config {
	return w.cfg
}

// Walls returns the static obstacle grid.
func (w *World) Walls() *Walls {
	return w.walls
}

// Tick returns the number of completed simulation steps.
func (w *World) Tick() uint64 {
	return w.tick
}

// Elapsed returns the simulated seconds since the first step.
func (w *World) Elapsed() float64 {
	return w.elapsed
}

// Mode returns the active game mode.
func (w *World) Mode() Mode {
	return w.mode
}

// Ended reports whether a terminal result has been reached.
func (w *World) Ended() bool {
	return w.result != nil
}

// Result returns the match outcome once the world has ended.
func (w *World) Result() (Result, bool) {
	if w.result == nil {
		return Result{}, false
	}
	return *w.result, true
}

// Agent returns the live agent with the given id.
func (w *World) Agent(id AgentID) (*Agent, bool) {
	a, ok := w.agents[id]
	return a, ok
}

// AgentCount returns the number of live agents.
func (w *World) AgentCount() int {
	return len(w.agents)
}

// AliveOnTeam counts live agents on the given team.
func (w *World) AliveOnTeam(team Team) int {
	n := 0
	for _, a := range w.agents {
		if a.team == team && a.IsAlive() {
			n++
		}
	}
	return n
}

// SpawnAgent adds an agent to the world. Spawning on top of a wall or
// another agent is a configuration error and is rejected.
func (w *World) SpawnAgent(spec SpawnSpec) (*Agent, error) {
	if spec.Strategy == nil {
		return nil, errors.New("spawn spec has no strategy")
	}
	radius := w.cfg.AgentRadius
	if w.walls.CircleOverlaps(spec.Pos.X, spec.Pos.Y, radius) {
		return nil, fmt.Errorf("spawn position (%g, %g) intersects a wall", spec.Pos.X, spec.Pos.Y)
	}
	for id, other := range w.agents {
		minDist := radius + other.radius
		if spec.Pos.DistSq(other.pos) < minDist*minDist {
			return nil, fmt.Errorf("spawn position (%g, %g) overlaps agent %d", spec.Pos.X, spec.Pos.Y, id)
		}
	}

	id, err := w.allocAgentID()
	if err != nil {
		return nil, err
	}

	health := spec.Health
	if health <= 0 {
		health = w.cfg.AgentHealth
	}
	damage := spec.Damage
	if damage <= 0 {
		damage = w.cfg.AgentDamage
	}
	speed := spec.Speed
	if speed <= 0 {
		speed = w.cfg.AgentSpeed
	}

	gunAngle := 0.0
	if spec.GunAngle != nil {
		gunAngle = NormalizeAngle(*spec.GunAngle)
	} else if spec.Pos.X > w.cfg.WorldWidth/2 {
		gunAngle = math.Pi // face west from the right half
	}

	ammo := infiniteAmmo
	if w.cfg.MagazineSize > 0 {
		ammo = w.cfg.MagazineSize
	}

	a := &Agent{
		world:          w,
		id:             id,
		team:           spec.Team,
		pos:            spec.Pos,
		radius:         radius,
		gunAngle:       gunAngle,
		targetGunAngle: gunAngle,
		gunTurnSpeed:   w.cfg.GunTurnSpeed,
		health:         health,
		damage:         damage,
		speed:          speed,
		ammo:           ammo,
		detected:       make(map[AgentID]struct{}),
		strategy:       spec.Strategy,
		strategyName:   spec.StrategyName,
	}
	w.agents[id] = a

	lifecycle.AgentSpawned(w.ctx, w.publisher, w.tick, agentRef(id), lifecycle.AgentSpawnedPayload{
		Team:     int(spec.Team),
		X:        spec.Pos.X,
		Y:        spec.Pos.Y,
		Strategy: spec.StrategyName,
	})
	return a, nil
}

// Step advances the simulation by one fixed time slice. The phase order is
// load-bearing: detection, strategies with movement, weapon timers and fire
// intents, bullet flight, pruning, then the mode's win check.
func (w *World) Step(dt float64) {
	if w.result != nil {
		return
	}
	w.elapsed += dt

	if w.tick%w.cfg.DetectionInterval == 0 {
		for _, a := range w.agents {
			w.refreshDetection(a)
		}
	}

	for _, a := range w.agents {
		if !a.IsAlive() {
			continue
		}
		a.timeAlive += dt
		a.rotateGun(dt)
		w.runStrategy(a, dt)
	}

	for _, a := range w.agents {
		a.advanceWeapon(dt)
		if a.wantFire {
			a.wantFire = false
			if a.IsAlive() {
				w.requestFire(a)
			}
		}
	}

	w.advanceBullets(dt)
	w.pruneDead()

	w.mode.Update(w, dt)
	if result, over := w.mode.Outcome(w); over {
		w.finish(result)
	} else if w.cfg.MatchDuration > 0 && w.elapsed >= w.cfg.MatchDuration {
		w.finish(w.timeoutResult())
	}

	w.tick++
}

// runStrategy executes one agent's strategy, containing panics so a faulty
// strategy costs its agent the tick but never the match.
func (w *World) runStrategy(a *Agent, dt float64) {
	defer func() {
		if r := recover(); r != nil {
			simulation.StrategyFault(w.ctx, w.publisher, w.tick, agentRef(a.id), simulation.StrategyFaultPayload{
				Strategy: a.strategyName,
				Panic:    fmt.Sprint(r),
			})
		}
	}()
	a.strategy.Execute(a, dt)
}

// applyDamage reduces the target's health, clamping at zero, and publishes
// the combat events.
func (w *World) applyDamage(target *Agent, b *Bullet) {
	if !target.IsAlive() {
		// The collision pass skips dead agents, so a hit landing here means
		// the phase order broke.
		simulation.InvariantViolation(w.ctx, w.publisher, w.tick, agentRef(target.id), simulation.InvariantViolationPayload{
			Invariant: "damage applied to defeated agent",
			Observed:  target.health,
			Clamped:   0,
		})
		return
	}
	target.health -= b.damage
	if target.health < 0 {
		target.health = 0
	}

	combat.Damage(w.ctx, w.publisher, w.tick, agentRef(b.owner), agentRef(target.id), combat.DamagePayload{
		BulletID:     b.id,
		Amount:       b.damage,
		TargetHealth: target.health,
	})
	if target.health == 0 {
		combat.Defeat(w.ctx, w.publisher, w.tick, agentRef(b.owner), agentRef(target.id), combat.DefeatPayload{
			BulletID: b.id,
			Team:     int(target.team),
		})
	}
}

func (w *World) removeBullet(id BulletID) {
	delete(w.bullets, id)
}

// pruneDead removes defeated agents and scrubs them from every detection set
// so no strategy ever observes a dead enemy.
func (w *World) pruneDead() {
	for id, a := range w.agents {
		if a.IsAlive() {
			continue
		}
		w.mode.AgentDefeated(w, a)
		delete(w.agents, id)
		for _, other := range w.agents {
			delete(other.detected, id)
		}
		lifecycle.AgentRemoved(w.ctx, w.publisher, w.tick, agentRef(id))
	}
}

// timeoutResult decides a match that hit its duration cap: more survivors
// win, equal counts draw.
func (w *World) timeoutResult() Result {
	aliveA := w.AliveOnTeam(TeamA)
	aliveB := w.AliveOnTeam(TeamB)
	switch {
	case aliveA > aliveB:
		return Result{Winner: TeamA, Reason: "time limit, more survivors"}
	case aliveB > aliveA:
		return Result{Winner: TeamB, Reason: "time limit, more survivors"}
	default:
		return Result{Draw: true, Reason: "time limit"}
	}
}

func (w *World) finish(result Result) {
	if w.result != nil {
		return
	}
	w.result = &result
	lifecycle.MatchEnded(w.ctx, w.publisher, w.tick, matchRef(), lifecycle.MatchEndedPayload{
		Mode:   w.mode.Name(),
		Winner: int(result.Winner),
		Draw:   result.Draw,
		Reason: result.Reason,
	})
}

func (w *World) allocAgentID() (AgentID, error) {
	for i := 0; i <= MaxEntityID; i++ {
		id := w.nextAgentID
		w.nextAgentID++
		if _, taken := w.agents[id]; !taken {
			return id, nil
		}
	}
	return 0, errors.New("agent id space exhausted")
}

func (w *World) allocBulletID() (BulletID, error) {
	for i := 0; i <= MaxEntityID; i++ {
		id := w.nextBulletID
		w.nextBulletID++
		if _, taken := w.bullets[id]; !taken {
			return id, nil
		}
	}
	return 0, errors.New("bullet id space exhausted")
}

func agentRef(id AgentID) logging.EntityRef {
	return logging.EntityRef{ID: strconv.FormatUint(uint64(id), 10), Kind: logging.EntityKindAgent}
}

func matchRef() logging.EntityRef {
	return logging.EntityRef{ID: "match", Kind: logging.EntityKindMatch}
}
