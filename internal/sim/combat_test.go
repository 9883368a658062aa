package sim

import (
	"testing"
)

// stepUntil runs the world until the predicate holds or maxTicks pass.
func stepUntil(t *testing.T, w *World, maxTicks int, pred func() bool) {
	t.Helper()
	dt := stepDT(w.Config())
	for i := 0; i < maxTicks; i++ {
		if pred() {
			return
		}
		w.Step(dt)
	}
	if !pred() {
		t.Fatalf("condition not reached within %d ticks", maxTicks)
	}
}

func TestBulletDamagesEnemyOnce(t *testing.T) {
	cfg := DefaultConfig()
	w := newTestWorld(t, cfg, nil)
	shooter := mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 300, Y: 360}, Team: TeamA, GunAngle: angleOf(0), Strategy: fireOnce{}})
	target := mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 420, Y: 360}, Team: TeamB})

	stepUntil(t, w, 200, func() bool { return target.Health() < cfg.AgentHealth })

	if got := target.Health(); got != cfg.AgentHealth-cfg.AgentDamage {
		t.Fatalf("target health = %g, want %g", got, cfg.AgentHealth-cfg.AgentDamage)
	}
	if shooter.Health() != cfg.AgentHealth {
		t.Fatal("shooter must not damage itself")
	}
	if countBullets(w) != 0 {
		t.Fatal("a bullet that hit must be destroyed")
	}
}

func TestBulletNeverHitsTeammate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BulletLifetime = 2
	w := newTestWorld(t, cfg, nil)
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 300, Y: 360}, Team: TeamA, GunAngle: angleOf(0), Strategy: fireOnce{}})
	mate := mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 420, Y: 360}, Team: TeamA})

	dt := stepDT(cfg)
	ticks := int(cfg.BulletLifetime/dt) + 10
	for i := 0; i < ticks; i++ {
		w.Step(dt)
	}
	if mate.Health() != cfg.AgentHealth {
		t.Fatalf("teammate took damage: health %g", mate.Health())
	}
}

func TestBulletStoppedByWall(t *testing.T) {
	cfg := DefaultConfig()
	walls, err := WallsFromLayout(Layout{
		GridUnit: cfg.GridUnit,
		Width:    cfg.WorldWidth,
		Height:   cfg.WorldHeight,
		Rects:    []LayoutRect{{CX: 70, CY: 0, W: 1, H: int(cfg.WorldHeight / cfg.GridUnit)}},
	})
	if err != nil {
		t.Fatal(err)
	}
	w, err := NewWorld(WorldOptions{Config: cfg, Walls: walls, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 300, Y: 360}, Team: TeamA, GunAngle: angleOf(0), Strategy: fireOnce{}})
	// Behind the wall from the shooter's perspective.
	target := mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 420, Y: 360}, Team: TeamB})

	dt := stepDT(cfg)
	ticks := int(cfg.BulletLifetime/dt) + 10
	for i := 0; i < ticks; i++ {
		w.Step(dt)
	}
	if target.Health() != cfg.AgentHealth {
		t.Fatal("wall should have absorbed every bullet")
	}
}

func TestBulletExpiresWithoutDamage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BulletLifetime = 0.25
	w := newTestWorld(t, cfg, nil)
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 300, Y: 360}, Team: TeamA, GunAngle: angleOf(0), Strategy: fireOnce{}})
	// Far beyond lifetime range: 100 px/s * 0.25 s = 25 px of travel.
	target := mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 900, Y: 360}, Team: TeamB})

	dt := stepDT(cfg)
	w.Step(dt)
	if countBullets(w) != 1 {
		t.Fatal("expected a live bullet after the first tick")
	}
	for i := 0; i < 20; i++ {
		w.Step(dt)
	}
	if countBullets(w) != 0 {
		t.Fatal("bullet should have expired")
	}
	if target.Health() != cfg.AgentHealth {
		t.Fatal("expired bullet must not deal damage")
	}
}

func TestHealthClampsAtZeroAndAgentIsPruned(t *testing.T) {
	cfg := DefaultConfig()
	w := newTestWorld(t, cfg, nil)
	a := mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 300, Y: 360}, Team: TeamA, GunAngle: angleOf(0), Strategy: fireOnce{}, Damage: 250})
	target := mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 420, Y: 360}, Team: TeamB})
	targetID := target.ID()

	stepUntil(t, w, 200, func() bool {
		_, alive := w.Agent(targetID)
		return !alive
	})

	if target.Health() != 0 {
		t.Fatalf("health = %g, want exactly 0 after an overkill hit", target.Health())
	}
	if a.CanSee(targetID) {
		t.Fatal("pruned agents must be scrubbed from detection sets")
	}
	for _, snap := range w.Snapshot().Agents {
		if snap.ID == targetID {
			t.Fatal("pruned agent still present in snapshot")
		}
	}
}

func TestStrategyPanicDoesNotCrashTheWorld(t *testing.T) {
	cfg := DefaultConfig()
	w := newTestWorld(t, cfg, nil)
	mustSpawn(t, w, SpawnSpec{
		Pos:  Vec2{X: 300, Y: 360},
		Team: TeamA,
		Strategy: StrategyFunc(func(a *Agent, dt float64) {
			panic("faulty strategy")
		}),
		StrategyName: "faulty",
	})
	mover := mustSpawn(t, w, SpawnSpec{
		Pos:      Vec2{X: 500, Y: 360},
		Team:     TeamB,
		Strategy: StrategyFunc(func(a *Agent, dt float64) { a.Move(dt, East) }),
	})

	dt := stepDT(cfg)
	startX := mover.X()
	for i := 0; i < 5; i++ {
		w.Step(dt)
	}
	if !(mover.X() > startX) {
		t.Fatal("other agents must keep running after a strategy panic")
	}
}

func TestDeathmatchOutcome(t *testing.T) {
	cfg := DefaultConfig()
	w := newTestWorld(t, cfg, NewDeathmatch())
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 300, Y: 360}, Team: TeamA, GunAngle: angleOf(0), Strategy: fireOnce{}})
	target := mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 420, Y: 360}, Team: TeamB})
	targetID := target.ID()

	dt := stepDT(cfg)
	hitsNeeded := int(cfg.AgentHealth / cfg.AgentDamage)
	maxTicks := hitsNeeded*int(cfg.ShootCooldown/dt+1) + 400
	for i := 0; i < maxTicks && !w.Ended(); i++ {
		w.Step(dt)
	}

	result, ok := w.Result()
	if !ok {
		t.Fatal("match should have ended by elimination")
	}
	if result.Winner != TeamA || result.Draw {
		t.Fatalf("result = %+v, want team A win", result)
	}
	if _, alive := w.Agent(targetID); alive {
		t.Fatal("loser should have been pruned")
	}

	// A finished world ignores further steps.
	tick := w.Tick()
	w.Step(dt)
	if w.Tick() != tick {
		t.Fatal("a finished world must not advance")
	}
}

func TestMatchDurationTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MatchDuration = 0.2
	w := newTestWorld(t, cfg, NewDeathmatch())
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 300, Y: 360}, Team: TeamA})
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 900, Y: 360}, Team: TeamB})
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 900, Y: 500}, Team: TeamB})

	dt := stepDT(cfg)
	for i := 0; i < 100 && !w.Ended(); i++ {
		w.Step(dt)
	}
	result, ok := w.Result()
	if !ok {
		t.Fatal("duration cap should end the match")
	}
	if result.Winner != TeamB {
		t.Fatalf("result = %+v, want team B on survivor count", result)
	}
}
