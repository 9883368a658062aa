package sim

import (
	"sort"
	"testing"

	"pgregory.net/rapid"
)

// chaosStrategy exercises every intent the simulation accepts, driven by the
// world's seeded random source so each rapid case is reproducible.
type chaosStrategy struct{}

func (chaosStrategy) Execute(a *Agent, dt float64) {
	rng := a.Arena().Rand()
	dirs := Directions()
	a.Move(dt, dirs[rng.Intn(len(dirs))])
	if rng.Intn(4) == 0 {
		a.SetTargetGunAngle(rng.Float64()*6.28 - 3.14)
	}
	if rng.Intn(2) == 0 {
		a.Fire()
	}
	if rng.Intn(16) == 0 {
		a.StartReload()
	}
}

func checkWorldInvariants(t *rapid.T, w *World) {
	for id, a := range w.agents {
		if a.health < 0 {
			t.Fatalf("agent %d health %g below zero", id, a.health)
		}
		if a.health == 0 {
			t.Fatalf("agent %d dead but not pruned", id)
		}
		for seen := range a.detected {
			if seen == id {
				t.Fatalf("agent %d detects itself", id)
			}
			other, ok := w.agents[seen]
			if !ok {
				t.Fatalf("agent %d detects pruned agent %d", id, seen)
			}
			if other.team == a.team {
				t.Fatalf("agent %d detects teammate %d", id, seen)
			}
		}
	}

	snap := w.Snapshot()
	if !sort.SliceIsSorted(snap.Agents, func(i, j int) bool { return snap.Agents[i].ID < snap.Agents[j].ID }) {
		t.Fatalf("snapshot agents not sorted")
	}
	for _, as := range snap.Agents {
		if as.Health <= 0 {
			t.Fatalf("snapshot carries dead agent %d", as.ID)
		}
		if _, ok := w.agents[as.ID]; !ok {
			t.Fatalf("snapshot carries unknown agent %d", as.ID)
		}
	}
}

func TestWorldInvariantsUnderChaos(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := DefaultConfig()
		cfg.ShootCooldown = rapid.Float64Range(0.1, 1.5).Draw(t, "cooldown")
		cfg.MagazineSize = rapid.IntRange(0, 4).Draw(t, "magazine")
		cfg.AgentDamage = rapid.Float64Range(10, 120).Draw(t, "damage")
		cfg = cfg.normalized()

		walls, err := WallsFromLayout(Layout{
			GridUnit: cfg.GridUnit,
			Width:    cfg.WorldWidth,
			Height:   cfg.WorldHeight,
		})
		if err != nil {
			t.Fatalf("layout: %v", err)
		}
		w, err := NewWorld(WorldOptions{
			Config: cfg,
			Walls:  walls,
			Seed:   rapid.Int64Range(1, 1<<30).Draw(t, "seed"),
		})
		if err != nil {
			t.Fatalf("NewWorld: %v", err)
		}

		perTeam := rapid.IntRange(1, 4).Draw(t, "perTeam")
		spacing := cfg.AgentRadius * 3
		for i := 0; i < perTeam; i++ {
			y := cfg.WorldHeight/2 + float64(i)*spacing
			if _, err := w.SpawnAgent(SpawnSpec{
				Pos: Vec2{X: 200, Y: y}, Team: TeamA, Strategy: chaosStrategy{},
			}); err != nil {
				t.Fatalf("spawn A: %v", err)
			}
			if _, err := w.SpawnAgent(SpawnSpec{
				Pos: Vec2{X: 1080, Y: y}, Team: TeamB, Strategy: chaosStrategy{},
			}); err != nil {
				t.Fatalf("spawn B: %v", err)
			}
		}

		ticks := rapid.IntRange(1, 240).Draw(t, "ticks")
		dt := stepDT(cfg)
		for i := 0; i < ticks; i++ {
			w.Step(dt)
			checkWorldInvariants(t, w)
		}
	})
}
