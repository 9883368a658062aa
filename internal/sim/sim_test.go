package sim

import (
	"math"
	"testing"
)

// openRoom returns walls with no interior cells so movement and vision tests
// control their own geometry. The world boundary still counts as solid.
func openRoom(t *testing.T, cfg Config) *Walls {
	t.Helper()
	walls, err := WallsFromLayout(Layout{
		GridUnit: cfg.GridUnit,
		Width:    cfg.WorldWidth,
		Height:   cfg.WorldHeight,
	})
	if err != nil {
		t.Fatalf("open room layout: %v", err)
	}
	return walls
}

func newTestWorld(t *testing.T, cfg Config, mode Mode) *World {
	t.Helper()
	cfg = cfg.normalized()
	w, err := NewWorld(WorldOptions{
		Config: cfg,
		Walls:  openRoom(t, cfg),
		Mode:   mode,
		Seed:   1,
	})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

// idleStrategy does nothing; tests drive agents directly.
type idleStrategy struct{}

func (idleStrategy) Execute(*Agent, float64) {}

func mustSpawn(t *testing.T, w *World, spec SpawnSpec) *Agent {
	t.Helper()
	if spec.Strategy == nil {
		spec.Strategy = idleStrategy{}
	}
	a, err := w.SpawnAgent(spec)
	if err != nil {
		t.Fatalf("SpawnAgent: %v", err)
	}
	return a
}

func stepDT(cfg Config) float64 {
	return 1.0 / float64(cfg.TickRate)
}

func angleOf(deg float64) *float64 {
	rad := deg * math.Pi / 180
	return &rad
}

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
