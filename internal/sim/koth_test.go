package sim

import "testing"

func kothConfig() Config {
	cfg := DefaultConfig()
	cfg.KOTH = KOTHConfig{
		ZoneCenter:      Vec2{X: 640, Y: 360},
		ZoneRadius:      100,
		PointsPerSecond: 10,
		ScoringInterval: 0.5,
		MaxPoints:       1000,
		MaxDuration:     180,
	}
	return cfg
}

func TestKOTHExclusiveHoldScores(t *testing.T) {
	cfg := kothConfig()
	mode := NewKOTH(cfg.KOTH)
	w := newTestWorld(t, cfg, mode)
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 640, Y: 360}, Team: TeamA})
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 200, Y: 360}, Team: TeamB})

	dt := stepDT(cfg)
	for w.Elapsed() < 1.2 {
		w.Step(dt)
	}
	state := mode.State()
	if state.Status != ZoneHeldA {
		t.Fatalf("zone status = %s, want %s", state.Status, ZoneHeldA)
	}
	// Two 0.5s scoring pulses of 5 points each.
	if state.ScoreA < 10 || state.ScoreB != 0 {
		t.Fatalf("scores = %g/%g, want team A at 10+ and team B at 0", state.ScoreA, state.ScoreB)
	}
}

func TestKOTHPartialConfigStillScores(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KOTH = KOTHConfig{ZoneCenter: Vec2{X: 640, Y: 360}, ZoneRadius: 100}
	mode := NewKOTH(cfg.KOTH)
	w := newTestWorld(t, cfg, mode)
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 640, Y: 360}, Team: TeamA})

	dt := stepDT(cfg)
	for w.Elapsed() < 1.2 {
		w.Step(dt)
	}
	def := DefaultConfig().KOTH
	want := def.PointsPerSecond * def.ScoringInterval
	if got := mode.State().ScoreA; got < want {
		t.Fatalf("scoreA = %g, want at least one %g-point pulse at the stock interval", got, want)
	}
}

func TestKOTHContestedZoneScoresNobody(t *testing.T) {
	cfg := kothConfig()
	mode := NewKOTH(cfg.KOTH)
	w := newTestWorld(t, cfg, mode)
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 600, Y: 360}, Team: TeamA})
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 680, Y: 360}, Team: TeamB})

	dt := stepDT(cfg)
	for w.Elapsed() < 2.0 {
		w.Step(dt)
	}
	state := mode.State()
	if state.Status != ZoneContested {
		t.Fatalf("zone status = %s, want %s", state.Status, ZoneContested)
	}
	if state.ScoreA != 0 || state.ScoreB != 0 {
		t.Fatalf("contested zone scored %g/%g, want 0/0", state.ScoreA, state.ScoreB)
	}
}

func TestKOTHEmptyZoneIsNeutral(t *testing.T) {
	cfg := kothConfig()
	mode := NewKOTH(cfg.KOTH)
	w := newTestWorld(t, cfg, mode)
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 200, Y: 360}, Team: TeamA})

	w.Step(stepDT(cfg))
	if got := mode.State().Status; got != ZoneNeutral {
		t.Fatalf("zone status = %s, want %s", got, ZoneNeutral)
	}
}

func TestKOTHPointLimitWins(t *testing.T) {
	cfg := kothConfig()
	cfg.KOTH.MaxPoints = 20
	mode := NewKOTH(cfg.KOTH)
	w := newTestWorld(t, cfg, mode)
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 640, Y: 360}, Team: TeamA})
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 200, Y: 360}, Team: TeamB})

	dt := stepDT(cfg)
	for i := 0; i < 300 && !w.Ended(); i++ {
		w.Step(dt)
	}
	result, ok := w.Result()
	if !ok || result.Winner != TeamA {
		t.Fatalf("result = %+v, %v; want team A at the point limit", result, ok)
	}
}

func TestKOTHTimeLimitHigherScoreWins(t *testing.T) {
	cfg := kothConfig()
	cfg.KOTH.MaxDuration = 1.0
	mode := NewKOTH(cfg.KOTH)
	w := newTestWorld(t, cfg, mode)
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 640, Y: 360}, Team: TeamB})
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 200, Y: 360}, Team: TeamA})

	dt := stepDT(cfg)
	for i := 0; i < 200 && !w.Ended(); i++ {
		w.Step(dt)
	}
	result, ok := w.Result()
	if !ok || result.Winner != TeamB {
		t.Fatalf("result = %+v, %v; want team B on score at time limit", result, ok)
	}
}

func TestKOTHSnapshotBlock(t *testing.T) {
	cfg := kothConfig()
	mode := NewKOTH(cfg.KOTH)
	w := newTestWorld(t, cfg, mode)
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 640, Y: 360}, Team: TeamA})

	w.Step(stepDT(cfg))
	snap := w.Snapshot()
	if snap.KOTH == nil {
		t.Fatal("koth snapshot block missing")
	}
	if snap.CTF != nil {
		t.Fatal("ctf block must not appear in a koth match")
	}
	if snap.KOTH.ZoneX != 640 || snap.KOTH.ZoneRadius != 100 {
		t.Fatalf("zone geometry = (%g, r=%g), want (640, r=100)", snap.KOTH.ZoneX, snap.KOTH.ZoneRadius)
	}
}
