package sim

import "testing"

func ctfConfig() Config {
	cfg := DefaultConfig()
	cfg.CTF = CTFConfig{
		BaseA:           Vec2{X: 100, Y: 360},
		BaseB:           Vec2{X: 1180, Y: 360},
		PickupRadius:    30,
		CaptureRadius:   150,
		AutoReturnAfter: 30,
		MaxCaptures:     1,
		MaxDuration:     300,
	}
	return cfg
}

// eastRunner drives an agent toward the right side of the arena.
type eastRunner struct{}

func (eastRunner) Execute(a *Agent, dt float64) {
	a.Move(dt, East)
}

func TestCTFPickupAndCarry(t *testing.T) {
	cfg := ctfConfig()
	mode := NewCTF(cfg.CTF)
	w := newTestWorld(t, cfg, mode)
	thief := mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 120, Y: 360}, Team: TeamB, Strategy: eastRunner{}})

	w.Step(stepDT(cfg))
	state := mode.State()
	if state.FlagA.Status != FlagCarried {
		t.Fatalf("flag A status = %s, want %s", state.FlagA.Status, FlagCarried)
	}
	if state.FlagA.Carrier == nil || *state.FlagA.Carrier != thief.ID() {
		t.Fatal("flag A should record the thief as carrier")
	}

	w.Step(stepDT(cfg))
	state = mode.State()
	if state.FlagA.X != thief.X() || state.FlagA.Y != thief.Y() {
		t.Fatal("carried flag must track the carrier's position")
	}
}

func TestCTFCaptureWins(t *testing.T) {
	cfg := ctfConfig()
	mode := NewCTF(cfg.CTF)
	w := newTestWorld(t, cfg, mode)
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 120, Y: 360}, Team: TeamB, Strategy: eastRunner{}, Speed: 500})

	dt := stepDT(cfg)
	for i := 0; i < 300 && !w.Ended(); i++ {
		w.Step(dt)
	}
	result, ok := w.Result()
	if !ok || result.Winner != TeamB {
		t.Fatalf("result = %+v, %v; want team B by capture", result, ok)
	}
	if mode.State().CapturesB != 1 {
		t.Fatalf("capturesB = %d, want 1", mode.State().CapturesB)
	}
}

func TestCTFNoCaptureWhileOwnFlagAway(t *testing.T) {
	cfg := ctfConfig()
	mode := NewCTF(cfg.CTF)
	w := newTestWorld(t, cfg, mode)
	thiefB := mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 120, Y: 360}, Team: TeamB})
	thiefA := mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 1160, Y: 360}, Team: TeamA})

	dt := stepDT(cfg)
	w.Step(dt)
	state := mode.State()
	if state.FlagA.Status != FlagCarried || state.FlagB.Status != FlagCarried {
		t.Fatalf("setup: flag statuses = %s/%s, want both carried", state.FlagA.Status, state.FlagB.Status)
	}

	// The team B carrier reaches its base while its own flag is stolen.
	thiefB.pos = Vec2{X: 1100, Y: 360}
	w.Step(dt)
	state = mode.State()
	if state.CapturesB != 0 {
		t.Fatalf("capturesB = %d, want 0 while flag B is carried", state.CapturesB)
	}
	if state.FlagA.Status != FlagCarried {
		t.Fatalf("flag A status = %s, want still %s", state.FlagA.Status, FlagCarried)
	}

	// Flag B drops with its thief; a dropped flag still blocks the capture.
	thiefA.health = 0
	w.Step(dt)
	state = mode.State()
	if state.FlagB.Status != FlagDropped {
		t.Fatalf("flag B status = %s, want %s", state.FlagB.Status, FlagDropped)
	}
	if state.CapturesB != 0 {
		t.Fatalf("capturesB = %d, want 0 while flag B is dropped", state.CapturesB)
	}

	// The carrier touches its own dropped flag, sending it home; the capture
	// lands on the following tick.
	thiefB.pos = Vec2{X: state.FlagB.X, Y: state.FlagB.Y}
	w.Step(dt)
	if got := mode.State().FlagB.Status; got != FlagAtBase {
		t.Fatalf("flag B status = %s, want %s after the return touch", got, FlagAtBase)
	}
	w.Step(dt)
	if got := mode.State().CapturesB; got != 1 {
		t.Fatalf("capturesB = %d, want 1 once flag B is home", got)
	}
}

func TestCTFCarrierDeathDropsFlag(t *testing.T) {
	cfg := ctfConfig()
	mode := NewCTF(cfg.CTF)
	w := newTestWorld(t, cfg, mode)
	thief := mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 120, Y: 360}, Team: TeamB, Strategy: eastRunner{}})

	dt := stepDT(cfg)
	for i := 0; i < 30; i++ {
		w.Step(dt)
	}
	if mode.State().FlagA.Status != FlagCarried {
		t.Fatal("setup: flag should be carried")
	}
	dropX := thief.X()

	thief.health = 0
	w.Step(dt)
	state := mode.State()
	if state.FlagA.Status != FlagDropped {
		t.Fatalf("flag A status = %s, want %s", state.FlagA.Status, FlagDropped)
	}
	if state.FlagA.Carrier != nil {
		t.Fatal("a dropped flag must have no carrier")
	}
	if !approxEqual(state.FlagA.X, dropX, cfg.AgentSpeed*dt+1e-6) {
		t.Fatalf("flag dropped at x=%g, want near the carrier's last position %g", state.FlagA.X, dropX)
	}
}

func TestCTFDroppedFlagAutoReturns(t *testing.T) {
	cfg := ctfConfig()
	cfg.CTF.AutoReturnAfter = 0.2
	mode := NewCTF(cfg.CTF)
	w := newTestWorld(t, cfg, mode)
	thief := mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 120, Y: 360}, Team: TeamB, Strategy: eastRunner{}})

	dt := stepDT(cfg)
	for i := 0; i < 30; i++ {
		w.Step(dt)
	}
	thief.health = 0
	w.Step(dt)
	if mode.State().FlagA.Status != FlagDropped {
		t.Fatal("setup: flag should be dropped")
	}

	for i := 0; i < 10; i++ {
		w.Step(dt)
	}
	if got := mode.State().FlagA.Status; got != FlagAtBase {
		t.Fatalf("flag A status = %s, want %s after auto-return", got, FlagAtBase)
	}
}

func TestCTFOwnTeamReturnsDroppedFlag(t *testing.T) {
	cfg := ctfConfig()
	mode := NewCTF(cfg.CTF)
	w := newTestWorld(t, cfg, mode)
	thief := mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 120, Y: 360}, Team: TeamB, Strategy: eastRunner{}})

	dt := stepDT(cfg)
	for i := 0; i < 60; i++ {
		w.Step(dt)
	}
	thief.health = 0
	w.Step(dt)
	state := mode.State()
	if state.FlagA.Status != FlagDropped {
		t.Fatal("setup: flag should be dropped")
	}

	// A defender walks onto the dropped flag.
	mustSpawn(t, w, SpawnSpec{
		Pos:  Vec2{X: state.FlagA.X + cfg.CTF.PickupRadius - 5, Y: state.FlagA.Y},
		Team: TeamA,
	})
	w.Step(dt)
	if got := mode.State().FlagA.Status; got != FlagAtBase {
		t.Fatalf("flag A status = %s, want %s after a defender touch", got, FlagAtBase)
	}
}

func TestCTFSnapshotBlock(t *testing.T) {
	cfg := ctfConfig()
	mode := NewCTF(cfg.CTF)
	w := newTestWorld(t, cfg, mode)
	mustSpawn(t, w, SpawnSpec{Pos: Vec2{X: 400, Y: 360}, Team: TeamA})

	w.Step(stepDT(cfg))
	snap := w.Snapshot()
	if snap.CTF == nil {
		t.Fatal("ctf snapshot block missing")
	}
	if snap.KOTH != nil {
		t.Fatal("koth block must not appear in a ctf match")
	}
	if snap.CTF.FlagA.Status != FlagAtBase || snap.CTF.FlagB.Status != FlagAtBase {
		t.Fatal("both flags should start at base")
	}
	if snap.CTF.FlagA.Carrier != nil {
		t.Fatal("a flag at base must have a nil carrier")
	}
}
