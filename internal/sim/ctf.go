package sim

// FlagStatus names where a flag currently is.
type FlagStatus string

const (
	FlagAtBase  FlagStatus = "at-base"
	FlagCarried FlagStatus = "carried"
	FlagDropped FlagStatus = "dropped"
)

// FlagView is one flag's snapshot block. Carrier is nil unless the flag is
// being carried.
type FlagView struct {
	Team    int        `json:"team"`
	X       float64    `json:"x"`
	Y       float64    `json:"y"`
	Status  FlagStatus `json:"status"`
	Carrier *AgentID   `json:"carrier,omitempty"`
}

// CTFState is the capture-the-flag snapshot block.
type CTFState struct {
	FlagA         FlagView `json:"flagA"`
	FlagB         FlagView `json:"flagB"`
	CapturesA     int      `json:"capturesA"`
	CapturesB     int      `json:"capturesB"`
	TimeRemaining float64  `json:"timeRemaining"`
}

// flag is the mutable state of one team's flag.
type flag struct {
	team      Team
	base      Vec2
	pos       Vec2
	status    FlagStatus
	carrier   *AgentID
	dropTimer float64 // seconds a dropped flag has been waiting
}

func (f *flag) reset() {
	f.pos = f.base
	f.status = FlagAtBase
	f.carrier = nil
	f.dropTimer = 0
}

func (f *flag) drop(at Vec2) {
	f.pos = at
	f.status = FlagDropped
	f.carrier = nil
	f.dropTimer = 0
}

func (f *flag) view() FlagView {
	v := FlagView{
		Team:   int(f.team),
		X:      f.pos.X,
		Y:      f.pos.Y,
		Status: f.status,
	}
	if f.carrier != nil {
		id := *f.carrier
		v.Carrier = &id
	}
	return v
}

// CTFMode implements capture the flag. Each team's flag sits at its base;
// an enemy within pickup range carries it and scores by reaching its own
// base. Dropped flags return when touched by their own team or after the
// auto-return timeout.
type CTFMode struct {
	cfg       CTFConfig
	flagA     flag
	flagB     flag
	capturesA int // team A captures of the enemy flag
	capturesB int
	elapsed   float64
}

func NewCTF(cfg CTFConfig) *CTFMode {
	cfg = cfg.normalized()
	m := &CTFMode{cfg: cfg}
	m.flagA = flag{team: TeamA, base: cfg.BaseA}
	m.flagB = flag{team: TeamB, base: cfg.BaseB}
	m.flagA.reset()
	m.flagB.reset()
	return m
}

func (m *CTFMode) Name() string {
	return "ctf"
}

// State returns a copy of the current flag state.
func (m *CTFMode) State() CTFState {
	remaining := 0.0
	if m.cfg.MaxDuration > 0 {
		remaining = m.cfg.MaxDuration - m.elapsed
		if remaining < 0 {
			remaining = 0
		}
	}
	return CTFState{
		FlagA:         m.flagA.view(),
		FlagB:         m.flagB.view(),
		CapturesA:     m.capturesA,
		CapturesB:     m.capturesB,
		TimeRemaining: remaining,
	}
}

func (m *CTFMode) Update(w *World, dt float64) {
	m.elapsed += dt
	m.updateFlag(w, &m.flagA, dt)
	m.updateFlag(w, &m.flagB, dt)
}

func (m *CTFMode) updateFlag(w *World, f *flag, dt float64) {
	switch f.status {
	case FlagCarried:
		carrier, ok := w.agents[*f.carrier]
		if !ok || !carrier.IsAlive() {
			// Death drops are handled in AgentDefeated; this covers any
			// other way a carrier can vanish.
			f.drop(f.pos)
			return
		}
		f.pos = carrier.pos
		// A capture only counts while the capturing team's own flag sits at
		// its base; a stolen or dropped flag has to come home first.
		if m.flagOf(carrier.team).status != FlagAtBase {
			return
		}
		base := m.homeBase(carrier.team)
		if f.pos.DistSq(base) <= m.cfg.CaptureRadius*m.cfg.CaptureRadius {
			m.scoreCapture(carrier.team)
			f.reset()
		}

	case FlagDropped:
		if m.cfg.AutoReturnAfter > 0 {
			f.dropTimer += dt
			if f.dropTimer >= m.cfg.AutoReturnAfter {
				f.reset()
				return
			}
		}
		if m.tryReturn(w, f) {
			return
		}
		m.tryPickup(w, f)

	case FlagAtBase:
		m.tryPickup(w, f)
	}
}

// tryPickup hands the flag to the first live enemy inside pickup range.
func (m *CTFMode) tryPickup(w *World, f *flag) {
	radiusSq := m.cfg.PickupRadius * m.cfg.PickupRadius
	for _, a := range w.agents {
		if a.team == f.team || a.team == TeamNeutral || !a.IsAlive() {
			continue
		}
		if m.carrying(a.id) != nil {
			continue
		}
		if a.pos.DistSq(f.pos) <= radiusSq {
			id := a.id
			f.status = FlagCarried
			f.carrier = &id
			f.pos = a.pos
			f.dropTimer = 0
			return
		}
	}
}

// tryReturn sends a dropped flag home when one of its own team touches it.
func (m *CTFMode) tryReturn(w *World, f *flag) bool {
	radiusSq := m.cfg.PickupRadius * m.cfg.PickupRadius
	for _, a := range w.agents {
		if a.team != f.team || !a.IsAlive() {
			continue
		}
		if a.pos.DistSq(f.pos) <= radiusSq {
			f.reset()
			return true
		}
	}
	return false
}

// carrying returns the flag the agent carries, if any.
func (m *CTFMode) carrying(id AgentID) *flag {
	if m.flagA.carrier != nil && *m.flagA.carrier == id {
		return &m.flagA
	}
	if m.flagB.carrier != nil && *m.flagB.carrier == id {
		return &m.flagB
	}
	return nil
}

// flagOf returns the flag belonging to the given team.
func (m *CTFMode) flagOf(team Team) *flag {
	if team == TeamA {
		return &m.flagA
	}
	return &m.flagB
}

func (m *CTFMode) homeBase(team Team) Vec2 {
	if team == TeamA {
		return m.cfg.BaseA
	}
	return m.cfg.BaseB
}

func (m *CTFMode) scoreCapture(team Team) {
	switch team {
	case TeamA:
		m.capturesA++
	case TeamB:
		m.capturesB++
	}
}

func (m *CTFMode) Outcome(w *World) (Result, bool) {
	if m.cfg.MaxCaptures > 0 {
		if m.capturesA >= m.cfg.MaxCaptures {
			return Result{Winner: TeamA, Reason: "capture limit"}, true
		}
		if m.capturesB >= m.cfg.MaxCaptures {
			return Result{Winner: TeamB, Reason: "capture limit"}, true
		}
	}
	if m.cfg.MaxDuration > 0 && m.elapsed >= m.cfg.MaxDuration {
		switch {
		case m.capturesA > m.capturesB:
			return Result{Winner: TeamA, Reason: "time limit, more captures"}, true
		case m.capturesB > m.capturesA:
			return Result{Winner: TeamB, Reason: "time limit, more captures"}, true
		default:
			return Result{Draw: true, Reason: "time limit, tied captures"}, true
		}
	}
	return Result{}, false
}

// AgentDefeated drops any flag the dying agent carried at its last position.
func (m *CTFMode) AgentDefeated(w *World, a *Agent) {
	if f := m.carrying(a.id); f != nil {
		f.drop(a.pos)
	}
}

func (m *CTFMode) appendSnapshot(snap *Snapshot) {
	state := m.State()
	snap.CTF = &state
}
