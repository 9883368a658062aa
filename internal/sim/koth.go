package sim

// ZoneStatus names who currently holds the hill.
type ZoneStatus string

const (
	ZoneNeutral   ZoneStatus = "neutral"
	ZoneHeldA     ZoneStatus = "team-a"
	ZoneHeldB     ZoneStatus = "team-b"
	ZoneContested ZoneStatus = "contested"
)

// KOTHState is the hill snapshot block shared with clients and strategies.
type KOTHState struct {
	Status        ZoneStatus `json:"status"`
	ScoreA        float64    `json:"scoreA"`
	ScoreB        float64    `json:"scoreB"`
	ZoneX         float64    `json:"zoneX"`
	ZoneY         float64    `json:"zoneY"`
	ZoneRadius    float64    `json:"zoneRadius"`
	TimeRemaining float64    `json:"timeRemaining"`
}

// KOTHMode scores teams for exclusive control of a circular zone. Points
// accrue in fixed intervals; a contested or empty zone scores nobody.
type KOTHMode struct {
	cfg     KOTHConfig
	status  ZoneStatus
	scoreA  float64
	scoreB  float64
	elapsed float64
	timer   float64 // seconds until the next scoring pulse
}

func NewKOTH(cfg KOTHConfig) *KOTHMode {
	cfg = cfg.normalized()
	return &KOTHMode{
		cfg:    cfg,
		status: ZoneNeutral,
		timer:  cfg.ScoringInterval,
	}
}

func (m *KOTHMode) Name() string {
	return "koth"
}

// State returns a copy of the current hill state.
func (m *KOTHMode) State() KOTHState {
	remaining := 0.0
	if m.cfg.MaxDuration > 0 {
		remaining = m.cfg.MaxDuration - m.elapsed
		if remaining < 0 {
			remaining = 0
		}
	}
	return KOTHState{
		Status:        m.status,
		ScoreA:        m.scoreA,
		ScoreB:        m.scoreB,
		ZoneX:         m.cfg.ZoneCenter.X,
		ZoneY:         m.cfg.ZoneCenter.Y,
		ZoneRadius:    m.cfg.ZoneRadius,
		TimeRemaining: remaining,
	}
}

func (m *KOTHMode) Update(w *World, dt float64) {
	m.elapsed += dt
	m.status = m.zoneStatus(w)

	m.timer -= dt
	for m.timer <= 0 {
		m.timer += m.cfg.ScoringInterval
		points := m.cfg.PointsPerSecond * m.cfg.ScoringInterval
		switch m.status {
		case ZoneHeldA:
			m.scoreA += points
		case ZoneHeldB:
			m.scoreB += points
		}
	}
}

// zoneStatus classifies the hill by which teams have a live agent whose
// center sits inside the zone.
func (m *KOTHMode) zoneStatus(w *World) ZoneStatus {
	inA, inB := false, false
	radiusSq := m.cfg.ZoneRadius * m.cfg.ZoneRadius
	for _, a := range w.agents {
		if !a.IsAlive() || a.pos.DistSq(m.cfg.ZoneCenter) > radiusSq {
			continue
		}
		switch a.team {
		case TeamA:
			inA = true
		case TeamB:
			inB = true
		}
	}
	switch {
	case inA && inB:
		return ZoneContested
	case inA:
		return ZoneHeldA
	case inB:
		return ZoneHeldB
	default:
		return ZoneNeutral
	}
}

func (m *KOTHMode) Outcome(w *World) (Result, bool) {
	if m.cfg.MaxPoints > 0 {
		if m.scoreA >= m.cfg.MaxPoints {
			return Result{Winner: TeamA, Reason: "point limit"}, true
		}
		if m.scoreB >= m.cfg.MaxPoints {
			return Result{Winner: TeamB, Reason: "point limit"}, true
		}
	}
	if m.cfg.MaxDuration > 0 && m.elapsed >= m.cfg.MaxDuration {
		switch {
		case m.scoreA > m.scoreB:
			return Result{Winner: TeamA, Reason: "time limit, higher score"}, true
		case m.scoreB > m.scoreA:
			return Result{Winner: TeamB, Reason: "time limit, higher score"}, true
		default:
			return Result{Draw: true, Reason: "time limit, tied score"}, true
		}
	}
	return Result{}, false
}

func (m *KOTHMode) AgentDefeated(*World, *Agent) {}

func (m *KOTHMode) appendSnapshot(snap *Snapshot) {
	state := m.State()
	snap.KOTH = &state
}
