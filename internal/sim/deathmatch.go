package sim

// Deathmatch is the elimination ruleset: the last team with a live agent
// wins. The win check only arms once both teams have fielded someone, so a
// staggered spawn sequence cannot end the match instantly.
type Deathmatch struct {
	armed bool
}

func NewDeathmatch() *Deathmatch {
	return &Deathmatch{}
}

func (d *Deathmatch) Name() string {
	return "deathmatch"
}

func (d *Deathmatch) Update(w *World, dt float64) {
	if !d.armed && w.AliveOnTeam(TeamA) > 0 && w.AliveOnTeam(TeamB) > 0 {
		d.armed = true
	}
}

func (d *Deathmatch) Outcome(w *World) (Result, bool) {
	if !d.armed {
		return Result{}, false
	}
	aliveA := w.AliveOnTeam(TeamA)
	aliveB := w.AliveOnTeam(TeamB)
	switch {
	case aliveA == 0 && aliveB == 0:
		return Result{Draw: true, Reason: "mutual elimination"}, true
	case aliveB == 0:
		return Result{Winner: TeamA, Reason: "elimination"}, true
	case aliveA == 0:
		return Result{Winner: TeamB, Reason: "elimination"}, true
	default:
		return Result{}, false
	}
}

func (d *Deathmatch) AgentDefeated(*World, *Agent) {}

func (d *Deathmatch) appendSnapshot(*Snapshot) {}
