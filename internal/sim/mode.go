package sim

// Mode is a pluggable win-condition ruleset. Hooks run on the simulation
// goroutine inside Step, after combat has resolved for the tick.
type Mode interface {
	Name() string
	// Update advances mode-owned state (scoring timers, flags).
	Update(w *World, dt float64)
	// Outcome reports the terminal result once the mode's win condition holds.
	Outcome(w *World) (Result, bool)
	// AgentDefeated runs just before a dead agent is pruned.
	AgentDefeated(w *World, a *Agent)
	// appendSnapshot attaches mode-specific state to an outgoing snapshot.
	appendSnapshot(snap *Snapshot)
}
