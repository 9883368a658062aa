package sim

// Strategy drives one agent. Execute runs once per tick on the simulation
// goroutine; implementations mutate only their own agent through its intent
// methods and read the arena through a.Arena().
type Strategy interface {
	Execute(a *Agent, dt float64)
}

// StrategyFunc adapts a plain function to the Strategy interface.
type StrategyFunc func(a *Agent, dt float64)

func (f StrategyFunc) Execute(a *Agent, dt float64) {
	f(a, dt)
}
