package sim

import (
	"errors"
	"sync"
	"time"

	"github.com/andronedrei/arena-battle/logging"
	"github.com/andronedrei/arena-battle/logging/lifecycle"
	"github.com/andronedrei/arena-battle/logging/simulation"
)

// Phase is the lifecycle state of a match.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseRunning
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return "waiting"
	}
}

// SnapshotSink receives the match's outgoing state. Both methods are called
// from the match goroutine; implementations must not block for long or the
// tick cadence suffers.
type SnapshotSink interface {
	DeliverSnapshot(Snapshot) error
	MatchEnded(Result, Snapshot)
}

// Match drives a World at a fixed tick rate on its own goroutine and hands
// decimated snapshots to the sink. The world must not be touched by other
// goroutines once Start has been called.
type Match struct {
	world     *World
	sink      SnapshotSink
	publisher logging.Publisher

	mu     sync.Mutex
	phase  Phase
	result *Result

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	tickObserver func(time.Duration)
}

// NewMatch wraps a prepared world. Spawn agents before calling Start.
func NewMatch(world *World, sink SnapshotSink, publisher logging.Publisher) *Match {
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	return &Match{
		world:     world,
		sink:      sink,
		publisher: publisher,
		phase:     PhaseWaiting,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// SetTickObserver installs a per-tick duration callback for telemetry.
// Must be called before Start.
func (m *Match) SetTickObserver(fn func(time.Duration)) {
	m.tickObserver = fn
}

// Phase returns the current lifecycle state.
func (m *Match) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Result returns the outcome once the match has ended.
func (m *Match) Result() (Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.result == nil {
		return Result{}, false
	}
	return *m.result, true
}

// Done is closed when the match goroutine exits.
func (m *Match) Done() <-chan struct{} {
	return m.done
}

// Start launches the tick loop. It fails if the match already ran or no
// agents were spawned.
func (m *Match) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseWaiting {
		return errors.New("match already started")
	}
	if m.world.AgentCount() == 0 {
		return errors.New("cannot start a match with no agents")
	}
	m.phase = PhaseRunning

	lifecycle.MatchStarted(m.world.ctx, m.publisher, m.world.tick, matchRef(), lifecycle.MatchStartedPayload{
		Mode:   m.world.mode.Name(),
		Agents: m.world.AgentCount(),
	})

	go m.run()
	return nil
}

// Stop asks the loop to exit between ticks. A stopped match ends without a
// result unless the world already finished.
func (m *Match) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *Match) run() {
	defer close(m.done)

	cfg := m.world.cfg
	dt := 1.0 / float64(cfg.TickRate)
	ticksPerBroadcast := cfg.TickRate / cfg.BroadcastRate
	if ticksPerBroadcast < 1 {
		ticksPerBroadcast = 1
	}

	ticker := time.NewTicker(time.Duration(float64(time.Second) * dt))
	defer ticker.Stop()

	sinceBroadcast := ticksPerBroadcast // broadcast the first tick immediately
	for {
		select {
		case <-m.stop:
			m.finish(nil)
			return
		case <-ticker.C:
		}

		stepStart := time.Now()
		m.world.Step(dt)
		if m.tickObserver != nil {
			m.tickObserver(time.Since(stepStart))
		}

		sinceBroadcast++
		if ended := m.world.Ended(); ended || sinceBroadcast >= ticksPerBroadcast {
			sinceBroadcast = 0
			snap := m.world.Snapshot()
			if ended {
				result, _ := m.world.Result()
				m.finish(&result)
				if m.sink != nil {
					m.sink.MatchEnded(result, snap)
				}
				return
			}
			if m.sink != nil {
				if err := m.sink.DeliverSnapshot(snap); err != nil {
					simulation.SnapshotDropped(m.world.ctx, m.publisher, m.world.tick, matchRef(), simulation.SnapshotDroppedPayload{
						Error: err.Error(),
					})
				}
			}
		}
	}
}

func (m *Match) finish(result *Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phase = PhaseEnded
	if result != nil && m.result == nil {
		m.result = result
	}
}
