package simulation

import (
	"context"

	"github.com/andronedrei/arena-battle/logging"
)

const (
	// EventStrategyFault is emitted when a strategy panics and the agent is skipped.
	EventStrategyFault logging.EventType = "simulation.strategy_fault"
	// EventInvariantViolation is emitted when the core clamps impossible state.
	EventInvariantViolation logging.EventType = "simulation.invariant_violation"
	// EventSnapshotDropped is emitted when a snapshot hand-off fails.
	EventSnapshotDropped logging.EventType = "simulation.snapshot_dropped"
)

// StrategyFaultPayload captures the recovered panic value.
type StrategyFaultPayload struct {
	Strategy string `json:"strategy,omitempty"`
	Panic    string `json:"panic"`
}

// InvariantViolationPayload names the violated invariant and the clamped value.
type InvariantViolationPayload struct {
	Invariant string  `json:"invariant"`
	Observed  float64 `json:"observed"`
	Clamped   float64 `json:"clamped"`
}

// SnapshotDroppedPayload records the delivery failure.
type SnapshotDroppedPayload struct {
	Error string `json:"error"`
}

func StrategyFault(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload StrategyFaultPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventStrategyFault,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityError,
		Category: logging.CategorySimulation,
		Payload:  payload,
	})
}

func InvariantViolation(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload InvariantViolationPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventInvariantViolation,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategorySimulation,
		Payload:  payload,
	})
}

func SnapshotDropped(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SnapshotDroppedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventSnapshotDropped,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategorySimulation,
		Payload:  payload,
	})
}
