package lifecycle

import (
	"context"

	"github.com/andronedrei/arena-battle/logging"
)

const (
	// EventMatchStarted is emitted when a match transitions to running.
	EventMatchStarted logging.EventType = "lifecycle.match_started"
	// EventMatchEnded is emitted when a match reaches its terminal state.
	EventMatchEnded logging.EventType = "lifecycle.match_ended"
	// EventAgentSpawned is emitted when an agent joins the live set.
	EventAgentSpawned logging.EventType = "lifecycle.agent_spawned"
	// EventAgentRemoved is emitted when a dead agent is pruned.
	EventAgentRemoved logging.EventType = "lifecycle.agent_removed"
	// EventClientDisconnected is emitted when a subscriber drops.
	EventClientDisconnected logging.EventType = "lifecycle.client_disconnected"
)

// MatchStartedPayload records the mode and participant count at start.
type MatchStartedPayload struct {
	Mode   string `json:"mode"`
	Agents int    `json:"agents"`
}

// MatchEndedPayload records the outcome of a finished match.
type MatchEndedPayload struct {
	Mode   string `json:"mode"`
	Winner int    `json:"winner"`
	Draw   bool   `json:"draw"`
	Reason string `json:"reason"`
}

// AgentSpawnedPayload records spawn position and team.
type AgentSpawnedPayload struct {
	Team     int     `json:"team"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Strategy string  `json:"strategy,omitempty"`
}

// ClientDisconnectedPayload records why a subscriber was dropped.
type ClientDisconnectedPayload struct {
	Reason string `json:"reason"`
}

func MatchStarted(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload MatchStartedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventMatchStarted,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}

func MatchEnded(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload MatchEndedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventMatchEnded,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}

func AgentSpawned(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload AgentSpawnedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventAgentSpawned,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}

func AgentRemoved(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventAgentRemoved,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
	})
}

func ClientDisconnected(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ClientDisconnectedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventClientDisconnected,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryNetwork,
		Payload:  payload,
	})
}
