package main

import "sync/atomic"

// telemetryCounters aggregates hot-path counters without locks. Everything
// here is monotonic; /diagnostics snapshots the values.
type telemetryCounters struct {
	TickCount         atomic.Uint64
	TickDurationNanos atomic.Uint64

	BroadcastCount    atomic.Uint64
	BroadcastBytes    atomic.Uint64
	BroadcastEntities atomic.Uint64
	BroadcastFailures atomic.Uint64

	ClientsJoined       atomic.Uint64
	ClientsDisconnected atomic.Uint64

	MatchesStarted  atomic.Uint64
	MatchesFinished atomic.Uint64
}

var telemetry telemetryCounters

func (t *telemetryCounters) RecordTick(durationNanos uint64) {
	t.TickCount.Add(1)
	t.TickDurationNanos.Add(durationNanos)
}

func (t *telemetryCounters) RecordBroadcast(bytes, entities int) {
	t.BroadcastCount.Add(1)
	t.BroadcastBytes.Add(uint64(bytes))
	t.BroadcastEntities.Add(uint64(entities))
}

// snapshot returns a plain map for JSON diagnostics output.
func (t *telemetryCounters) snapshot() map[string]uint64 {
	snap := map[string]uint64{
		"tickCount":           t.TickCount.Load(),
		"tickDurationNanos":   t.TickDurationNanos.Load(),
		"broadcastCount":      t.BroadcastCount.Load(),
		"broadcastBytes":      t.BroadcastBytes.Load(),
		"broadcastEntities":   t.BroadcastEntities.Load(),
		"broadcastFailures":   t.BroadcastFailures.Load(),
		"clientsJoined":       t.ClientsJoined.Load(),
		"clientsDisconnected": t.ClientsDisconnected.Load(),
		"matchesStarted":      t.MatchesStarted.Load(),
		"matchesFinished":     t.MatchesFinished.Load(),
	}
	if ticks := snap["tickCount"]; ticks > 0 {
		snap["avgTickNanos"] = snap["tickDurationNanos"] / ticks
	}
	return snap
}
