package sinks

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/andronedrei/arena-battle/logging"
)

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink()
	sink.Write(logging.Event{Type: "combat.damage", Tick: 3})
	sink.Write(logging.Event{Type: "lifecycle.match_started", Tick: 1})
	sink.Write(logging.Event{Type: "combat.damage", Tick: 9})

	if got := len(sink.Events()); got != 3 {
		t.Fatalf("Events() has %d entries, want 3", got)
	}
	damage := sink.EventsOfType("combat.damage")
	if len(damage) != 2 || damage[1].Tick != 9 {
		t.Fatalf("EventsOfType = %+v", damage)
	}

	sink.Reset()
	if got := len(sink.Events()); got != 0 {
		t.Fatalf("Reset left %d events", got)
	}
}

func TestConsoleSinkFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, logging.ConsoleConfig{})
	sink.Write(logging.Event{
		Type:     "combat.defeat",
		Tick:     12,
		Actor:    logging.EntityRef{ID: "4", Kind: logging.EntityKindAgent},
		Targets:  []logging.EntityRef{{ID: "7", Kind: logging.EntityKindAgent}},
		Severity: logging.SeverityInfo,
	})

	line := buf.String()
	for _, want := range []string{"combat.defeat", "tick=12", "agent:4", "targets=agent:7", "severity=info"} {
		if !strings.Contains(line, want) {
			t.Errorf("console line %q missing %q", line, want)
		}
	}
}

func TestJSONSinkWritesEncodedEvents(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSON(&buf, time.Hour) // no periodic flush during the test
	sink.Write(logging.Event{Type: "simulation.strategy_fault", Tick: 5})
	if err := sink.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"simulation.strategy_fault"`) {
		t.Fatalf("json output %q missing the event type", out)
	}
}
