package logging

import (
	"context"
	"testing"
	"time"
)

type captureSink struct {
	events chan Event
}

func newCaptureSink() *captureSink {
	return &captureSink{events: make(chan Event, 64)}
}

func (s *captureSink) Write(event Event) error {
	s.events <- event
	return nil
}

func (s *captureSink) Close(context.Context) error {
	return nil
}

func (s *captureSink) wait(t *testing.T) Event {
	t.Helper()
	select {
	case event := <-s.events:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("no event arrived")
		return Event{}
	}
}

func TestRouterDeliversToSinks(t *testing.T) {
	sink := newCaptureSink()
	router := NewRouter(nil, DefaultConfig(), []NamedSink{{Name: "capture", Sink: sink}})
	defer closeRouter(t, router)

	router.Publish(context.Background(), Event{
		Type:     "test.event",
		Tick:     7,
		Severity: SeverityInfo,
	})

	event := sink.wait(t)
	if event.Type != "test.event" || event.Tick != 7 {
		t.Fatalf("delivered %+v", event)
	}
	if event.Time.IsZero() {
		t.Fatal("router should stamp event time")
	}
}

func TestRouterFiltersBelowMinimumSeverity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinimumSeverity = SeverityWarn
	sink := newCaptureSink()
	router := NewRouter(nil, cfg, []NamedSink{{Name: "capture", Sink: sink}})
	defer closeRouter(t, router)

	router.Publish(context.Background(), Event{Type: "test.debug", Severity: SeverityDebug})
	router.Publish(context.Background(), Event{Type: "test.warn", Severity: SeverityWarn})

	event := sink.wait(t)
	if event.Type != "test.warn" {
		t.Fatalf("got %q, want only the warn event", event.Type)
	}
	if stats := router.Stats(); stats.EventsTotal != 1 {
		t.Fatalf("EventsTotal = %d, want 1", stats.EventsTotal)
	}
}

func TestRouterMergesConfigFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fields = map[string]any{"server": "arena-1"}
	sink := newCaptureSink()
	router := NewRouter(nil, cfg, []NamedSink{{Name: "capture", Sink: sink}})
	defer closeRouter(t, router)

	router.Publish(context.Background(), Event{Type: "test.event", Severity: SeverityInfo})
	event := sink.wait(t)
	if event.Extra["server"] != "arena-1" {
		t.Fatalf("extra = %v, want the configured field", event.Extra)
	}
}

func TestWithFieldsDoesNotOverrideEventFields(t *testing.T) {
	var got Event
	pub := WithFields(PublisherFunc(func(_ context.Context, event Event) {
		got = event
	}), map[string]any{"source": "wrapper"})

	pub.Publish(context.Background(), Event{
		Type:  "test.event",
		Extra: map[string]any{"source": "event"},
	})
	if got.Extra["source"] != "event" {
		t.Fatalf("extra = %v, event fields must win", got.Extra)
	}
}

func closeRouter(t *testing.T, router *Router) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("close router: %v", err)
	}
}
