package logging_test

import (
	"context"
	"testing"
	"time"

	"sever-and-wield/server/logging"
	"sever-and-wield/server/logging/sinks"
)

func newTestRouter(t *testing.T, cfg logging.Config) (*logging.Router, *sinks.MemorySink) {
	t.Helper()
	memory := sinks.NewMemorySink()
	router, err := logging.NewRouter(nil, cfg, []logging.NamedSink{{Name: "memory", Sink: memory}})
	if err != nil {
		t.Fatalf("unexpected error creating router: %v", err)
	}
	return router, memory
}

func closeRouter(t *testing.T, router *logging.Router) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("unexpected error closing router: %v", err)
	}
}

func waitForEvents(t *testing.T, memory *sinks.MemorySink, want int) []logging.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		events := memory.Events()
		if len(events) >= want {
			return events
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d events, got %d", want, len(memory.Events()))
	return nil
}

func TestRouterDeliversEventsToSinks(t *testing.T) {
	cfg := logging.DefaultConfig()
	router, memory := newTestRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{
		Type:     "equipment.equip",
		Tick:     7,
		Actor:    logging.EntityRef{ID: "creature-1", Kind: logging.EntityKindCreature},
		Severity: logging.SeverityInfo,
	})

	events := waitForEvents(t, memory, 1)
	closeRouter(t, router)

	if events[0].Type != "equipment.equip" {
		t.Fatalf("expected equip event, got %q", events[0].Type)
	}
	if events[0].Tick != 7 {
		t.Fatalf("expected tick 7, got %d", events[0].Tick)
	}
	if events[0].Time.IsZero() {
		t.Fatalf("expected router to stamp event time")
	}
}

func TestRouterFiltersBelowMinimumSeverity(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.MinimumSeverity = logging.SeverityWarn
	router, memory := newTestRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{Type: "equipment.no_matching_part", Severity: logging.SeverityDebug})
	router.Publish(context.Background(), logging.Event{Type: "equipment.creature_death", Severity: logging.SeverityWarn})

	events := waitForEvents(t, memory, 1)
	closeRouter(t, router)

	for _, event := range events {
		if event.Severity < logging.SeverityWarn {
			t.Fatalf("expected low severity events to be filtered, got %q", event.Type)
		}
	}
}

func TestRouterMergesConfiguredFields(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.Fields = map[string]any{"service": "test"}
	router, memory := newTestRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{Type: "equipment.equip", Severity: logging.SeverityInfo})

	events := waitForEvents(t, memory, 1)
	closeRouter(t, router)

	if events[0].Extra["service"] != "test" {
		t.Fatalf("expected configured field on event, got %v", events[0].Extra)
	}
}

func TestRouterIgnoresUntypedEvents(t *testing.T) {
	router, memory := newTestRouter(t, logging.DefaultConfig())

	router.Publish(context.Background(), logging.Event{Severity: logging.SeverityError})
	router.Publish(context.Background(), logging.Event{Type: "equipment.equip", Severity: logging.SeverityInfo})

	events := waitForEvents(t, memory, 1)
	closeRouter(t, router)

	if len(events) != 1 || events[0].Type != "equipment.equip" {
		t.Fatalf("expected only the typed event, got %d events", len(events))
	}
}
