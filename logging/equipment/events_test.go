package equipment_test

import (
	"context"
	"testing"
	"time"

	"sever-and-wield/server/logging"
	"sever-and-wield/server/logging/equipment"
	"sever-and-wield/server/logging/sinks"
)

func TestNoMatchingPartEmittedUnderDefaultConfig(t *testing.T) {
	memory := sinks.NewMemorySink()
	router, err := logging.NewRouter(nil, logging.DefaultConfig(), []logging.NamedSink{{Name: "memory", Sink: memory}})
	if err != nil {
		t.Fatalf("unexpected error creating router: %v", err)
	}

	actor := logging.EntityRef{ID: "creature-1", Kind: logging.EntityKindCreature}
	equipment.NoMatchingPart(context.Background(), router, 3, actor, equipment.NoMatchPayload{
		Item:         "iron_sword",
		RequiredTags: []string{"grasp", "hand"},
		Reason:       "no surviving part carries the required tags",
	})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && len(memory.Events()) == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	events := memory.Events()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("unexpected error closing router: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("expected the rejection to clear the default severity floor, got %d events", len(events))
	}
	if events[0].Type != equipment.EventNoMatchingPart {
		t.Fatalf("expected a no-matching-part event, got %q", events[0].Type)
	}
	if events[0].Severity < logging.SeverityInfo {
		t.Fatalf("expected at least info severity, got %d", events[0].Severity)
	}
}
