package main

import (
	"strings"
	"testing"

	"sever-and-wield/server/anatomy"
)

func TestHubJoinRegistersCreatureWithStarterInventory(t *testing.T) {
	hub := newHub(newWorld(worldConfig{Seed: "test"}, nil))

	join, err := hub.Join("Hero", anatomy.KindHumanoid)
	if err != nil {
		t.Fatalf("unexpected error joining: %v", err)
	}
	if !strings.HasPrefix(join.ID, "creature-") {
		t.Fatalf("expected creature id prefix, got %q", join.ID)
	}
	if len(join.Creatures) != 1 {
		t.Fatalf("expected one creature in snapshot, got %d", len(join.Creatures))
	}
	if len(join.Catalog) == 0 {
		t.Fatalf("expected item catalog in join response")
	}

	creature, ok := hub.world.Creature(join.ID)
	if !ok {
		t.Fatalf("expected creature registered in world")
	}
	if got := creature.Inventory.QuantityOf(ItemTypeGold); got != 50 {
		t.Fatalf("expected 50 starter gold, got %d", got)
	}
	if got := creature.Inventory.QuantityOf(ItemTypeIronSword); got != 1 {
		t.Fatalf("expected starter sword, got %d", got)
	}
}

func TestHubJoinAssignsDistinctIDs(t *testing.T) {
	hub := newHub(newWorld(worldConfig{Seed: "test"}, nil))

	first, err := hub.Join("", anatomy.KindHumanoid)
	if err != nil {
		t.Fatalf("unexpected error joining: %v", err)
	}
	second, err := hub.Join("", anatomy.KindArachnid)
	if err != nil {
		t.Fatalf("unexpected error joining: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct creature ids, both %q", first.ID)
	}
	if len(second.Creatures) != 2 {
		t.Fatalf("expected two creatures in second snapshot, got %d", len(second.Creatures))
	}
}

func TestHubDisconnectRemovesCreature(t *testing.T) {
	hub := newHub(newWorld(worldConfig{Seed: "test"}, nil))

	join, err := hub.Join("Hero", anatomy.KindHumanoid)
	if err != nil {
		t.Fatalf("unexpected error joining: %v", err)
	}

	creatures := hub.Disconnect(join.ID)
	if creatures == nil {
		t.Fatalf("expected snapshot after disconnect")
	}
	if len(creatures) != 0 {
		t.Fatalf("expected empty roster after disconnect, got %d", len(creatures))
	}
	if _, ok := hub.world.Creature(join.ID); ok {
		t.Fatalf("expected creature removed from world")
	}
	if hub.Disconnect(join.ID) != nil {
		t.Fatalf("expected second disconnect to be a no-op")
	}
}

func TestHubEquipCommandRoutesToWorld(t *testing.T) {
	hub := newHub(newWorld(worldConfig{Seed: "test"}, nil))

	join, err := hub.Join("Hero", anatomy.KindHumanoid)
	if err != nil {
		t.Fatalf("unexpected error joining: %v", err)
	}
	creature, _ := hub.world.Creature(join.ID)

	swordSlot := -1
	for _, slot := range creature.Inventory.Slots {
		if slot.Item.Type == ItemTypeIronSword {
			swordSlot = slot.Slot
			break
		}
	}
	if swordSlot < 0 {
		t.Fatalf("expected starter sword in inventory")
	}

	part, err := hub.Equip(join.ID, swordSlot)
	if err != nil {
		t.Fatalf("unexpected error equipping: %v", err)
	}
	if part != anatomy.PartLeftHand {
		t.Fatalf("expected sword on left hand, got %s", part)
	}

	stack, err := hub.Unequip(join.ID, part)
	if err != nil {
		t.Fatalf("unexpected error unequipping: %v", err)
	}
	if stack.Type != ItemTypeIronSword {
		t.Fatalf("expected sword returned, got %s", stack.Type)
	}
}

func TestHubSnapshotIsSortedByID(t *testing.T) {
	hub := newHub(newWorld(worldConfig{Seed: "test"}, nil))
	for i := 0; i < 5; i++ {
		if _, err := hub.Join("", anatomy.KindHumanoid); err != nil {
			t.Fatalf("unexpected error joining: %v", err)
		}
	}

	hub.mu.Lock()
	creatures := hub.snapshotLocked()
	hub.mu.Unlock()

	for i := 1; i < len(creatures); i++ {
		if creatures[i-1].ID >= creatures[i].ID {
			t.Fatalf("expected snapshot sorted by id, got %q before %q", creatures[i-1].ID, creatures[i].ID)
		}
	}
}
