package main

import (
	"testing"

	"sever-and-wield/server/anatomy"
)

const wyrmTemplateYAML = `
kind: test_wyrm
parts:
  - type: head
    health_ratio: 0.5
    vital: true
    tags: [head, armor, cranium]
  - type: serpentine_body
    health_ratio: 1.0
    vital: true
    tags: [torso, armor, core]
  - type: tail
    health_ratio: 0.4
    limb: true
    tags: [tail]
`

func TestAddCreatureUsesRegisteredTemplate(t *testing.T) {
	tmpl, err := anatomy.ParseTemplateYAML([]byte(wyrmTemplateYAML))
	if err != nil {
		t.Fatalf("unexpected error parsing template: %v", err)
	}
	if err := anatomy.RegisterTemplate(tmpl); err != nil {
		t.Fatalf("unexpected error registering template: %v", err)
	}

	w := newWorld(worldConfig{Seed: "test"}, nil)
	creature, err := w.AddCreature("creature-1", "Scale", "test_wyrm")
	if err != nil {
		t.Fatalf("unexpected error adding creature: %v", err)
	}
	if got := len(creature.Anatomy.Parts); got != 3 {
		t.Fatalf("expected the registered wyrm layout, got %d parts", got)
	}
	if creature.Anatomy.Parts[1].Type != "serpentine_body" {
		t.Fatalf("expected serpentine body second in declared order, got %s", creature.Anatomy.Parts[1].Type)
	}

	slot := addItem(t, creature, ItemTypeIronHelmet)
	part, err := w.EquipFromInventory(creature.ID, slot)
	if err != nil {
		t.Fatalf("unexpected error equipping helmet: %v", err)
	}
	if part != anatomy.PartHead {
		t.Fatalf("expected helmet on the wyrm head, got %s", part)
	}
}

func TestRemoveCreatureReturnsCarriedItems(t *testing.T) {
	w, creature := newTestWorld(t)
	addItem(t, creature, ItemTypeTorch)
	slot := addItem(t, creature, ItemTypeIronSword)
	if _, err := w.EquipFromInventory(creature.ID, slot); err != nil {
		t.Fatalf("unexpected error equipping sword: %v", err)
	}

	drops := w.RemoveCreature(creature.ID)
	if len(drops) != 2 {
		t.Fatalf("expected torch and sword dropped, got %v", drops)
	}
	if _, ok := w.Creature(creature.ID); ok {
		t.Fatalf("expected creature removed from the roster")
	}
}
