package main

import (
	"sever-and-wield/server/anatomy"
)

// PatchKind identifies the type of diff entry.
type PatchKind string

const (
	// PatchCreatureInventory updates a creature's inventory slots.
	PatchCreatureInventory PatchKind = "creature_inventory"
	// PatchCreatureEquipment updates a creature's per-part equipment loadout.
	PatchCreatureEquipment PatchKind = "creature_equipment"
	// PatchCreatureAnatomy updates the health of one or more body parts.
	PatchCreatureAnatomy PatchKind = "creature_anatomy"
	// PatchCreatureStats updates a creature's resolved stat totals.
	PatchCreatureStats PatchKind = "creature_stats"
	// PatchCreatureRemoved signals that a creature has left the world.
	PatchCreatureRemoved PatchKind = "creature_removed"
)

// Patch represents a diff entry that can be applied to the client state.
type Patch struct {
	Kind     PatchKind `json:"kind"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload,omitempty"`
}

// InventoryPayload captures the inventory slots for a creature patch.
type InventoryPayload struct {
	Slots []InventorySlot `json:"slots"`
}

// EquipmentPayload captures the per-part loadout for a creature patch.
type EquipmentPayload struct {
	Parts []EquippedItem `json:"parts"`
}

// PartHealthPayload captures one body part's health after a change.
type PartHealthPayload struct {
	Part      anatomy.PartType `json:"part"`
	Health    float64          `json:"health"`
	MaxHealth float64          `json:"maxHealth"`
	Destroyed bool             `json:"destroyed"`
}

// AnatomyPayload captures the changed body parts for a creature patch.
type AnatomyPayload struct {
	Alive bool                `json:"alive"`
	Parts []PartHealthPayload `json:"parts"`
}

// StatsPayload captures resolved attribute totals for a creature patch.
type StatsPayload struct {
	Power     float64 `json:"power"`
	Defense   float64 `json:"defense"`
	Agility   float64 `json:"agility"`
	Vitality  float64 `json:"vitality"`
	MaxHealth float64 `json:"maxHealth"`
}
