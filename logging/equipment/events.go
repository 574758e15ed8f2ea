package equipment

import (
	"context"

	"sever-and-wield/server/logging"
)

const (
	// EventEquip is emitted when an item is fitted to a body part.
	EventEquip logging.EventType = "equipment.equip"
	// EventUnequip is emitted when an item leaves a body part.
	EventUnequip logging.EventType = "equipment.unequip"
	// EventNoMatchingPart is emitted when an equip command finds no part
	// able to carry the item.
	EventNoMatchingPart logging.EventType = "equipment.no_matching_part"
	// EventPartDestroyed is emitted when damage destroys a body part.
	EventPartDestroyed logging.EventType = "equipment.part_destroyed"
	// EventCreatureDeath is emitted when a vital part is destroyed.
	EventCreatureDeath logging.EventType = "equipment.creature_death"
)

// EquipPayload captures where an item landed and what it demanded.
type EquipPayload struct {
	Item         string   `json:"item"`
	Part         string   `json:"part"`
	RequiredTags []string `json:"requiredTags,omitempty"`
	Swapped      string   `json:"swapped,omitempty"`
}

// UnequipPayload captures the item released from a part.
type UnequipPayload struct {
	Item   string `json:"item"`
	Part   string `json:"part"`
	Forced bool   `json:"forced,omitempty"`
}

// NoMatchPayload records a failed equip attempt.
type NoMatchPayload struct {
	Item         string   `json:"item"`
	RequiredTags []string `json:"requiredTags,omitempty"`
	Reason       string   `json:"reason"`
}

// PartDestroyedPayload records a part reduced to zero health.
type PartDestroyedPayload struct {
	Part    string  `json:"part"`
	Damage  float64 `json:"damage"`
	Dropped string  `json:"dropped,omitempty"`
	Vital   bool    `json:"vital,omitempty"`
}

// Equip publishes a successful equip event.
func Equip(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload EquipPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventEquip,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}

// Unequip publishes an unequip event, forced or requested.
func Unequip(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload UnequipPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventUnequip,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}

// NoMatchingPart publishes a rejected equip attempt. Rejections are player
// facing, so they ride at info and clear the default severity floor.
func NoMatchingPart(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload NoMatchPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventNoMatchingPart,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}

// PartDestroyed publishes a destroyed-part event.
func PartDestroyed(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload PartDestroyedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventPartDestroyed,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// CreatureDeath publishes a death event for the creature losing a vital part.
func CreatureDeath(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, part string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCreatureDeath,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryCombat,
		Payload:  PartDestroyedPayload{Part: part, Vital: true},
	})
}
