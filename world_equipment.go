package main

import (
	"context"
	"errors"
	"fmt"

	"sever-and-wield/server/anatomy"
	"sever-and-wield/server/logging"
	equipevents "sever-and-wield/server/logging/equipment"
	"sever-and-wield/server/stats"
)

var (
	errEquipInvalidInventorySlot = errors.New("invalid_inventory_slot")
	errEquipEmptySlot            = errors.New("empty_slot")
	errEquipNotEquippable        = errors.New("not_equippable")
	errEquipNoMatchingPart       = errors.New("no_matching_part")
	errUnequipInvalidPart        = errors.New("invalid_body_part")
	errUnequipEmptyPart          = errors.New("part_empty")
)

// EquipFromInventory moves the item in the given inventory slot onto a body
// part that carries every tag the item requires. Among matching parts the
// first unoccupied one in the anatomy's declared order wins; when every
// matching part is occupied, the first one swaps its current item back into
// the inventory. Returns the part that received the item.
func (w *World) EquipFromInventory(creatureID string, inventorySlot int) (anatomy.PartType, error) {
	if w == nil {
		return "", fmt.Errorf("world not initialised")
	}
	creature, ok := w.creatures[creatureID]
	if !ok {
		return "", errUnknownCreature
	}
	if inventorySlot < 0 || inventorySlot >= len(creature.Inventory.Slots) {
		return "", errEquipInvalidInventorySlot
	}
	slot := creature.Inventory.Slots[inventorySlot]
	if slot.Item.Quantity <= 0 || slot.Item.Type == "" {
		return "", errEquipEmptySlot
	}
	def, ok := ItemDefinitionFor(slot.Item.Type)
	if !ok {
		return "", fmt.Errorf("unknown item type %q", slot.Item.Type)
	}
	if !def.Equipable() {
		return "", errEquipNotEquippable
	}

	// Resolve the stat delta before touching inventory or equipment so a bad
	// definition can never leave a half-applied mutation behind.
	delta, err := equipmentDeltaForDefinition(def)
	if err != nil {
		return "", err
	}

	actor := logging.EntityRef{ID: creatureID, Kind: logging.EntityKindCreature}
	required := def.RequiredTagSet()

	matching := creature.Anatomy.MatchingParts(required)
	if len(matching) == 0 {
		equipevents.NoMatchingPart(context.Background(), w.publisher, w.currentTick, actor, equipevents.NoMatchPayload{
			Item:         string(def.ID),
			RequiredTags: def.RequiredTags,
			Reason:       "no surviving part carries the required tags",
		})
		return "", errEquipNoMatchingPart
	}

	var target *anatomy.BodyPart
	for _, part := range matching {
		if !creature.Equipment.Occupied(part.Type) {
			target = part
			break
		}
	}
	swap := target == nil
	if swap {
		target = matching[0]
	}

	var removed ItemStack
	if err := w.MutateInventory(creatureID, func(inv *Inventory) error {
		var innerErr error
		removed, innerErr = inv.RemoveQuantity(inventorySlot, 1)
		return innerErr
	}); err != nil {
		return "", err
	}
	if removed.FungibilityKey == "" {
		removed.FungibilityKey = def.FungibilityKey
	}
	removed.Quantity = 1

	partKey := stats.SourceKey{Kind: stats.SourceKindEquipment, ID: string(target.Type)}

	restoreRemoved := func() {
		_ = w.MutateInventory(creatureID, func(inv *Inventory) error {
			_, addErr := inv.AddStack(removed)
			return addErr
		})
	}

	var (
		reinsertionSlot   int
		reinsertionQty    int
		reinsertionActive bool
		previous          ItemStack
	)

	if swap {
		current, ok := creature.Equipment.Get(target.Type)
		if !ok || current.Type == "" {
			restoreRemoved()
			return "", fmt.Errorf("part %s empty during swap", target.Type)
		}
		previous = current
		if previous.Quantity <= 0 {
			previous.Quantity = 1
		}
		reinsertionQty = previous.Quantity
		if prevDef, ok := ItemDefinitionFor(previous.Type); ok {
			if previous.FungibilityKey == "" {
				previous.FungibilityKey = prevDef.FungibilityKey
			}
		}

		if err := w.MutateInventory(creatureID, func(inv *Inventory) error {
			var addErr error
			reinsertionSlot, addErr = inv.AddStack(previous)
			return addErr
		}); err != nil {
			restoreRemoved()
			return "", err
		}
		reinsertionActive = true

		if err := w.MutateEquipment(creatureID, func(eq *Equipment) error {
			if _, ok := eq.Remove(target.Type); !ok {
				return fmt.Errorf("part %s empty during equip", target.Type)
			}
			return nil
		}); err != nil {
			_ = w.MutateInventory(creatureID, func(inv *Inventory) error {
				_, remErr := inv.RemoveQuantity(reinsertionSlot, reinsertionQty)
				return remErr
			})
			restoreRemoved()
			return "", err
		}
	}

	rank := creature.partRank(target.Type)
	if err := w.MutateEquipment(creatureID, func(eq *Equipment) error {
		eq.Set(target.Type, rank, removed)
		return nil
	}); err != nil {
		restoreRemoved()
		if reinsertionActive {
			_ = w.MutateInventory(creatureID, func(inv *Inventory) error {
				_, remErr := inv.RemoveQuantity(reinsertionSlot, reinsertionQty)
				return remErr
			})
			_ = w.MutateEquipment(creatureID, func(eq *Equipment) error {
				eq.Set(target.Type, rank, previous)
				return nil
			})
		}
		return "", err
	}

	if reinsertionActive {
		creature.stats.Apply(stats.CommandStatChange{Layer: stats.LayerEquipment, Source: partKey, Remove: true})
	}

	creature.stats.Apply(stats.CommandStatChange{Layer: stats.LayerEquipment, Source: partKey, Delta: delta})
	creature.stats.Resolve(w.currentTick)
	creature.syncMaxHealth()
	w.emitStatsPatch(creature)

	payload := equipevents.EquipPayload{
		Item:         string(def.ID),
		Part:         string(target.Type),
		RequiredTags: def.RequiredTags,
	}
	if reinsertionActive {
		payload.Swapped = string(previous.Type)
	}
	equipevents.Equip(context.Background(), w.publisher, w.currentTick, actor, payload)
	return target.Type, nil
}

// UnequipToInventory removes the item on the given body part and returns it
// to the inventory.
func (w *World) UnequipToInventory(creatureID string, partType anatomy.PartType) (ItemStack, error) {
	if w == nil {
		return ItemStack{}, fmt.Errorf("world not initialised")
	}
	if partType == "" {
		return ItemStack{}, errUnequipInvalidPart
	}
	creature, ok := w.creatures[creatureID]
	if !ok {
		return ItemStack{}, errUnknownCreature
	}
	stack, ok := creature.Equipment.Get(partType)
	if !ok || stack.Type == "" {
		return ItemStack{}, errUnequipEmptyPart
	}

	// Container mutations first, stat bookkeeping last: if either mutation
	// fails the creature's stats are untouched and the rollback below restores
	// the part.
	if err := w.MutateEquipment(creatureID, func(eq *Equipment) error {
		_, _ = eq.Remove(partType)
		return nil
	}); err != nil {
		return ItemStack{}, err
	}

	if err := w.MutateInventory(creatureID, func(inv *Inventory) error {
		_, addErr := inv.AddStack(stack)
		return addErr
	}); err != nil {
		rank := creature.partRank(partType)
		_ = w.MutateEquipment(creatureID, func(eq *Equipment) error {
			eq.Set(partType, rank, stack)
			return nil
		})
		return ItemStack{}, err
	}

	partKey := stats.SourceKey{Kind: stats.SourceKindEquipment, ID: string(partType)}
	creature.stats.Apply(stats.CommandStatChange{Layer: stats.LayerEquipment, Source: partKey, Remove: true})
	creature.stats.Resolve(w.currentTick)
	creature.syncMaxHealth()
	w.emitStatsPatch(creature)

	actor := logging.EntityRef{ID: creatureID, Kind: logging.EntityKindCreature}
	equipevents.Unequip(context.Background(), w.publisher, w.currentTick, actor, equipevents.UnequipPayload{
		Item: string(stack.Type),
		Part: string(partType),
	})
	return stack, nil
}

// equipmentDeltaForDefinition converts an item's permanent modifiers into a
// stat delta. Timed modifiers are consumable payloads and do not contribute.
func equipmentDeltaForDefinition(def ItemDefinition) (stats.StatDelta, error) {
	if def.ID == "" {
		return stats.NewStatDelta(), fmt.Errorf("item definition missing id")
	}
	delta := stats.NewStatDelta()
	for _, mod := range def.Modifiers {
		if mod.DurationSeconds > 0 {
			continue
		}
		switch mod.Stat {
		case "power":
			delta.Add[stats.StatPower] += mod.Magnitude
		case "defense":
			delta.Add[stats.StatDefense] += mod.Magnitude
		case "agility":
			delta.Add[stats.StatAgility] += mod.Magnitude
		case "vitality":
			delta.Add[stats.StatVitality] += mod.Magnitude
		}
	}
	return delta, nil
}
