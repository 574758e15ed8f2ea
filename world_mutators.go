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
	errUnknownCreature = errors.New("unknown_creature")
	errUnknownPart     = errors.New("unknown_part")
	errPartDestroyed   = errors.New("part_destroyed")
)

// mutateContainer applies the mutation, rolling back on error. When the
// mutation succeeds and changes the value, the version counter is incremented
// and a patch is emitted.
func mutateContainer[T any](
	w *World,
	container *T,
	version *uint64,
	mutate func(*T) error,
	clone func(T) T,
	equal func(T, T) bool,
	emit func(T) Patch,
) error {
	if w == nil || container == nil || mutate == nil {
		return nil
	}

	before := clone(*container)

	if err := mutate(container); err != nil {
		*container = before
		return err
	}

	if equal(before, *container) {
		return nil
	}

	if version != nil {
		*version = *version + 1
	}

	if emit != nil {
		w.appendPatch(emit(*container))
	}
	return nil
}

// MutateInventory runs the mutation against the creature's inventory with
// rollback and patch emission.
func (w *World) MutateInventory(creatureID string, mutate func(*Inventory) error) error {
	creature, ok := w.creatures[creatureID]
	if !ok {
		return errUnknownCreature
	}
	return mutateContainer(w, &creature.Inventory, &creature.version, mutate,
		Inventory.Clone, inventoriesEqual,
		func(inv Inventory) Patch {
			return Patch{
				Kind:     PatchCreatureInventory,
				EntityID: creatureID,
				Payload:  InventoryPayload{Slots: inv.Slots},
			}
		})
}

// MutateEquipment runs the mutation against the creature's equipment with
// rollback and patch emission.
func (w *World) MutateEquipment(creatureID string, mutate func(*Equipment) error) error {
	creature, ok := w.creatures[creatureID]
	if !ok {
		return errUnknownCreature
	}
	return mutateContainer(w, &creature.Equipment, &creature.version, mutate,
		Equipment.Clone, equipmentsEqual,
		func(eq Equipment) Patch {
			return Patch{
				Kind:     PatchCreatureEquipment,
				EntityID: creatureID,
				Payload:  EquipmentPayload{Parts: eq.Parts},
			}
		})
}

// DamagePart applies damage to a named body part. A part reduced to zero
// health drops whatever it carried into the creature's inventory; destroying
// a vital part kills the creature.
func (w *World) DamagePart(creatureID string, partType anatomy.PartType, damage float64) error {
	creature, ok := w.creatures[creatureID]
	if !ok {
		return errUnknownCreature
	}
	part := creature.Anatomy.Part(partType)
	if part == nil {
		return errUnknownPart
	}
	if part.Destroyed() {
		return errPartDestroyed
	}

	part.TakeDamage(damage * part.DamageFactor())
	creature.version++
	w.emitAnatomyPatch(creature, part)

	if part.Destroyed() {
		w.handlePartDestroyed(creature, part, damage)
	}
	return nil
}

// Strike deals damage to a random undestroyed part, weighted by how easy
// each part is to hit. Returns the struck part, or nil when the creature has
// nothing left to hit.
func (w *World) Strike(creatureID string, damage float64) (*anatomy.BodyPart, error) {
	creature, ok := w.creatures[creatureID]
	if !ok {
		return nil, errUnknownCreature
	}
	part := creature.Anatomy.DamageRandomPart(w.rng, damage)
	if part == nil {
		return nil, nil
	}
	creature.version++
	w.emitAnatomyPatch(creature, part)

	if part.Destroyed() {
		w.handlePartDestroyed(creature, part, damage)
	}
	return part, nil
}

// Heal restores health across every body part, reviving destroyed parts that
// climb back above zero.
func (w *World) Heal(creatureID string, amount float64) (float64, error) {
	creature, ok := w.creatures[creatureID]
	if !ok {
		return 0, errUnknownCreature
	}
	healed := creature.Anatomy.HealAllParts(amount)
	if healed > 0 {
		creature.version++
		w.emitAnatomyPatch(creature, nil)
	}
	return healed, nil
}

// handlePartDestroyed force-unequips the destroyed part and publishes the
// destruction, plus a death event when the part was vital.
func (w *World) handlePartDestroyed(creature *creatureState, part *anatomy.BodyPart, damage float64) {
	dropped := ""
	if stack, ok := creature.Equipment.Get(part.Type); ok {
		dropped = string(stack.Type)
		_ = w.forceUnequip(creature, part.Type, stack)
	}

	actor := logging.EntityRef{ID: creature.ID, Kind: logging.EntityKindCreature}
	equipevents.PartDestroyed(context.Background(), w.publisher, w.currentTick, actor, equipevents.PartDestroyedPayload{
		Part:    string(part.Type),
		Damage:  damage,
		Dropped: dropped,
		Vital:   part.Vital,
	})

	if part.Vital && !creature.Anatomy.Alive() {
		equipevents.CreatureDeath(context.Background(), w.publisher, w.currentTick, actor, string(part.Type))
	}
}

// forceUnequip moves the stack off the part and back into the inventory,
// clearing its stat contribution. Used when the carrying part is destroyed.
func (w *World) forceUnequip(creature *creatureState, partType anatomy.PartType, stack ItemStack) error {
	if err := w.MutateEquipment(creature.ID, func(eq *Equipment) error {
		if _, ok := eq.Remove(partType); !ok {
			return fmt.Errorf("part %s empty during forced unequip", partType)
		}
		return nil
	}); err != nil {
		return err
	}

	if err := w.MutateInventory(creature.ID, func(inv *Inventory) error {
		_, addErr := inv.AddStack(stack)
		return addErr
	}); err != nil {
		return err
	}

	partKey := stats.SourceKey{Kind: stats.SourceKindEquipment, ID: string(partType)}
	creature.stats.Apply(stats.CommandStatChange{Layer: stats.LayerEquipment, Source: partKey, Remove: true})
	creature.stats.Resolve(w.currentTick)
	creature.syncMaxHealth()

	actor := logging.EntityRef{ID: creature.ID, Kind: logging.EntityKindCreature}
	equipevents.Unequip(context.Background(), w.publisher, w.currentTick, actor, equipevents.UnequipPayload{
		Item:   string(stack.Type),
		Part:   string(partType),
		Forced: true,
	})
	return nil
}

// emitAnatomyPatch records part health for broadcast. Passing nil emits every
// part, otherwise only the changed one.
func (w *World) emitAnatomyPatch(creature *creatureState, changed *anatomy.BodyPart) {
	payload := AnatomyPayload{Alive: creature.Anatomy.Alive()}
	if changed != nil {
		payload.Parts = []PartHealthPayload{partHealthPayload(changed)}
	} else {
		payload.Parts = make([]PartHealthPayload, 0, len(creature.Anatomy.Parts))
		for i := range creature.Anatomy.Parts {
			payload.Parts = append(payload.Parts, partHealthPayload(&creature.Anatomy.Parts[i]))
		}
	}
	w.appendPatch(Patch{Kind: PatchCreatureAnatomy, EntityID: creature.ID, Payload: payload})
}

func partHealthPayload(part *anatomy.BodyPart) PartHealthPayload {
	return PartHealthPayload{
		Part:      part.Type,
		Health:    part.Health,
		MaxHealth: part.MaxHealth,
		Destroyed: part.Destroyed(),
	}
}

func (w *World) emitStatsPatch(creature *creatureState) {
	w.appendPatch(Patch{
		Kind:     PatchCreatureStats,
		EntityID: creature.ID,
		Payload:  statsPayloadFromSnapshot(creature.stats.Snapshot()),
	})
}
