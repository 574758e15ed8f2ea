package main

import (
	"sever-and-wield/server/anatomy"
	"sever-and-wield/server/stats"
)

// creatureState is the authoritative server-side record for one creature.
// The anatomy instance owns part health; the stats component owns the
// derived pools the parts scale against.
type creatureState struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Kind      anatomy.Kind     `json:"kind"`
	Anatomy   *anatomy.Anatomy `json:"anatomy"`
	Inventory Inventory        `json:"inventory"`
	Equipment Equipment        `json:"equipment"`
	archetype stats.Archetype
	stats     stats.Component
	version   uint64
}

func archetypeForKind(kind anatomy.Kind) stats.Archetype {
	switch kind {
	case anatomy.KindArachnid:
		return stats.ArchetypeGiantSpider
	case anatomy.KindSimple:
		return stats.ArchetypeSlime
	default:
		return stats.ArchetypeAdventurer
	}
}

// newCreatureState builds a creature with a fresh anatomy scaled to the
// archetype's derived max health.
func newCreatureState(id, name string, kind anatomy.Kind) *creatureState {
	archetype := archetypeForKind(kind)
	component := stats.DefaultComponent(archetype)
	component.Resolve(0)

	maxHealth := component.GetDerived(stats.DerivedMaxHealth)
	if maxHealth <= 0 {
		maxHealth = baselineCreatureHealth
	}

	body := anatomy.NewAnatomy(kind, maxHealth)
	return &creatureState{
		ID:        id,
		Name:      name,
		Kind:      kind,
		Anatomy:   &body,
		Inventory: NewInventory(),
		Equipment: NewEquipment(),
		archetype: archetype,
		stats:     component,
	}
}

// partRank resolves a part type to its position in the creature's declared
// anatomy order; unknown parts sort last.
func (c *creatureState) partRank(part anatomy.PartType) int {
	if c == nil || c.Anatomy == nil {
		return 0
	}
	if rank := c.Anatomy.PartRank(part); rank >= 0 {
		return rank
	}
	return len(c.Anatomy.Parts)
}

// syncMaxHealth rescales every body part after the stats component resolves a
// new derived max health, preserving each part's damage fraction.
func (c *creatureState) syncMaxHealth() {
	if c == nil || c.Anatomy == nil {
		return
	}
	maxHealth := c.stats.GetDerived(stats.DerivedMaxHealth)
	if maxHealth <= 0 {
		return
	}
	c.Anatomy.SetMaxHealth(maxHealth)
}
