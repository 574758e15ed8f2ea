package main

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"

	"sever-and-wield/server/anatomy"
	"sever-and-wield/server/logging"
)

type worldConfig struct {
	Seed string
}

func (c worldConfig) normalized() worldConfig {
	if c.Seed == "" {
		c.Seed = "prototype"
	}
	return c
}

// World owns the authoritative creature roster. All mutation goes through the
// hub goroutine, so no internal locking is needed.
type World struct {
	creatures   map[string]*creatureState
	config      worldConfig
	rng         *rand.Rand
	seed        string
	publisher   logging.Publisher
	currentTick uint64
	patches     []Patch
}

func newWorld(cfg worldConfig, publisher logging.Publisher) *World {
	normalized := cfg.normalized()
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	return &World{
		creatures: make(map[string]*creatureState),
		config:    normalized,
		rng:       rand.New(rand.NewSource(seedFromString(normalized.Seed))),
		seed:      normalized.Seed,
		publisher: publisher,
	}
}

func seedFromString(seed string) int64 {
	if seed == "" {
		return defaultWorldSeed
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	return int64(h.Sum64())
}

// AddCreature registers a creature with a fresh anatomy for the given kind.
func (w *World) AddCreature(id, name string, kind anatomy.Kind) (*creatureState, error) {
	if w == nil {
		return nil, fmt.Errorf("world not initialised")
	}
	if id == "" {
		return nil, fmt.Errorf("creature id must be provided")
	}
	if _, exists := w.creatures[id]; exists {
		return nil, fmt.Errorf("creature %q already exists", id)
	}
	creature := newCreatureState(id, name, kind)
	w.creatures[id] = creature
	return creature, nil
}

// RemoveCreature drops a creature from the roster, returning its inventory
// and equipment contents so callers can scatter them.
func (w *World) RemoveCreature(id string) []ItemStack {
	if w == nil {
		return nil
	}
	creature, ok := w.creatures[id]
	if !ok {
		return nil
	}
	delete(w.creatures, id)

	drops := creature.Inventory.DrainAll()
	for _, entry := range creature.Equipment.DrainAll() {
		if entry.Item.Type == "" || entry.Item.Quantity <= 0 {
			continue
		}
		drops = append(drops, entry.Item)
	}
	w.appendPatch(Patch{Kind: PatchCreatureRemoved, EntityID: id})
	return drops
}

// Creature returns the creature with the given id, if present.
func (w *World) Creature(id string) (*creatureState, bool) {
	if w == nil {
		return nil, false
	}
	creature, ok := w.creatures[id]
	return creature, ok
}

// CreatureIDs returns the roster ids in sorted order.
func (w *World) CreatureIDs() []string {
	ids := make([]string, 0, len(w.creatures))
	for id := range w.creatures {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (w *World) appendPatch(patch Patch) {
	w.patches = append(w.patches, patch)
}

// drainPatches returns the accumulated diff entries and resets the buffer.
func (w *World) drainPatches() []Patch {
	if len(w.patches) == 0 {
		return nil
	}
	drained := w.patches
	w.patches = nil
	return drained
}

func (w *World) advanceTick() uint64 {
	w.currentTick++
	return w.currentTick
}
