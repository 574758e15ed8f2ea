package main

import (
	"sort"

	"sever-and-wield/server/anatomy"
)

// EquippedItem stores the item occupying a specific body part. The rank is
// the part's position in the wearer's declared anatomy order so listings stay
// deterministic across sessions.
type EquippedItem struct {
	Part anatomy.PartType `json:"part"`
	Item ItemStack        `json:"item"`
	rank int
}

// Equipment holds the deterministic equipped item list for a creature, one
// entry per occupied body part.
type Equipment struct {
	Parts []EquippedItem `json:"parts,omitempty"`
}

// NewEquipment returns an empty equipment container.
func NewEquipment() Equipment {
	return Equipment{Parts: nil}
}

func (e Equipment) Clone() Equipment {
	if len(e.Parts) == 0 {
		return Equipment{}
	}
	cloned := make([]EquippedItem, len(e.Parts))
	copy(cloned, e.Parts)
	return Equipment{Parts: cloned}
}

func (e *Equipment) Get(part anatomy.PartType) (ItemStack, bool) {
	if e == nil {
		return ItemStack{}, false
	}
	for _, entry := range e.Parts {
		if entry.Part == part {
			return entry.Item, true
		}
	}
	return ItemStack{}, false
}

// Occupied reports whether any item sits on the given part.
func (e *Equipment) Occupied(part anatomy.PartType) bool {
	_, ok := e.Get(part)
	return ok
}

// Set places the stack on the part, replacing whatever was there. The rank is
// the part's index in the wearer's anatomy declared order.
func (e *Equipment) Set(part anatomy.PartType, rank int, stack ItemStack) {
	if e == nil {
		return
	}
	if stack.Quantity <= 0 {
		stack.Quantity = 1
	}
	for i := range e.Parts {
		if e.Parts[i].Part == part {
			e.Parts[i].Item = stack
			e.Parts[i].rank = rank
			return
		}
	}
	e.Parts = append(e.Parts, EquippedItem{Part: part, Item: stack, rank: rank})
	e.sortParts()
}

func (e *Equipment) Remove(part anatomy.PartType) (ItemStack, bool) {
	if e == nil || len(e.Parts) == 0 {
		return ItemStack{}, false
	}
	for i := range e.Parts {
		if e.Parts[i].Part != part {
			continue
		}
		removed := e.Parts[i].Item
		e.Parts = append(e.Parts[:i], e.Parts[i+1:]...)
		return removed, true
	}
	return ItemStack{}, false
}

func (e *Equipment) DrainAll() []EquippedItem {
	if e == nil || len(e.Parts) == 0 {
		return nil
	}
	drained := make([]EquippedItem, len(e.Parts))
	copy(drained, e.Parts)
	e.Parts = nil
	return drained
}

func (e *Equipment) sortParts() {
	if len(e.Parts) <= 1 {
		return
	}
	sort.Slice(e.Parts, func(i, j int) bool {
		if e.Parts[i].rank == e.Parts[j].rank {
			return e.Parts[i].Part < e.Parts[j].Part
		}
		return e.Parts[i].rank < e.Parts[j].rank
	})
}

func equipmentsEqual(a, b Equipment) bool {
	if len(a.Parts) != len(b.Parts) {
		return false
	}
	for i := range a.Parts {
		if a.Parts[i].Part != b.Parts[i].Part {
			return false
		}
		if a.Parts[i].Item != b.Parts[i].Item {
			return false
		}
	}
	return true
}
