package main

import "fmt"

// ItemStack represents a quantity of a specific item type and fungibility key.
type ItemStack struct {
	Type           ItemType `json:"type"`
	FungibilityKey string   `json:"fungibility_key"`
	Quantity       int      `json:"quantity"`
}

// InventorySlot stores an item stack at a specific position.
type InventorySlot struct {
	Slot int       `json:"slot"`
	Item ItemStack `json:"item"`
}

// Inventory maintains an ordered list of slots. Stacks of the same type and
// fungibility key merge; everything else occupies its own slot.
type Inventory struct {
	Slots []InventorySlot `json:"slots"`
}

func NewInventory() Inventory {
	return Inventory{Slots: make([]InventorySlot, 0)}
}

// AddStack merges the stack into an existing slot with a matching type and
// fungibility key, or appends a new slot at the end. Non-stackable item types
// always occupy a fresh slot. Returns the index of the slot holding the stack.
func (inv *Inventory) AddStack(stack ItemStack) (int, error) {
	if stack.Quantity <= 0 {
		return -1, fmt.Errorf("stack quantity must be positive, got %d", stack.Quantity)
	}
	def, ok := ItemDefinitionFor(stack.Type)
	if !ok {
		return -1, fmt.Errorf("unknown item type %q", stack.Type)
	}
	if stack.FungibilityKey == "" {
		stack.FungibilityKey = def.FungibilityKey
	}

	if def.Stackable {
		for i := range inv.Slots {
			slot := &inv.Slots[i]
			if slot.Item.Type == stack.Type && slot.Item.FungibilityKey == stack.FungibilityKey {
				slot.Item.Quantity += stack.Quantity
				return i, nil
			}
		}
	}

	inv.Slots = append(inv.Slots, InventorySlot{
		Slot: len(inv.Slots),
		Item: stack,
	})
	return len(inv.Slots) - 1, nil
}

// RemoveQuantity removes up to quantity items from the slot at the given
// index. An emptied slot is dropped and the remaining slots renumbered so
// indices stay dense.
func (inv *Inventory) RemoveQuantity(slotIndex, quantity int) (ItemStack, error) {
	if slotIndex < 0 || slotIndex >= len(inv.Slots) {
		return ItemStack{}, fmt.Errorf("slot index %d out of range", slotIndex)
	}
	if quantity <= 0 {
		return ItemStack{}, fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	slot := &inv.Slots[slotIndex]
	take := quantity
	if take > slot.Item.Quantity {
		take = slot.Item.Quantity
	}
	removed := slot.Item
	removed.Quantity = take
	slot.Item.Quantity -= take

	if slot.Item.Quantity <= 0 {
		inv.Slots = append(inv.Slots[:slotIndex], inv.Slots[slotIndex+1:]...)
		inv.renumber()
	}
	return removed, nil
}

// QuantityOf reports the total count of the given item type across all slots.
func (inv *Inventory) QuantityOf(itemType ItemType) int {
	total := 0
	for _, slot := range inv.Slots {
		if slot.Item.Type == itemType {
			total += slot.Item.Quantity
		}
	}
	return total
}

// MoveSlot relocates the stack at from so it occupies position to, shifting
// the slots between them.
func (inv *Inventory) MoveSlot(from, to int) error {
	if from < 0 || from >= len(inv.Slots) {
		return fmt.Errorf("source slot %d out of range", from)
	}
	if to < 0 || to >= len(inv.Slots) {
		return fmt.Errorf("target slot %d out of range", to)
	}
	if from == to {
		return nil
	}

	moved := inv.Slots[from]
	inv.Slots = append(inv.Slots[:from], inv.Slots[from+1:]...)
	rest := append([]InventorySlot{moved}, inv.Slots[to:]...)
	inv.Slots = append(inv.Slots[:to], rest...)
	inv.renumber()
	return nil
}

// Clone returns a deep copy of the inventory.
func (inv Inventory) Clone() Inventory {
	cloned := Inventory{Slots: make([]InventorySlot, len(inv.Slots))}
	copy(cloned.Slots, inv.Slots)
	return cloned
}

// DrainAll empties the inventory and returns the stacks it held in slot order.
func (inv *Inventory) DrainAll() []ItemStack {
	stacks := make([]ItemStack, 0, len(inv.Slots))
	for _, slot := range inv.Slots {
		if slot.Item.Quantity <= 0 {
			continue
		}
		stacks = append(stacks, slot.Item)
	}
	inv.Slots = inv.Slots[:0]
	return stacks
}

func (inv *Inventory) renumber() {
	for i := range inv.Slots {
		inv.Slots[i].Slot = i
	}
}

func inventoriesEqual(a, b Inventory) bool {
	if len(a.Slots) != len(b.Slots) {
		return false
	}
	for i := range a.Slots {
		if a.Slots[i] != b.Slots[i] {
			return false
		}
	}
	return true
}
