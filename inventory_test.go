package main

import "testing"

func TestInventoryAddStackMergesByType(t *testing.T) {
	inv := NewInventory()

	slot, err := inv.AddStack(ItemStack{Type: ItemTypeGold, Quantity: 10})
	if err != nil {
		t.Fatalf("unexpected error adding first stack: %v", err)
	}
	if slot != 0 {
		t.Fatalf("expected first stack in slot 0, got %d", slot)
	}
	if len(inv.Slots) != 1 {
		t.Fatalf("expected inventory to have 1 slot, got %d", len(inv.Slots))
	}

	mergedSlot, err := inv.AddStack(ItemStack{Type: ItemTypeGold, Quantity: 5})
	if err != nil {
		t.Fatalf("unexpected error merging stack: %v", err)
	}
	if mergedSlot != slot {
		t.Fatalf("expected merge into slot %d, got %d", slot, mergedSlot)
	}
	if inv.Slots[0].Item.Quantity != 15 {
		t.Fatalf("expected merged quantity 15, got %d", inv.Slots[0].Item.Quantity)
	}
}

func TestInventoryNonStackableOccupiesOwnSlot(t *testing.T) {
	inv := NewInventory()
	if _, err := inv.AddStack(ItemStack{Type: ItemTypeIronSword, Quantity: 1}); err != nil {
		t.Fatalf("unexpected error adding sword: %v", err)
	}
	if _, err := inv.AddStack(ItemStack{Type: ItemTypeIronSword, Quantity: 1}); err != nil {
		t.Fatalf("unexpected error adding second sword: %v", err)
	}
	if len(inv.Slots) != 2 {
		t.Fatalf("expected two slots for non-stackable swords, got %d", len(inv.Slots))
	}
}

func TestInventoryMoveSlotUpdatesOrder(t *testing.T) {
	inv := NewInventory()
	if _, err := inv.AddStack(ItemStack{Type: ItemTypeGold, Quantity: 1}); err != nil {
		t.Fatalf("unexpected error adding gold: %v", err)
	}
	if _, err := inv.AddStack(ItemStack{Type: ItemTypeHealthPotion, Quantity: 1}); err != nil {
		t.Fatalf("unexpected error adding potion: %v", err)
	}

	if err := inv.MoveSlot(0, 1); err != nil {
		t.Fatalf("unexpected error moving slot: %v", err)
	}
	if inv.Slots[0].Item.Type != ItemTypeHealthPotion || inv.Slots[1].Item.Type != ItemTypeGold {
		t.Fatalf("expected potion then gold after move, got %s then %s", inv.Slots[0].Item.Type, inv.Slots[1].Item.Type)
	}
	if inv.Slots[0].Slot != 0 || inv.Slots[1].Slot != 1 {
		t.Fatalf("expected slots to be renumbered to 0 and 1, got %d and %d", inv.Slots[0].Slot, inv.Slots[1].Slot)
	}
}

func TestInventoryRemoveQuantityRemovesEmptySlot(t *testing.T) {
	inv := NewInventory()
	if _, err := inv.AddStack(ItemStack{Type: ItemTypeGold, Quantity: 3}); err != nil {
		t.Fatalf("unexpected error adding stack: %v", err)
	}

	removed, err := inv.RemoveQuantity(0, 2)
	if err != nil {
		t.Fatalf("unexpected error removing quantity: %v", err)
	}
	if removed.Quantity != 2 {
		t.Fatalf("expected to remove 2, got %d", removed.Quantity)
	}
	if inv.Slots[0].Item.Quantity != 1 {
		t.Fatalf("expected remaining quantity 1, got %d", inv.Slots[0].Item.Quantity)
	}

	removed, err = inv.RemoveQuantity(0, 1)
	if err != nil {
		t.Fatalf("unexpected error removing final quantity: %v", err)
	}
	if len(inv.Slots) != 0 {
		t.Fatalf("expected inventory to be empty, got %d slots", len(inv.Slots))
	}
	if removed.Type != ItemTypeGold {
		t.Fatalf("expected removed stack to be gold, got %s", removed.Type)
	}
}

func TestInventoryCloneCreatesDeepCopy(t *testing.T) {
	inv := NewInventory()
	if _, err := inv.AddStack(ItemStack{Type: ItemTypeGold, Quantity: 5}); err != nil {
		t.Fatalf("unexpected error adding stack: %v", err)
	}

	clone := inv.Clone()
	clone.Slots[0].Item.Quantity = 99
	if inv.Slots[0].Item.Quantity != 5 {
		t.Fatalf("expected original quantity 5 after clone mutation, got %d", inv.Slots[0].Item.Quantity)
	}
}

func TestInventoryDrainAllClearsSlots(t *testing.T) {
	inv := NewInventory()
	if _, err := inv.AddStack(ItemStack{Type: ItemTypeGold, Quantity: 5}); err != nil {
		t.Fatalf("unexpected error adding gold: %v", err)
	}
	if _, err := inv.AddStack(ItemStack{Type: ItemTypeHealthPotion, Quantity: 2}); err != nil {
		t.Fatalf("unexpected error adding potion: %v", err)
	}

	stacks := inv.DrainAll()
	if len(stacks) != 2 {
		t.Fatalf("expected 2 drained stacks, got %d", len(stacks))
	}
	if len(inv.Slots) != 0 {
		t.Fatalf("expected empty inventory after drain, got %d slots", len(inv.Slots))
	}
	if stacks[0].Type != ItemTypeGold || stacks[1].Type != ItemTypeHealthPotion {
		t.Fatalf("expected gold then potion, got %s then %s", stacks[0].Type, stacks[1].Type)
	}
}
