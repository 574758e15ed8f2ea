package main

import (
	"testing"

	"sever-and-wield/server/anatomy"
)

func TestEquipmentSetOrdersByAnatomyRank(t *testing.T) {
	eq := NewEquipment()
	eq.Set(anatomy.PartRightHand, 6, ItemStack{Type: ItemTypeIronSword, Quantity: 1})
	eq.Set(anatomy.PartHead, 0, ItemStack{Type: ItemTypeIronHelmet, Quantity: 1})
	eq.Set(anatomy.PartTorso, 2, ItemStack{Type: ItemTypeLeatherJerkin, Quantity: 1})

	want := []anatomy.PartType{anatomy.PartHead, anatomy.PartTorso, anatomy.PartRightHand}
	if len(eq.Parts) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(eq.Parts))
	}
	for i, part := range want {
		if eq.Parts[i].Part != part {
			t.Fatalf("expected entry %d to be %s, got %s", i, part, eq.Parts[i].Part)
		}
	}
}

func TestEquipmentSetReplacesExistingEntry(t *testing.T) {
	eq := NewEquipment()
	eq.Set(anatomy.PartTorso, 2, ItemStack{Type: ItemTypeLeatherJerkin, Quantity: 1})
	eq.Set(anatomy.PartTorso, 2, ItemStack{Type: ItemTypeChainMail, Quantity: 1})

	if len(eq.Parts) != 1 {
		t.Fatalf("expected single entry after replacement, got %d", len(eq.Parts))
	}
	stack, ok := eq.Get(anatomy.PartTorso)
	if !ok || stack.Type != ItemTypeChainMail {
		t.Fatalf("expected chain mail on torso, got %v", stack)
	}
}

func TestEquipmentRemoveAndDrain(t *testing.T) {
	eq := NewEquipment()
	eq.Set(anatomy.PartLeftHand, 5, ItemStack{Type: ItemTypeTorch, Quantity: 1})
	eq.Set(anatomy.PartRightHand, 6, ItemStack{Type: ItemTypeIronSword, Quantity: 1})

	removed, ok := eq.Remove(anatomy.PartLeftHand)
	if !ok || removed.Type != ItemTypeTorch {
		t.Fatalf("expected to remove torch, got %v ok=%v", removed, ok)
	}
	if eq.Occupied(anatomy.PartLeftHand) {
		t.Fatalf("expected left hand to be free after removal")
	}

	drained := eq.DrainAll()
	if len(drained) != 1 || drained[0].Item.Type != ItemTypeIronSword {
		t.Fatalf("expected drain to return the sword, got %v", drained)
	}
	if len(eq.Parts) != 0 {
		t.Fatalf("expected empty equipment after drain, got %d entries", len(eq.Parts))
	}
}

func TestEquipmentCloneIsIndependent(t *testing.T) {
	eq := NewEquipment()
	eq.Set(anatomy.PartHead, 0, ItemStack{Type: ItemTypeIronHelmet, Quantity: 1})

	clone := eq.Clone()
	clone.Parts[0].Item.Type = ItemTypeLeatherBoots
	if eq.Parts[0].Item.Type != ItemTypeIronHelmet {
		t.Fatalf("expected original to keep helmet after clone mutation, got %s", eq.Parts[0].Item.Type)
	}
}
