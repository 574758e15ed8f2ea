package anatomy

import "testing"

func TestHumanoidTemplateDeclaredOrder(t *testing.T) {
	a := NewAnatomy(KindHumanoid, 100)
	expected := []PartType{
		PartHead, PartNeck, PartTorso,
		PartLeftArm, PartRightArm, PartLeftHand, PartRightHand,
		PartLeftLeg, PartRightLeg, PartLeftFoot, PartRightFoot,
	}
	if len(a.Parts) != len(expected) {
		t.Fatalf("expected %d humanoid parts, got %d", len(expected), len(a.Parts))
	}
	for i, partType := range expected {
		if a.Parts[i].Type != partType {
			t.Fatalf("expected part %d to be %s, got %s", i, partType, a.Parts[i].Type)
		}
	}
}

func TestPairedPartsHaveDistinctTagSets(t *testing.T) {
	a := NewAnatomy(KindHumanoid, 100)
	pairs := [][2]PartType{
		{PartLeftArm, PartRightArm},
		{PartLeftHand, PartRightHand},
		{PartLeftLeg, PartRightLeg},
		{PartLeftFoot, PartRightFoot},
	}
	for _, pair := range pairs {
		left := a.Part(pair[0])
		right := a.Part(pair[1])
		if left == nil || right == nil {
			t.Fatalf("missing paired parts %v", pair)
		}
		if !left.Tags.Contains("left") || left.Tags.Contains("right") {
			t.Fatalf("%s carries wrong side tags: %v", left.Type, left.Tags.Sorted())
		}
		if !right.Tags.Contains("right") || right.Tags.Contains("left") {
			t.Fatalf("%s carries wrong side tags: %v", right.Type, right.Tags.Sorted())
		}
	}
}

func TestInstantiateScalesHealthByRatio(t *testing.T) {
	a := NewAnatomy(KindHumanoid, 100)
	torso := a.Part(PartTorso)
	if torso.MaxHealth != 100 {
		t.Fatalf("expected torso to carry the full pool, got %.2f", torso.MaxHealth)
	}
	head := a.Part(PartHead)
	if head.MaxHealth != 50 {
		t.Fatalf("expected head at half the pool, got %.2f", head.MaxHealth)
	}
	for i := range a.Parts {
		if a.Parts[i].Health != a.Parts[i].MaxHealth {
			t.Fatalf("expected %s to start undamaged", a.Parts[i].Type)
		}
	}
}

func TestTemplateInstancesShareNoTagState(t *testing.T) {
	first := NewAnatomy(KindHumanoid, 100)
	second := NewAnatomy(KindHumanoid, 100)

	first.Part(PartLeftHand).Tags["scratch"] = struct{}{}
	if second.Part(PartLeftHand).Tags.Contains("scratch") {
		t.Fatalf("expected template instances to own independent tag sets")
	}
}

func TestUnknownKindFallsBackToSimple(t *testing.T) {
	a := NewAnatomy("gelatinous", 40)
	if len(a.Parts) != 1 || a.Parts[0].Type != PartTorso {
		t.Fatalf("expected unknown anatomy kinds to get the simple layout, got %v", a.Parts)
	}
}

func TestRegisterTemplateServesExoticKind(t *testing.T) {
	tmpl := Template{
		Kind: "wyrm",
		Parts: []PartSpec{
			{Type: PartHead, Name: "head", HealthRatio: 0.5, Vital: true,
				Tags: []Tag{"head", "armor"}},
			{Type: "serpentine_body", Name: "serpentine body", HealthRatio: 1.0, Vital: true,
				Tags: []Tag{"torso", "armor", "core"}},
			{Type: PartTail, Name: "tail", HealthRatio: 0.4, Limb: true,
				Tags: []Tag{"tail"}},
		},
	}
	if err := RegisterTemplate(tmpl); err != nil {
		t.Fatalf("unexpected error registering template: %v", err)
	}
	t.Cleanup(func() {
		registryMu.Lock()
		delete(extraTemplates, "wyrm")
		registryMu.Unlock()
	})

	a := NewAnatomy("wyrm", 100)
	if len(a.Parts) != 3 {
		t.Fatalf("expected the registered wyrm layout, got %v", a.Parts)
	}
	if a.Parts[1].Type != "serpentine_body" || a.Parts[1].MaxHealth != 100 {
		t.Fatalf("expected serpentine body at the full pool, got %+v", a.Parts[1])
	}
	if a.Parts[2].Type != PartTail {
		t.Fatalf("expected tail last in declared order, got %s", a.Parts[2].Type)
	}
}

func TestRegisterTemplateRejectsBuiltinKinds(t *testing.T) {
	err := RegisterTemplate(Template{
		Kind:  KindHumanoid,
		Parts: []PartSpec{{Type: PartTorso, Name: "body", HealthRatio: 1.0}},
	})
	if err == nil {
		t.Fatalf("expected built-in kinds to be unregistrable")
	}
	if a := NewAnatomy(KindHumanoid, 100); len(a.Parts) != 11 {
		t.Fatalf("expected the built-in humanoid layout to survive, got %d parts", len(a.Parts))
	}
}

func TestCloneIsDeep(t *testing.T) {
	a := NewAnatomy(KindArachnid, 80)
	clone := a.Clone()

	clone.Part(PartThorax).TakeDamage(1e9)
	if a.Part(PartThorax).Destroyed() {
		t.Fatalf("expected clone damage to leave the original untouched")
	}
	clone.Part(PartAbdomen).Tags["extra"] = struct{}{}
	if a.Part(PartAbdomen).Tags.Contains("extra") {
		t.Fatalf("expected cloned tag sets to be independent")
	}
}
