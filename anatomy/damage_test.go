package anatomy

import (
	"math"
	"math/rand"
	"testing"
)

func TestTakeDamageClampsAtZero(t *testing.T) {
	a := NewAnatomy(KindHumanoid, 100)
	hand := a.Part(PartLeftHand)
	if hand == nil {
		t.Fatalf("expected humanoid anatomy to include a left hand")
	}

	dealt := hand.TakeDamage(hand.MaxHealth * 2)
	if math.Abs(dealt-hand.MaxHealth) > 1e-9 {
		t.Fatalf("expected damage capped at %.2f, dealt %.2f", hand.MaxHealth, dealt)
	}
	if !hand.Destroyed() {
		t.Fatalf("expected hand destroyed at zero health")
	}
	if extra := hand.TakeDamage(5); extra != 0 {
		t.Fatalf("expected destroyed part to absorb nothing, got %.2f", extra)
	}
}

func TestHealRestoresDestroyedPart(t *testing.T) {
	a := NewAnatomy(KindHumanoid, 100)
	hand := a.Part(PartRightHand)
	hand.TakeDamage(hand.MaxHealth)
	if !hand.Destroyed() {
		t.Fatalf("expected hand destroyed")
	}

	healed := hand.Heal(5)
	if healed != 5 {
		t.Fatalf("expected 5 healing, got %.2f", healed)
	}
	if hand.Destroyed() {
		t.Fatalf("expected healed hand back in service")
	}
	if over := hand.Heal(hand.MaxHealth * 10); hand.Health != hand.MaxHealth {
		t.Fatalf("expected heal clamped at max (healed %.2f, health %.2f)", over, hand.Health)
	}
}

func TestAliveRequiresVitalParts(t *testing.T) {
	a := NewAnatomy(KindHumanoid, 100)
	if !a.Alive() {
		t.Fatalf("expected fresh anatomy to be alive")
	}

	a.Part(PartLeftLeg).TakeDamage(1e9)
	if !a.Alive() {
		t.Fatalf("expected losing a limb to be survivable")
	}

	a.Part(PartHead).TakeDamage(1e9)
	if a.Alive() {
		t.Fatalf("expected destroying a vital part to kill the creature")
	}
}

func TestDamageRandomPartSkipsDestroyed(t *testing.T) {
	a := NewAnatomy(KindSimple, 40)
	rng := rand.New(rand.NewSource(7))

	hit := a.DamageRandomPart(rng, 10)
	if hit == nil || hit.Type != PartTorso {
		t.Fatalf("expected the only part to take the hit")
	}

	a.Part(PartTorso).TakeDamage(1e9)
	if hit := a.DamageRandomPart(rng, 10); hit != nil {
		t.Fatalf("expected no hit once every part is destroyed, struck %s", hit.Type)
	}
}

func TestDamageRandomPartDeterministicForSeed(t *testing.T) {
	first := NewAnatomy(KindHumanoid, 100)
	second := NewAnatomy(KindHumanoid, 100)

	rngA := rand.New(rand.NewSource(99))
	rngB := rand.New(rand.NewSource(99))
	for i := 0; i < 20; i++ {
		hitA := first.DamageRandomPart(rngA, 3)
		hitB := second.DamageRandomPart(rngB, 3)
		switch {
		case hitA == nil && hitB == nil:
		case hitA == nil || hitB == nil:
			t.Fatalf("expected identical hit sequence, diverged at roll %d", i)
		case hitA.Type != hitB.Type:
			t.Fatalf("expected identical hit sequence, got %s vs %s at roll %d", hitA.Type, hitB.Type, i)
		}
	}
}

func TestMovementPenaltyTracksLocomotionLoss(t *testing.T) {
	a := NewAnatomy(KindHumanoid, 100)
	if penalty := a.MovementPenalty(); penalty != 0 {
		t.Fatalf("expected no penalty while intact, got %.2f", penalty)
	}

	a.Part(PartLeftLeg).TakeDamage(1e9)
	a.Part(PartLeftFoot).TakeDamage(1e9)
	penalty := a.MovementPenalty()
	if math.Abs(penalty-0.5) > 1e-9 {
		t.Fatalf("expected half the locomotion parts lost to give penalty 0.5, got %.2f", penalty)
	}
	if !a.CanMove() {
		t.Fatalf("expected creature to still move on one leg")
	}

	a.Part(PartRightLeg).TakeDamage(1e9)
	a.Part(PartRightFoot).TakeDamage(1e9)
	if a.CanMove() {
		t.Fatalf("expected creature immobile with no locomotion parts")
	}
}

func TestManipulationPenaltyTracksGraspLoss(t *testing.T) {
	a := NewAnatomy(KindHumanoid, 100)
	a.Part(PartLeftHand).TakeDamage(1e9)
	if math.Abs(a.ManipulationPenalty()-0.5) > 1e-9 {
		t.Fatalf("expected one lost hand to cost half manipulation, got %.2f", a.ManipulationPenalty())
	}
	if !a.CanManipulate() {
		t.Fatalf("expected one working hand to suffice")
	}
	a.Part(PartRightHand).TakeDamage(1e9)
	if a.CanManipulate() {
		t.Fatalf("expected no manipulation with both hands gone")
	}
}

func TestSetMaxHealthPreservesDamageFraction(t *testing.T) {
	a := NewAnatomy(KindHumanoid, 100)
	torso := a.Part(PartTorso)
	torso.TakeDamage(torso.MaxHealth / 2)

	a.SetMaxHealth(200)
	torso = a.Part(PartTorso)
	if math.Abs(torso.MaxHealth-200) > 1e-9 {
		t.Fatalf("expected torso max health 200, got %.2f", torso.MaxHealth)
	}
	if math.Abs(torso.Health-100) > 1e-9 {
		t.Fatalf("expected half-damaged torso to stay half damaged, got %.2f", torso.Health)
	}
}

func TestStatusLinesReportDamage(t *testing.T) {
	a := NewAnatomy(KindHumanoid, 100)
	lines := a.StatusLines()
	if len(lines) != 1 || lines[0] != "All body parts are healthy." {
		t.Fatalf("expected healthy readout, got %v", lines)
	}

	head := a.Part(PartHead)
	head.TakeDamage(head.MaxHealth)
	lines = a.StatusLines()
	if len(lines) != 1 || lines[0] != "head: destroyed" {
		t.Fatalf("expected destroyed head readout, got %v", lines)
	}
}
