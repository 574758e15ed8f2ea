package anatomy

import (
	"math/rand"
	"strings"
)

// Hit-targeting profiles keyed by part-type fragments. The damage factor
// scales incoming damage for the part; the difficulty offset shifts the
// selection weight when an attack lands on a random part (positive = easier
// to hit).
type hitProfile struct {
	damageFactor     float64
	difficultyOffset float64
}

var hitProfiles = map[string]hitProfile{
	"head":  {1.5, -30},
	"torso": {1.0, 15},
	"leg":   {0.9, -5},
	"arm":   {0.9, -10},
	"hand":  {0.8, -25},
	"foot":  {0.8, -25},
}

func profileFor(partType PartType) hitProfile {
	name := string(partType)
	if profile, ok := hitProfiles[name]; ok {
		return profile
	}
	for key, profile := range hitProfiles {
		if strings.Contains(name, key) {
			return profile
		}
	}
	return hitProfile{damageFactor: 1.0}
}

// DamageFactor returns the damage multiplier applied to hits on this part.
func (p *BodyPart) DamageFactor() float64 {
	return profileFor(p.Type).damageFactor
}

// TakeDamage reduces the part's health, clamped at zero, and returns the
// damage actually absorbed.
func (p *BodyPart) TakeDamage(amount float64) float64 {
	if amount <= 0 || p.Destroyed() {
		return 0
	}
	actual := amount
	if actual > p.Health {
		actual = p.Health
	}
	p.Health -= actual
	return actual
}

// Heal restores health up to the part's maximum and returns the amount
// actually restored. A destroyed part can be healed back into service.
func (p *BodyPart) Heal(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if missing := p.MaxHealth - p.Health; actual > missing {
		actual = missing
	}
	if actual <= 0 {
		return 0
	}
	p.Health += actual
	return actual
}

// DamageRandomPart picks an undestroyed part weighted by how easy it is to
// hit and applies the damage. Returns the struck part, or nil when every
// part is already destroyed or the roll absorbed nothing.
func (a *Anatomy) DamageRandomPart(rng *rand.Rand, damage float64) *BodyPart {
	available := make([]*BodyPart, 0, len(a.Parts))
	totalWeight := 0.0
	weights := make([]float64, 0, len(a.Parts))
	for i := range a.Parts {
		part := &a.Parts[i]
		if part.Destroyed() {
			continue
		}
		weight := 100 + profileFor(part.Type).difficultyOffset
		if weight < 1 {
			weight = 1
		}
		available = append(available, part)
		weights = append(weights, weight)
		totalWeight += weight
	}
	if len(available) == 0 {
		return nil
	}

	roll := totalWeight
	if rng != nil {
		roll = rng.Float64() * totalWeight
	}
	chosen := available[len(available)-1]
	for i, part := range available {
		roll -= weights[i]
		if roll < 0 {
			chosen = part
			break
		}
	}

	if chosen.TakeDamage(damage*chosen.DamageFactor()) <= 0 {
		return nil
	}
	return chosen
}

// HealAllParts restores every part equally and returns the total healing.
func (a *Anatomy) HealAllParts(amount float64) float64 {
	total := 0.0
	for i := range a.Parts {
		total += a.Parts[i].Heal(amount)
	}
	return total
}

// SetMaxHealth rescales every part against a new creature health pool while
// preserving each part's current damage fraction.
func (a *Anatomy) SetMaxHealth(maxHealth float64) {
	for i := range a.Parts {
		part := &a.Parts[i]
		fraction := 1.0
		if part.MaxHealth > 0 {
			fraction = part.Health / part.MaxHealth
		}
		part.MaxHealth = part.HealthRatio * maxHealth
		part.Health = part.MaxHealth * fraction
	}
}

// CanMove reports whether at least one locomotion part survives. Simple
// anatomies move as long as their body does.
func (a *Anatomy) CanMove() bool {
	total, functional := a.countTagged("locomotion")
	if total == 0 {
		return a.Alive()
	}
	return functional > 0
}

// CanManipulate reports whether at least one grasping part survives.
func (a *Anatomy) CanManipulate() bool {
	_, functional := a.countTagged("grasp")
	return functional > 0
}

// MovementPenalty grows from 0 (all locomotion parts intact) to 1 (none
// left). Simple anatomies scale with body damage instead.
func (a *Anatomy) MovementPenalty() float64 {
	total, functional := a.countTagged("locomotion")
	if total == 0 {
		if body := a.Part(PartTorso); body != nil && body.MaxHealth > 0 {
			return 1 - body.Health/body.MaxHealth
		}
		return 0
	}
	return 1 - float64(functional)/float64(total)
}

// ManipulationPenalty mirrors MovementPenalty for grasping parts.
func (a *Anatomy) ManipulationPenalty() float64 {
	total, functional := a.countTagged("grasp")
	if total == 0 {
		return 0
	}
	return 1 - float64(functional)/float64(total)
}

func (a *Anatomy) countTagged(tag Tag) (total, functional int) {
	for i := range a.Parts {
		if !a.Parts[i].Tags.Contains(tag) {
			continue
		}
		total++
		if !a.Parts[i].Destroyed() {
			functional++
		}
	}
	return total, functional
}

// StatusLines describes every damaged or destroyed part, one line per part,
// matching the original injury readout.
func (a *Anatomy) StatusLines() []string {
	var lines []string
	for i := range a.Parts {
		part := &a.Parts[i]
		if !part.Damaged() {
			continue
		}
		lines = append(lines, part.Name+": "+part.Condition())
	}
	if len(lines) == 0 {
		lines = append(lines, "All body parts are healthy.")
	}
	return lines
}
