package stats

import "math"

func computeDerived(total ValueSet) DerivedSet {
	var derived DerivedSet

	power := clamp(total[StatPower], 0, 1e9)
	defense := clamp(total[StatDefense], 0, 1e9)
	agility := clamp(total[StatAgility], 0, 1e9)
	vitality := clamp(total[StatVitality], 0, 1e9)

	derived[DerivedMaxHealth] = baseHealthFlat + vitality*vitalityHealthScalar
	derived[DerivedAttack] = power * powerAttackScalar
	derived[DerivedDamageReduction] = computeDamageReduction(defense)
	derived[DerivedEvasion] = clamp(baseEvasion+agility*agilityEvasionScalar, 0, 0.9)
	derived[DerivedCarryCapacity] = baseCarryFlat + power*powerCarryScalar

	return derived
}

// computeDamageReduction approaches but never reaches full immunity as
// defense stacks up.
func computeDamageReduction(defense float64) float64 {
	reduction := 1 - math.Pow(decayRatio, defense)
	return clamp(reduction, 0, maxDamageReduction)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
