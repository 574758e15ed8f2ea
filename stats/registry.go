package stats

// Archetype identifies the default stat seed used to initialise a component.
type Archetype uint8

const (
	ArchetypeAdventurer Archetype = iota
	ArchetypeGiantSpider
	ArchetypeSlime
)

var archetypeBase = map[Archetype]ValueSet{
	ArchetypeAdventurer: {
		StatPower:    16,
		StatDefense:  10,
		StatAgility:  12,
		StatVitality: 20,
	},
	ArchetypeGiantSpider: {
		StatPower:    10,
		StatDefense:  6,
		StatAgility:  16,
		StatVitality: 12,
	},
	ArchetypeSlime: {
		StatPower:    4,
		StatDefense:  2,
		StatAgility:  2,
		StatVitality: 8,
	},
}

// DefaultBase returns a copy of the base values for the given archetype.
func DefaultBase(archetype Archetype) ValueSet {
	base := archetypeBase[archetype]
	return base
}

// DefaultComponent constructs and resolves a component using the archetype defaults.
func DefaultComponent(archetype Archetype) Component {
	comp := NewComponent(DefaultBase(archetype))
	comp.Resolve(0)
	return comp
}

// DefaultDerived returns the resolved derived stats for the given archetype.
func DefaultDerived(archetype Archetype) DerivedSet {
	comp := DefaultComponent(archetype)
	return comp.DerivedValues()
}

// DefaultMaxHealth returns the resolved max health for the given archetype.
func DefaultMaxHealth(archetype Archetype) float64 {
	derived := DefaultDerived(archetype)
	return derived[DerivedMaxHealth]
}

// Formula tuning values. Intentionally simple to keep early balancing
// predictable.
const (
	baseHealthFlat       = 0.0
	vitalityHealthScalar = 5.0
	powerAttackScalar    = 0.6
	baseEvasion          = 0.05
	agilityEvasionScalar = 0.005
	baseCarryFlat        = 20.0
	powerCarryScalar     = 2.5
	maxDamageReduction   = 0.85
	decayRatio           = 0.95
)
