package anatomy

// PartType identifies a body part within one anatomy, e.g. "left_hand".
type PartType string

const (
	PartHead  PartType = "head"
	PartNeck  PartType = "neck"
	PartTorso PartType = "torso"

	PartLeftArm   PartType = "left_arm"
	PartRightArm  PartType = "right_arm"
	PartLeftHand  PartType = "left_hand"
	PartRightHand PartType = "right_hand"

	PartLeftLeg   PartType = "left_leg"
	PartRightLeg  PartType = "right_leg"
	PartLeftFoot  PartType = "left_foot"
	PartRightFoot PartType = "right_foot"

	PartFrontLeftLeg   PartType = "front_left_leg"
	PartFrontRightLeg  PartType = "front_right_leg"
	PartSecondLeftLeg  PartType = "second_left_leg"
	PartSecondRightLeg PartType = "second_right_leg"
	PartThirdLeftLeg   PartType = "third_left_leg"
	PartThirdRightLeg  PartType = "third_right_leg"
	PartBackLeftLeg    PartType = "back_left_leg"
	PartBackRightLeg   PartType = "back_right_leg"

	PartTail    PartType = "tail"
	PartWings   PartType = "wings"
	PartThorax  PartType = "thorax"
	PartAbdomen PartType = "abdomen"
)

// Kind names a built-in anatomy layout.
type Kind string

const (
	KindHumanoid  Kind = "humanoid"
	KindQuadruped Kind = "quadruped"
	KindArachnid  Kind = "arachnid"
	KindSimple    Kind = "simple"
)

// BodyPart is one part of a creature's body. Tags describe what the part can
// accommodate; they are fixed after construction. A part counts as destroyed
// once its health reaches zero.
type BodyPart struct {
	Type        PartType `json:"type"`
	Name        string   `json:"name"`
	Tags        TagSet   `json:"tags"`
	HealthRatio float64  `json:"healthRatio"`
	MaxHealth   float64  `json:"maxHealth"`
	Health      float64  `json:"health"`
	Vital       bool     `json:"vital,omitempty"`
	Limb        bool     `json:"limb,omitempty"`
	Protection  float64  `json:"protection,omitempty"`
}

// Destroyed reports whether the part has been reduced to zero health.
func (p *BodyPart) Destroyed() bool {
	return p.Health <= 0
}

// Damaged reports whether the part has taken any damage at all.
func (p *BodyPart) Damaged() bool {
	return p.Health < p.MaxHealth
}

// Condition describes the part's damage level in the words the original
// injury readout used.
func (p *BodyPart) Condition() string {
	if !p.Damaged() {
		return "healthy"
	}
	if p.MaxHealth <= 0 {
		return "destroyed"
	}
	switch ratio := p.Health / p.MaxHealth; {
	case ratio > 0.75:
		return "damaged"
	case ratio > 0.5:
		return "wounded"
	case ratio > 0.25:
		return "badly wounded"
	case ratio > 0:
		return "severely wounded"
	default:
		return "destroyed"
	}
}

// Anatomy is the full ordered collection of a creature's body parts. Part
// order is the template's declared order and never changes; matching results
// are reported in this order.
type Anatomy struct {
	Kind  Kind       `json:"kind"`
	Parts []BodyPart `json:"parts"`
}

// Part returns the part with the given type, or nil when absent.
func (a *Anatomy) Part(partType PartType) *BodyPart {
	for i := range a.Parts {
		if a.Parts[i].Type == partType {
			return &a.Parts[i]
		}
	}
	return nil
}

// PartRank returns the declared-order index of the given part type, or -1
// when the anatomy has no such part.
func (a *Anatomy) PartRank(partType PartType) int {
	for i := range a.Parts {
		if a.Parts[i].Type == partType {
			return i
		}
	}
	return -1
}

// VitalParts returns every part whose destruction kills the creature.
func (a *Anatomy) VitalParts() []*BodyPart {
	parts := make([]*BodyPart, 0, len(a.Parts))
	for i := range a.Parts {
		if a.Parts[i].Vital {
			parts = append(parts, &a.Parts[i])
		}
	}
	return parts
}

// Limbs returns every severable part.
func (a *Anatomy) Limbs() []*BodyPart {
	parts := make([]*BodyPart, 0, len(a.Parts))
	for i := range a.Parts {
		if a.Parts[i].Limb {
			parts = append(parts, &a.Parts[i])
		}
	}
	return parts
}

// Alive reports whether no vital part has been destroyed.
func (a *Anatomy) Alive() bool {
	for i := range a.Parts {
		if a.Parts[i].Vital && a.Parts[i].Destroyed() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy sharing no state with the receiver.
func (a *Anatomy) Clone() Anatomy {
	cloned := Anatomy{Kind: a.Kind}
	if len(a.Parts) == 0 {
		return cloned
	}
	cloned.Parts = make([]BodyPart, len(a.Parts))
	copy(cloned.Parts, a.Parts)
	for i := range cloned.Parts {
		cloned.Parts[i].Tags = a.Parts[i].Tags.Clone()
	}
	return cloned
}
