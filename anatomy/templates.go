package anatomy

import (
	"fmt"
	"sync"
)

// PartSpec declares one part inside a Template before health scaling.
type PartSpec struct {
	Type        PartType
	Name        string
	HealthRatio float64
	Vital       bool
	Limb        bool
	Protection  float64
	Tags        []Tag
}

// Template is an ordered part layout that can be instantiated for any
// creature health pool. Declared part order is authoritative: matching and
// equip resolution report parts in this order.
type Template struct {
	Kind  Kind
	Parts []PartSpec
}

// Instantiate builds an Anatomy scaled against the creature's max health.
// Every part starts undamaged.
func (t Template) Instantiate(maxHealth float64) Anatomy {
	a := Anatomy{Kind: t.Kind, Parts: make([]BodyPart, 0, len(t.Parts))}
	for _, spec := range t.Parts {
		partMax := spec.HealthRatio * maxHealth
		a.Parts = append(a.Parts, BodyPart{
			Type:        spec.Type,
			Name:        spec.Name,
			Tags:        NewTagSet(spec.Tags...),
			HealthRatio: spec.HealthRatio,
			MaxHealth:   partMax,
			Health:      partMax,
			Vital:       spec.Vital,
			Limb:        spec.Limb,
			Protection:  spec.Protection,
		})
	}
	return a
}

var (
	registryMu     sync.RWMutex
	extraTemplates = map[Kind]Template{}
)

// RegisterTemplate makes an exotic kind instantiable by NewAnatomy. Built-in
// kinds cannot be overridden; registering the same exotic kind twice replaces
// the earlier layout.
func RegisterTemplate(tmpl Template) error {
	if tmpl.Kind == "" {
		return fmt.Errorf("anatomy: template kind is required")
	}
	if len(tmpl.Parts) == 0 {
		return fmt.Errorf("anatomy: template %q declares no parts", tmpl.Kind)
	}
	switch tmpl.Kind {
	case KindHumanoid, KindQuadruped, KindArachnid, KindSimple:
		return fmt.Errorf("anatomy: kind %q is built in", tmpl.Kind)
	}
	registryMu.Lock()
	extraTemplates[tmpl.Kind] = tmpl
	registryMu.Unlock()
	return nil
}

// RegisteredKinds returns the exotic kinds currently registered.
func RegisteredKinds() []Kind {
	registryMu.RLock()
	defer registryMu.RUnlock()
	kinds := make([]Kind, 0, len(extraTemplates))
	for kind := range extraTemplates {
		kinds = append(kinds, kind)
	}
	return kinds
}

// TemplateFor returns the template for the given kind: built-ins first, then
// registered exotic layouts. Unknown kinds fall back to the simple layout, as
// the original anatomy builder did.
func TemplateFor(kind Kind) Template {
	switch kind {
	case KindHumanoid:
		return humanoidTemplate
	case KindQuadruped:
		return quadrupedTemplate
	case KindArachnid:
		return arachnidTemplate
	}
	registryMu.RLock()
	tmpl, ok := extraTemplates[kind]
	registryMu.RUnlock()
	if ok {
		return tmpl
	}
	return simpleTemplate
}

// NewAnatomy instantiates the built-in template for kind.
func NewAnatomy(kind Kind, maxHealth float64) Anatomy {
	return TemplateFor(kind).Instantiate(maxHealth)
}

var humanoidTemplate = Template{
	Kind: KindHumanoid,
	Parts: []PartSpec{
		{Type: PartHead, Name: "head", HealthRatio: 0.5, Vital: true,
			Tags: []Tag{"head", "armor", "cranium"}},
		{Type: PartNeck, Name: "neck", HealthRatio: 0.267, Vital: true,
			Tags: []Tag{"neck", "armor", "cranium"}},
		{Type: PartTorso, Name: "torso", HealthRatio: 1.0, Vital: true,
			Tags: []Tag{"torso", "armor", "core"}},
		{Type: PartLeftArm, Name: "left arm", HealthRatio: 0.4, Limb: true,
			Tags: []Tag{"arm", "armor", "left", "left_arm", "upper_limbs"}},
		{Type: PartRightArm, Name: "right arm", HealthRatio: 0.4, Limb: true,
			Tags: []Tag{"arm", "armor", "right", "right_arm", "upper_limbs"}},
		{Type: PartLeftHand, Name: "left hand", HealthRatio: 0.167, Limb: true,
			Tags: []Tag{"hand", "grasp", "manipulate", "hold", "use", "left", "left_hand", "upper_limbs"}},
		{Type: PartRightHand, Name: "right hand", HealthRatio: 0.167, Limb: true,
			Tags: []Tag{"hand", "grasp", "manipulate", "hold", "use", "right", "right_hand", "upper_limbs"}},
		{Type: PartLeftLeg, Name: "left leg", HealthRatio: 0.5, Limb: true,
			Tags: []Tag{"leg", "locomotion", "left", "left_leg", "lower_limbs"}},
		{Type: PartRightLeg, Name: "right leg", HealthRatio: 0.5, Limb: true,
			Tags: []Tag{"leg", "locomotion", "right", "right_leg", "lower_limbs"}},
		{Type: PartLeftFoot, Name: "left foot", HealthRatio: 0.2, Limb: true,
			Tags: []Tag{"foot", "locomotion", "armor", "left", "left_foot", "lower_limbs"}},
		{Type: PartRightFoot, Name: "right foot", HealthRatio: 0.2, Limb: true,
			Tags: []Tag{"foot", "locomotion", "armor", "right", "right_foot", "lower_limbs"}},
	},
}

var arachnidTemplate = Template{
	Kind: KindArachnid,
	Parts: []PartSpec{
		{Type: PartThorax, Name: "thorax", HealthRatio: 1.0, Vital: true,
			Tags: []Tag{"thorax", "armor"}},
		{Type: PartFrontLeftLeg, Name: "front left leg", HealthRatio: 0.4, Limb: true,
			Tags: []Tag{"leg", "locomotion", "left", "front_left_leg"}},
		{Type: PartFrontRightLeg, Name: "front right leg", HealthRatio: 0.4, Limb: true,
			Tags: []Tag{"leg", "locomotion", "right", "front_right_leg"}},
		{Type: PartSecondLeftLeg, Name: "second left leg", HealthRatio: 0.4, Limb: true,
			Tags: []Tag{"leg", "locomotion", "left", "second_left_leg"}},
		{Type: PartSecondRightLeg, Name: "second right leg", HealthRatio: 0.4, Limb: true,
			Tags: []Tag{"leg", "locomotion", "right", "second_right_leg"}},
		{Type: PartThirdLeftLeg, Name: "third left leg", HealthRatio: 0.4, Limb: true,
			Tags: []Tag{"leg", "locomotion", "left", "third_left_leg"}},
		{Type: PartThirdRightLeg, Name: "third right leg", HealthRatio: 0.4, Limb: true,
			Tags: []Tag{"leg", "locomotion", "right", "third_right_leg"}},
		{Type: PartBackLeftLeg, Name: "back left leg", HealthRatio: 0.4, Limb: true,
			Tags: []Tag{"leg", "locomotion", "left", "back_left_leg"}},
		{Type: PartBackRightLeg, Name: "back right leg", HealthRatio: 0.4, Limb: true,
			Tags: []Tag{"leg", "locomotion", "right", "back_right_leg"}},
		{Type: PartAbdomen, Name: "abdomen", HealthRatio: 0.5, Vital: true,
			Tags: []Tag{"abdomen", "armor"}},
	},
}

var quadrupedTemplate = Template{
	Kind: KindQuadruped,
	Parts: []PartSpec{
		{Type: PartHead, Name: "head", HealthRatio: 0.5, Vital: true,
			Tags: []Tag{"head", "armor", "cranium"}},
		{Type: PartTorso, Name: "torso", HealthRatio: 1.0, Vital: true,
			Tags: []Tag{"torso", "armor", "core"}},
		{Type: PartFrontLeftLeg, Name: "front left leg", HealthRatio: 0.4, Limb: true,
			Tags: []Tag{"leg", "locomotion", "left", "front_left_leg"}},
		{Type: PartFrontRightLeg, Name: "front right leg", HealthRatio: 0.4, Limb: true,
			Tags: []Tag{"leg", "locomotion", "right", "front_right_leg"}},
		{Type: PartBackLeftLeg, Name: "back left leg", HealthRatio: 0.4, Limb: true,
			Tags: []Tag{"leg", "locomotion", "left", "back_left_leg"}},
		{Type: PartBackRightLeg, Name: "back right leg", HealthRatio: 0.4, Limb: true,
			Tags: []Tag{"leg", "locomotion", "right", "back_right_leg"}},
		{Type: PartTail, Name: "tail", HealthRatio: 0.2, Limb: true,
			Tags: []Tag{"tail"}},
	},
}

var simpleTemplate = Template{
	Kind: KindSimple,
	Parts: []PartSpec{
		{Type: PartTorso, Name: "body", HealthRatio: 1.0, Vital: true, Protection: 1,
			Tags: []Tag{"torso", "armor"}},
	},
}
