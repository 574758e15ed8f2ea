package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"sever-and-wield/server/anatomy"
)

const defaultRecycleValue = 0.75

// ItemType represents a unique identifier for an item kind.
type ItemType string

// ItemClass enumerates the canonical classes used across gameplay systems.
type ItemClass string

const (
	ItemClassWeapon     ItemClass = "weapon"
	ItemClassShield     ItemClass = "shield"
	ItemClassArmor      ItemClass = "armor"
	ItemClassAccessory  ItemClass = "accessory"
	ItemClassConsumable ItemClass = "consumable"
	ItemClassContainer  ItemClass = "container"
	ItemClassTool       ItemClass = "tool"
	ItemClassCurrency   ItemClass = "currency"
)

var validItemClasses = map[ItemClass]struct{}{
	ItemClassWeapon:     {},
	ItemClassShield:     {},
	ItemClassArmor:      {},
	ItemClassAccessory:  {},
	ItemClassConsumable: {},
	ItemClassContainer:  {},
	ItemClassTool:       {},
	ItemClassCurrency:   {},
}

// Classes in this set must declare at least one required anatomy tag: they only
// exist in the world as things a body part carries.
var tagsRequiredForClass = map[ItemClass]bool{
	ItemClassWeapon:    true,
	ItemClassShield:    true,
	ItemClassArmor:     true,
	ItemClassAccessory: true,
	ItemClassTool:      true,
}

// ItemAction enumerates deterministic verbs introduced by an item.
type ItemAction string

const (
	ItemActionAttack     ItemAction = "attack"
	ItemActionBlock      ItemAction = "block"
	ItemActionBash       ItemAction = "bash"
	ItemActionActivate   ItemAction = "activate"
	ItemActionConsume    ItemAction = "consume"
	ItemActionThrow      ItemAction = "throw"
	ItemActionIlluminate ItemAction = "illuminate"
	ItemActionStore      ItemAction = "store"
)

var validItemActions = map[ItemAction]struct{}{
	ItemActionAttack:     {},
	ItemActionBlock:      {},
	ItemActionBash:       {},
	ItemActionActivate:   {},
	ItemActionConsume:    {},
	ItemActionThrow:      {},
	ItemActionIlluminate: {},
	ItemActionStore:      {},
}

// ItemModifier defines a deterministic stat payload applied while an item
// is equipped, or once when it is consumed.
type ItemModifier struct {
	Stat            string  `json:"stat"`
	Magnitude       float64 `json:"magnitude"`
	DurationSeconds int     `json:"duration_seconds"`
}

// ItemDefinition describes metadata for an item kind that can appear in the
// world. Equipable items declare the anatomy tags a body part must carry
// instead of binding to a fixed slot, so a catalog entry works across every
// body plan without per-species variants.
type ItemDefinition struct {
	ID             ItemType       `json:"id"`
	Class          ItemClass      `json:"class"`
	Tier           int            `json:"tier"`
	Stackable      bool           `json:"stackable"`
	FungibilityKey string         `json:"fungibility_key"`
	RequiredTags   []string       `json:"required_tags,omitempty"`
	Actions        []ItemAction   `json:"actions"`
	Modifiers      []ItemModifier `json:"modifiers"`
	RecycleValue   float64        `json:"recycle_value"`
	Name           string         `json:"name,omitempty"`
	Description    string         `json:"description,omitempty"`
}

// ItemDefinitionParams describes the configurable fields used when
// constructing an ItemDefinition.
type ItemDefinitionParams struct {
	ID           ItemType
	Class        ItemClass
	Tier         int
	Stackable    bool
	RequiredTags []string
	Actions      []ItemAction
	Modifiers    []ItemModifier
	RecycleValue float64
	QualityTags  []string
	Name         string
	Description  string
}

// NewItemDefinition validates and constructs a canonical ItemDefinition.
// Required tags are deduplicated and sorted so the marshalled form is stable.
func NewItemDefinition(params ItemDefinitionParams) (ItemDefinition, error) {
	if params.ID == "" {
		return ItemDefinition{}, fmt.Errorf("item id must be provided")
	}
	if _, ok := validItemClasses[params.Class]; !ok {
		return ItemDefinition{}, fmt.Errorf("invalid item class %q", params.Class)
	}

	required := anatomy.NewTagSet(params.RequiredTags...).Sorted()
	if tagsRequiredForClass[params.Class] && len(required) == 0 {
		return ItemDefinition{}, fmt.Errorf("item class %s requires at least one anatomy tag", params.Class)
	}

	actionSet := make([]ItemAction, 0, len(params.Actions))
	seenActions := make(map[ItemAction]struct{}, len(params.Actions))
	for _, action := range params.Actions {
		if _, ok := validItemActions[action]; !ok {
			return ItemDefinition{}, fmt.Errorf("invalid item action %q", action)
		}
		if _, seen := seenActions[action]; seen {
			continue
		}
		seenActions[action] = struct{}{}
		actionSet = append(actionSet, action)
	}
	sort.Slice(actionSet, func(i, j int) bool { return actionSet[i] < actionSet[j] })

	modifiers := make([]ItemModifier, len(params.Modifiers))
	copy(modifiers, params.Modifiers)
	sort.Slice(modifiers, func(i, j int) bool {
		if modifiers[i].Stat == modifiers[j].Stat {
			if modifiers[i].Magnitude == modifiers[j].Magnitude {
				return modifiers[i].DurationSeconds < modifiers[j].DurationSeconds
			}
			return modifiers[i].Magnitude < modifiers[j].Magnitude
		}
		return modifiers[i].Stat < modifiers[j].Stat
	})

	recycleValue := params.RecycleValue
	if recycleValue <= 0 {
		recycleValue = defaultRecycleValue
	}

	key := ComposeFungibilityKey(params.ID, params.Tier, params.QualityTags...)

	return ItemDefinition{
		ID:             params.ID,
		Class:          params.Class,
		Tier:           params.Tier,
		Stackable:      params.Stackable,
		FungibilityKey: key,
		RequiredTags:   required,
		Actions:        actionSet,
		Modifiers:      modifiers,
		RecycleValue:   recycleValue,
		Name:           params.Name,
		Description:    params.Description,
	}, nil
}

// RequiredTagSet returns the definition's anatomy requirement as a set.
func (d ItemDefinition) RequiredTagSet() anatomy.TagSet {
	return anatomy.NewTagSet(d.RequiredTags...)
}

// Equipable reports whether the definition can occupy a body part at all.
func (d ItemDefinition) Equipable() bool {
	return tagsRequiredForClass[d.Class]
}

// ComposeFungibilityKey builds a deterministic key from the item id, tier, and optional quality tags.
func ComposeFungibilityKey(id ItemType, tier int, qualityTags ...string) string {
	tags := make([]string, len(qualityTags))
	copy(tags, qualityTags)
	sort.Strings(tags)
	builder := strings.Builder{}
	builder.WriteString(string(id))
	builder.WriteString(":")
	builder.WriteString(fmt.Sprintf("%d", tier))
	if len(tags) > 0 {
		builder.WriteString(":")
		builder.WriteString(strings.Join(tags, ","))
	}
	return builder.String()
}

// MarshalItemDefinitions returns the stable JSON representation for a slice of definitions.
func MarshalItemDefinitions(defs []ItemDefinition) ([]byte, error) {
	stable := make([]ItemDefinition, len(defs))
	copy(stable, defs)
	sort.Slice(stable, func(i, j int) bool {
		return stable[i].ID < stable[j].ID
	})
	return json.Marshal(stable)
}
