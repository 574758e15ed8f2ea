package main

import "sort"

const (
	ItemTypeGold          ItemType = "gold"
	ItemTypeHealthPotion  ItemType = "health_potion"
	ItemTypeIronDagger    ItemType = "iron_dagger"
	ItemTypeIronSword     ItemType = "iron_sword"
	ItemTypeTorch         ItemType = "torch"
	ItemTypeWoodenShield  ItemType = "wooden_shield"
	ItemTypeIronHelmet    ItemType = "iron_helmet"
	ItemTypeLeatherBoots  ItemType = "leather_boots"
	ItemTypeIronGauntlets ItemType = "iron_gauntlets"
	ItemTypeLeatherJerkin ItemType = "leather_jerkin"
	ItemTypeChainMail     ItemType = "chain_mail"
	ItemTypeBackpack      ItemType = "backpack"
)

var itemCatalog = buildItemCatalog()

func buildItemCatalog() map[ItemType]ItemDefinition {
	defs := []ItemDefinition{
		mustDefine(ItemDefinitionParams{
			ID:          ItemTypeGold,
			Class:       ItemClassCurrency,
			Tier:        1,
			Stackable:   true,
			QualityTags: []string{"coin"},
			Name:        "Gold Coin",
			Description: "Currency of the deep halls. Stackable with no limits.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:        ItemTypeHealthPotion,
			Class:     ItemClassConsumable,
			Tier:      1,
			Stackable: true,
			Actions:   []ItemAction{ItemActionConsume},
			Modifiers: []ItemModifier{
				{Stat: "heal_flat", Magnitude: 25},
			},
			QualityTags: []string{"lesser"},
			Name:        "Lesser Healing Potion",
			Description: "Restores a small amount of health when consumed.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:           ItemTypeIronDagger,
			Class:        ItemClassWeapon,
			Tier:         1,
			Stackable:    false,
			RequiredTags: []string{"hand", "grasp"},
			Actions:      []ItemAction{ItemActionAttack},
			Modifiers: []ItemModifier{
				{Stat: "power", Magnitude: 2},
			},
			QualityTags: []string{"iron", "dagger"},
			Name:        "Iron Dagger",
			Description: "A balanced dagger suited for close encounters.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:           ItemTypeIronSword,
			Class:        ItemClassWeapon,
			Tier:         1,
			Stackable:    false,
			RequiredTags: []string{"hand", "grasp"},
			Actions:      []ItemAction{ItemActionAttack},
			Modifiers: []ItemModifier{
				{Stat: "power", Magnitude: 4},
			},
			QualityTags: []string{"iron", "sword"},
			Name:        "Iron Sword",
			Description: "A sturdy one-handed blade. Needs a part that can grip it.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:           ItemTypeTorch,
			Class:        ItemClassTool,
			Tier:         1,
			Stackable:    false,
			RequiredTags: []string{"hand", "hold"},
			Actions:      []ItemAction{ItemActionIlluminate, ItemActionBash},
			QualityTags:  []string{"pitch"},
			Name:         "Torch",
			Description:  "Can be held without fine manipulation, light it and go.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:           ItemTypeWoodenShield,
			Class:        ItemClassShield,
			Tier:         1,
			Stackable:    false,
			RequiredTags: []string{"hand", "hold"},
			Actions:      []ItemAction{ItemActionBlock, ItemActionBash},
			Modifiers: []ItemModifier{
				{Stat: "defense", Magnitude: 3},
			},
			QualityTags: []string{"wooden"},
			Name:        "Wooden Shield",
			Description: "A round shield strapped to whatever can hold it.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:           ItemTypeIronHelmet,
			Class:        ItemClassArmor,
			Tier:         1,
			Stackable:    false,
			RequiredTags: []string{"head", "armor"},
			Modifiers: []ItemModifier{
				{Stat: "defense", Magnitude: 4},
			},
			QualityTags: []string{"iron"},
			Name:        "Iron Helmet",
			Description: "Protects the skull of anything that has one.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:           ItemTypeLeatherBoots,
			Class:        ItemClassArmor,
			Tier:         1,
			Stackable:    false,
			RequiredTags: []string{"foot", "armor"},
			Modifiers: []ItemModifier{
				{Stat: "agility", Magnitude: 1},
			},
			QualityTags: []string{"leather"},
			Name:        "Leather Boots",
			Description: "Soft boots fitted per foot.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:           ItemTypeIronGauntlets,
			Class:        ItemClassArmor,
			Tier:         2,
			Stackable:    false,
			RequiredTags: []string{"hand", "armor"},
			Modifiers: []ItemModifier{
				{Stat: "defense", Magnitude: 2},
			},
			QualityTags: []string{"iron"},
			Name:        "Iron Gauntlets",
			Description: "Armored gloves. A hand wearing one can still grip a weapon.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:           ItemTypeLeatherJerkin,
			Class:        ItemClassArmor,
			Tier:         1,
			Stackable:    false,
			RequiredTags: []string{"torso", "armor"},
			Modifiers: []ItemModifier{
				{Stat: "defense", Magnitude: 6},
			},
			QualityTags: []string{"leather", "light_armor"},
			Name:        "Leather Jerkin",
			Description: "Simple body armor providing modest protection.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:           ItemTypeChainMail,
			Class:        ItemClassArmor,
			Tier:         2,
			Stackable:    false,
			RequiredTags: []string{"torso", "armor"},
			Modifiers: []ItemModifier{
				{Stat: "defense", Magnitude: 10},
				{Stat: "agility", Magnitude: -1},
			},
			QualityTags: []string{"chain", "heavy_armor"},
			Name:        "Chain Mail",
			Description: "Heavy linked armor for a torso that can bear the weight.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:           ItemTypeBackpack,
			Class:        ItemClassAccessory,
			Tier:         1,
			Stackable:    false,
			RequiredTags: []string{"torso", "core"},
			Actions:      []ItemAction{ItemActionStore},
			Modifiers: []ItemModifier{
				{Stat: "power", Magnitude: 1},
			},
			QualityTags: []string{"canvas"},
			Name:        "Backpack",
			Description: "Straps across the torso and raises carrying capacity.",
		}),
	}

	catalog := make(map[ItemType]ItemDefinition, len(defs))
	for _, def := range defs {
		catalog[def.ID] = def
	}
	return catalog
}

func mustDefine(params ItemDefinitionParams) ItemDefinition {
	def, err := NewItemDefinition(params)
	if err != nil {
		panic(err)
	}
	return def
}

// ItemDefinitionFor fetches the definition for a given item type.
func ItemDefinitionFor(itemType ItemType) (ItemDefinition, bool) {
	def, ok := itemCatalog[itemType]
	return def, ok
}

// ItemDefinitions returns the list of definitions sorted by identifier.
func ItemDefinitions() []ItemDefinition {
	defs := make([]ItemDefinition, 0, len(itemCatalog))
	for _, def := range itemCatalog {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].ID < defs[j].ID
	})
	return defs
}
