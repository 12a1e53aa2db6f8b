package data

import "github.com/udisondev/rpgbattle/internal/model"

// TestContent returns a small validated content table for cross-package tests.
// The starter weapon deals 5 blunt damage without crits, so a Green Slime
// falls to exactly two hits.
func TestContent() *Content {
	c, err := NewContent(
		PlayerBase{
			BaseLife:       20,
			LifePerLevel:   5,
			BaseMana:       5,
			ManaPerLevel:   1,
			StartingWeapon: "training_sword",
		},
		Progression{Base: 5, Growth: 1.25, MaxLevel: 50},
		[]WeaponDef{
			{ID: "training_sword", Name: "Training Sword", Damage: 5, DamageType: model.DamageBlunt, LevelRequirement: 1},
			{ID: "lucky_dagger", Name: "Lucky Dagger", Damage: 4, CritChance: 0.2, DamageType: model.DamagePierce, LevelRequirement: 1},
			{ID: "titan_hammer", Name: "Titan Hammer", Damage: 14, CritChance: 0.05, DamageType: model.DamageBlunt, Magic: model.MagicWater, LevelRequirement: 20, OnHit: "halve_defense"},
			{ID: "forest_trance", Name: "Forest Trance", Damage: 18, CritChance: 0.05, DamageType: model.DamageMagic, Magic: model.MagicEarth, LevelRequirement: 29, OnHit: "heal_wielder", Params: Params{"min": "3", "max": "6"}},
			{ID: "sword_mcguffin", Name: "Sword McGuffin", Damage: 25, CritChance: 0.05, DamageType: model.DamageCutting, Magic: model.MagicFire, LevelRequirement: 35, OnHit: "inflict", Params: Params{"buff": "blinded", "one_in": "3", "duration": "5", "fresh_only": "true"}},
		},
		[]SkillDef{
			{ID: "ready_block", Name: "Ready Block", Shortcut: "block", ManaCost: 1, Category: SkillDefense, UnlockLevel: 5, Effect: "buff_self", Params: Params{"buff": "blocking", "duration": "3"}},
			{ID: "mend", Name: "Mend", Shortcut: "heal", ManaCost: 3, Category: SkillUtility, UnlockLevel: 1, Effect: "heal_self", Params: Params{"amount": "10"}},
			{ID: "fireball", Name: "Fireball", Shortcut: "fire", ManaCost: 4, Category: SkillOffense, UnlockLevel: 1, Effect: "damage_target", Params: Params{"power": "15", "damage_type": "magic"}},
			{ID: "expose_weakness", Name: "Expose Weakness", Shortcut: "expose", ManaCost: 2, Category: SkillOffense, UnlockLevel: 2, Effect: "debuff_target", Params: Params{"buff": "vulnerable", "duration": "3"}},
			{ID: "cleanse", Name: "Cleanse", ManaCost: 2, Category: SkillUtility, UnlockLevel: 1, Effect: "cleanse_self"},
		},
		[]EnemyDef{
			{ID: "slime", Name: "Green Slime", Level: 1, ExpYield: 1, Damage: 1, MaxLife: 10, DamageType: model.DamageBlunt},
			{ID: "rock", Name: "Living Rock", Level: 1, ExpYield: 1, Damage: 0, Defense: 100, MaxLife: 10, DamageType: model.DamageBlunt},
			{ID: "goblin", Name: "Goblin", Level: 12, ExpYield: 8, Damage: 10, Defense: 3, CritChance: 0.05, MaxLife: 60, DamageType: model.DamagePierce, Policy: "inflict", Params: Params{"buff": "vulnerable", "one_in": "3", "duration": "3", "fresh_only": "true"}},
			{ID: "mama_oinx", Name: "Mama Oinx", Level: 17, ExpYield: 9, Damage: 8, Defense: 5, CritChance: 0.02, MaxLife: 69, DamageType: model.DamageBlunt, Resistances: map[string]float64{"pierce": -0.2}, Policy: "extra_hits", Params: Params{"hits": "5", "min": "1", "max": "2"}},
		},
	)
	if err != nil {
		panic("data: test content: " + err.Error())
	}
	return c
}
