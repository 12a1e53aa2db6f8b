package data

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/udisondev/rpgbattle/internal/model"
)

// SkillCategory groups skills for display.
type SkillCategory uint8

const (
	SkillOffense SkillCategory = iota
	SkillDefense
	SkillUtility
)

var skillCategoryNames = [...]string{"offense", "defense", "utility"}

func (c SkillCategory) String() string {
	if int(c) < len(skillCategoryNames) {
		return skillCategoryNames[c]
	}
	return fmt.Sprintf("SkillCategory(%d)", c)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *SkillCategory) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for i, name := range skillCategoryNames {
		if name == s {
			*c = SkillCategory(i)
			return nil
		}
	}
	return fmt.Errorf("unknown skill category %q", s)
}

// Params are free-form effect parameters, parsed by the effect that owns them.
type Params map[string]string

// WeaponDef is an immutable weapon definition. Players reference it by ID.
type WeaponDef struct {
	ID               string           `yaml:"id"`
	Name             string           `yaml:"name"`
	Description      string           `yaml:"description"`
	Damage           int              `yaml:"damage"`
	CritChance       float64          `yaml:"crit_chance"`
	DamageType       model.DamageType `yaml:"damage_type"`
	Magic            model.MagicType  `yaml:"magic"`
	LevelRequirement int              `yaml:"level"`
	// OnHit is the registry key of the effect run after base damage, empty for none.
	OnHit  string `yaml:"on_hit"`
	Params Params `yaml:"params"`
}

// SkillDef is an immutable skill definition.
type SkillDef struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Shortcut    string        `yaml:"shortcut"`
	ManaCost    int           `yaml:"mana_cost"`
	Category    SkillCategory `yaml:"category"`
	UnlockLevel int           `yaml:"unlock_level"`
	// Effect is the registry key of the cast effect.
	Effect string `yaml:"effect"`
	Params Params `yaml:"params"`
}

// EnemyDef is an immutable enemy definition. Battles instantiate a fresh
// model.Enemy from it.
type EnemyDef struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Level       int                `yaml:"level"`
	ExpYield    int                `yaml:"exp_yield"`
	Damage      int                `yaml:"damage"`
	Defense     int                `yaml:"defense"`
	CritChance  float64            `yaml:"crit_chance"`
	MaxLife     int                `yaml:"max_life"`
	DamageType  model.DamageType   `yaml:"damage_type"`
	Resistances map[string]float64 `yaml:"resistances"`
	// Policy is the registry key of the attack overlay, empty for a plain attack.
	Policy string `yaml:"policy"`
	Params Params `yaml:"params"`
}

// Resists converts the yaml resistance table into model form.
// Keys are validated by the loader.
func (d EnemyDef) Resists() model.Resistances {
	out := make(model.Resistances, len(d.Resistances))
	for name, v := range d.Resistances {
		t, err := model.ParseDamageType(name)
		if err != nil {
			continue
		}
		out[t] = v
	}
	return out
}

// Spawn instantiates a fresh enemy.
func (d EnemyDef) Spawn() *model.Enemy {
	return model.NewEnemy(model.EnemyStats{
		EntityStats: model.EntityStats{
			Name:        d.Name,
			MaxLife:     d.MaxLife,
			Defense:     d.Defense,
			DamageType:  d.DamageType,
			Resistances: d.Resists(),
			CritChance:  d.CritChance,
		},
		ID:          d.ID,
		Description: d.Description,
		Level:       d.Level,
		ExpYield:    d.ExpYield,
		Damage:      d.Damage,
		Policy:      d.Policy,
	})
}

// PlayerBase holds the stats every player starts from.
type PlayerBase struct {
	BaseLife       int     `yaml:"base_life"`
	LifePerLevel   int     `yaml:"life_per_level"`
	BaseMana       int     `yaml:"base_mana"`
	ManaPerLevel   int     `yaml:"mana_per_level"`
	Defense        int     `yaml:"defense"`
	CritChance     float64 `yaml:"crit_chance"`
	StartingWeapon string  `yaml:"starting_weapon"`
}

// MaxLife returns the life maximum at level.
func (b PlayerBase) MaxLife(level int) int {
	return b.BaseLife + b.LifePerLevel*(max(level, 1)-1)
}

// MaxMana returns the mana maximum at level.
func (b PlayerBase) MaxMana(level int) int {
	return b.BaseMana + b.ManaPerLevel*(max(level, 1)-1)
}

// Content is the registry of weapon, skill and enemy definitions keyed by ID.
// It is immutable after loading and safe to share between battles.
type Content struct {
	Player      PlayerBase
	Progression Progression

	weapons    map[string]WeaponDef
	skills     map[string]SkillDef
	shortcuts  map[string]string
	enemies    map[string]EnemyDef
	weaponList []string
	skillList  []string
	enemyList  []string
}

// Weapon looks up a weapon by ID.
func (c *Content) Weapon(id string) (WeaponDef, bool) {
	w, ok := c.weapons[id]
	return w, ok
}

// Skill looks up a skill by ID or shortcut.
func (c *Content) Skill(idOrShortcut string) (SkillDef, bool) {
	key := strings.ToLower(idOrShortcut)
	if s, ok := c.skills[key]; ok {
		return s, true
	}
	if id, ok := c.shortcuts[key]; ok {
		return c.skills[id], true
	}
	return SkillDef{}, false
}

// Enemy looks up an enemy by ID.
func (c *Content) Enemy(id string) (EnemyDef, bool) {
	e, ok := c.enemies[id]
	return e, ok
}

// Weapons returns all weapons ordered by level requirement, then ID.
func (c *Content) Weapons() []WeaponDef {
	out := make([]WeaponDef, 0, len(c.weaponList))
	for _, id := range c.weaponList {
		out = append(out, c.weapons[id])
	}
	return out
}

// Skills returns all skills ordered by unlock level, then ID.
func (c *Content) Skills() []SkillDef {
	out := make([]SkillDef, 0, len(c.skillList))
	for _, id := range c.skillList {
		out = append(out, c.skills[id])
	}
	return out
}

// Enemies returns all enemies ordered by level, then ID.
func (c *Content) Enemies() []EnemyDef {
	out := make([]EnemyDef, 0, len(c.enemyList))
	for _, id := range c.enemyList {
		out = append(out, c.enemies[id])
	}
	return out
}

// SkillsUnlockedBetween returns skills whose unlock level is in (from, to].
func (c *Content) SkillsUnlockedBetween(from, to int) []SkillDef {
	var out []SkillDef
	for _, s := range c.Skills() {
		if s.UnlockLevel > from && s.UnlockLevel <= to {
			out = append(out, s)
		}
	}
	return out
}

// WeaponsUnlockedBetween returns weapons whose level requirement is in (from, to].
func (c *Content) WeaponsUnlockedBetween(from, to int) []WeaponDef {
	var out []WeaponDef
	for _, w := range c.Weapons() {
		if w.LevelRequirement > from && w.LevelRequirement <= to {
			out = append(out, w)
		}
	}
	return out
}

// EligibleSkills returns skills usable at level.
func (c *Content) EligibleSkills(level int) []SkillDef {
	return c.SkillsUnlockedBetween(math.MinInt, level)
}

// EligibleWeapons returns weapons usable at level.
func (c *Content) EligibleWeapons(level int) []WeaponDef {
	return c.WeaponsUnlockedBetween(math.MinInt, level)
}

func (c *Content) index(weapons []WeaponDef, skills []SkillDef, enemies []EnemyDef) {
	c.weapons = make(map[string]WeaponDef, len(weapons))
	c.skills = make(map[string]SkillDef, len(skills))
	c.shortcuts = make(map[string]string, len(skills))
	c.enemies = make(map[string]EnemyDef, len(enemies))

	slices.SortStableFunc(weapons, func(a, b WeaponDef) int {
		if a.LevelRequirement != b.LevelRequirement {
			return a.LevelRequirement - b.LevelRequirement
		}
		return strings.Compare(a.ID, b.ID)
	})
	slices.SortStableFunc(skills, func(a, b SkillDef) int {
		if a.UnlockLevel != b.UnlockLevel {
			return a.UnlockLevel - b.UnlockLevel
		}
		return strings.Compare(a.ID, b.ID)
	})
	slices.SortStableFunc(enemies, func(a, b EnemyDef) int {
		if a.Level != b.Level {
			return a.Level - b.Level
		}
		return strings.Compare(a.ID, b.ID)
	})

	c.weaponList = c.weaponList[:0]
	c.skillList = c.skillList[:0]
	c.enemyList = c.enemyList[:0]
	for _, w := range weapons {
		c.weapons[w.ID] = w
		c.weaponList = append(c.weaponList, w.ID)
	}
	for _, s := range skills {
		c.skills[s.ID] = s
		c.skillList = append(c.skillList, s.ID)
		if s.Shortcut != "" {
			c.shortcuts[strings.ToLower(s.Shortcut)] = s.ID
		}
	}
	for _, e := range enemies {
		c.enemies[e.ID] = e
		c.enemyList = append(c.enemyList, e.ID)
	}
}
