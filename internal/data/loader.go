package data

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/rpgbattle/internal/model"
)

//go:embed content.yaml
var defaultContent []byte

// contentFile is the yaml layout of a content table.
type contentFile struct {
	Player      PlayerBase  `yaml:"player"`
	Progression Progression `yaml:"progression"`
	Weapons     []WeaponDef `yaml:"weapons"`
	Skills      []SkillDef  `yaml:"skills"`
	Enemies     []EnemyDef  `yaml:"enemies"`
}

// LoadContent reads a content table from path. An empty path loads the
// table embedded in the binary.
func LoadContent(path string) (*Content, error) {
	raw := defaultContent
	source := "embedded"
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading content %s: %w", path, err)
		}
		raw = b
		source = path
	}

	c, err := ParseContent(raw)
	if err != nil {
		return nil, fmt.Errorf("loading content %s: %w", source, err)
	}

	slog.Info("loaded content",
		"source", source,
		"weapons", len(c.weaponList),
		"skills", len(c.skillList),
		"enemies", len(c.enemyList))
	return c, nil
}

// DefaultContent returns the embedded content table.
func DefaultContent() (*Content, error) {
	return ParseContent(defaultContent)
}

// ParseContent decodes and validates a yaml content table.
func ParseContent(raw []byte) (*Content, error) {
	var f contentFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	return NewContent(f.Player, f.Progression, f.Weapons, f.Skills, f.Enemies)
}

// NewContent validates definitions and builds a registry.
func NewContent(base PlayerBase, prog Progression, weapons []WeaponDef, skills []SkillDef, enemies []EnemyDef) (*Content, error) {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	weaponIDs := make(map[string]bool, len(weapons))
	for i, w := range weapons {
		if err := checkID(w.ID); err != nil {
			add("weapon #%d: %w", i, err)
			continue
		}
		if weaponIDs[w.ID] {
			add("weapon %q: duplicate id", w.ID)
		}
		weaponIDs[w.ID] = true
		if w.Damage < 0 {
			add("weapon %q: negative damage %d", w.ID, w.Damage)
		}
		if w.CritChance < 0 || w.CritChance > 1 {
			add("weapon %q: crit_chance %v outside [0, 1]", w.ID, w.CritChance)
		}
		if w.LevelRequirement < 1 {
			add("weapon %q: level must be at least 1", w.ID)
		}
	}

	skillIDs := make(map[string]bool, len(skills))
	shortcuts := make(map[string]string, len(skills))
	for i, s := range skills {
		if err := checkID(s.ID); err != nil {
			add("skill #%d: %w", i, err)
			continue
		}
		if skillIDs[s.ID] {
			add("skill %q: duplicate id", s.ID)
		}
		skillIDs[s.ID] = true
		if s.ManaCost < 0 {
			add("skill %q: negative mana_cost %d", s.ID, s.ManaCost)
		}
		if s.UnlockLevel < 1 {
			add("skill %q: unlock_level must be at least 1", s.ID)
		}
		if s.Effect == "" {
			add("skill %q: missing effect", s.ID)
		}
		if s.Shortcut != "" {
			sc := strings.ToLower(s.Shortcut)
			if other, ok := shortcuts[sc]; ok {
				add("skill %q: shortcut %q already used by %q", s.ID, sc, other)
			}
			shortcuts[sc] = s.ID
		}
	}
	for sc, id := range shortcuts {
		if skillIDs[sc] && sc != id {
			add("skill %q: shortcut %q collides with a skill id", id, sc)
		}
	}

	enemyIDs := make(map[string]bool, len(enemies))
	for i, e := range enemies {
		if err := checkID(e.ID); err != nil {
			add("enemy #%d: %w", i, err)
			continue
		}
		if enemyIDs[e.ID] {
			add("enemy %q: duplicate id", e.ID)
		}
		enemyIDs[e.ID] = true
		if e.MaxLife < 1 {
			add("enemy %q: max_life must be at least 1", e.ID)
		}
		if e.Level < 1 {
			add("enemy %q: level must be at least 1", e.ID)
		}
		if e.ExpYield < 0 || e.Damage < 0 || e.Defense < 0 {
			add("enemy %q: exp_yield, damage and defense must not be negative", e.ID)
		}
		if e.CritChance < 0 || e.CritChance > 1 {
			add("enemy %q: crit_chance %v outside [0, 1]", e.ID, e.CritChance)
		}
		for name, v := range e.Resistances {
			if _, err := model.ParseDamageType(name); err != nil {
				add("enemy %q: resistance: %w", e.ID, err)
			}
			if v < -1 || v > 1 {
				add("enemy %q: resistance %s=%v outside [-1, 1]", e.ID, name, v)
			}
		}
	}

	if base.BaseLife < 1 {
		add("player: base_life must be at least 1")
	}
	if base.BaseMana < 0 || base.LifePerLevel < 0 || base.ManaPerLevel < 0 || base.Defense < 0 {
		add("player: mana and growth values must not be negative")
	}
	if base.CritChance < 0 || base.CritChance > 1 {
		add("player: crit_chance %v outside [0, 1]", base.CritChance)
	}
	if base.StartingWeapon != "" {
		w, ok := findWeapon(weapons, base.StartingWeapon)
		switch {
		case !ok:
			add("player: unknown starting_weapon %q", base.StartingWeapon)
		case w.LevelRequirement > 1:
			add("player: starting_weapon %q requires level %d", w.ID, w.LevelRequirement)
		}
	}

	if err := checkProgression(prog); err != nil {
		add("progression: %w", err)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	c := &Content{Player: base, Progression: prog}
	c.index(
		append([]WeaponDef(nil), weapons...),
		append([]SkillDef(nil), skills...),
		append([]EnemyDef(nil), enemies...),
	)
	return c, nil
}

func checkID(id string) error {
	if id == "" {
		return errors.New("missing id")
	}
	if id != strings.ToLower(id) || strings.ContainsAny(id, " \t") {
		return fmt.Errorf("id %q must be lowercase without spaces", id)
	}
	return nil
}

func findWeapon(weapons []WeaponDef, id string) (WeaponDef, bool) {
	for _, w := range weapons {
		if w.ID == id {
			return w, true
		}
	}
	return WeaponDef{}, false
}

// checkProgression verifies the curve is positive and strictly increasing.
func checkProgression(p Progression) error {
	if p.Base < 1 {
		return fmt.Errorf("base must be at least 1, got %v", p.Base)
	}
	if p.Growth < 1 {
		return fmt.Errorf("growth must be at least 1, got %v", p.Growth)
	}
	if p.MaxLevel < 2 {
		return fmt.Errorf("max_level must be at least 2, got %d", p.MaxLevel)
	}
	prev := 0
	for lvl := 1; lvl < p.MaxLevel; lvl++ {
		t := p.Threshold(lvl)
		if t <= prev {
			return fmt.Errorf("threshold at level %d (%d) does not exceed level %d (%d)", lvl, t, lvl-1, prev)
		}
		prev = t
	}
	return nil
}
