package battle

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/model"
	"github.com/udisondev/rpgbattle/internal/save"
)

// Fresh returns the progression of a brand new player.
func Fresh(c *data.Content) save.Progress {
	return save.Progress{
		Life:     c.Player.MaxLife(1),
		Mana:     c.Player.MaxMana(1),
		Level:    1,
		WeaponID: c.Player.StartingWeapon,
	}
}

// NewPlayer builds a player entity from persisted progression.
//
// Maxima are derived from the level, so stored pools are clamped to them.
// A player saved with no life starts at full life and mana. References
// that the content no longer satisfies are dropped with a warning: an
// unknown or locked weapon falls back to the starting weapon and unknown
// or locked skills are forgotten.
func NewPlayer(c *data.Content, userID int64, name string, p save.Progress) (*model.Player, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("player %d: %w", userID, err)
	}
	level := p.Level
	if top := c.Progression.MaxLevel; top > 0 && level > top {
		level = top
	}

	player, err := model.NewPlayer(model.PlayerStats{
		EntityStats: model.EntityStats{
			Name:       name,
			MaxLife:    c.Player.MaxLife(level),
			Defense:    c.Player.Defense,
			CritChance: c.Player.CritChance,
		},
		UserID:     userID,
		MaxMana:    c.Player.MaxMana(level),
		Level:      level,
		Experience: p.Experience,
	})
	if err != nil {
		return nil, fmt.Errorf("player %d: %w", userID, err)
	}
	if p.Life > 0 {
		player.SetLife(p.Life)
		player.SetMana(p.Mana)
	}

	w, ok := c.Weapon(p.WeaponID)
	if !ok || w.LevelRequirement > level {
		if p.WeaponID != "" {
			slog.Warn("dropping unusable weapon", "userID", userID, "weapon", p.WeaponID, "level", level)
		}
		w, ok = c.Weapon(c.Player.StartingWeapon)
	}
	if ok {
		player.Equip(w.ID, w.DamageType, w.CritChance)
	}

	for _, id := range p.Skills {
		s, ok := c.Skill(id)
		if !ok || s.ID != id || s.UnlockLevel > level {
			slog.Warn("dropping unusable skill", "userID", userID, "skill", id, "level", level)
			continue
		}
		player.Learn(id)
	}
	return player, nil
}

// LoadPlayer decodes a persisted blob and builds the player. An empty blob
// yields a new player; a corrupt one is replaced by a fresh state and
// reported through recovered.
func LoadPlayer(c *data.Content, userID int64, name string, blob []byte) (player *model.Player, recovered bool, err error) {
	p, recovered := save.DecodeOrFresh(blob, Fresh(c))
	player, err = NewPlayer(c, userID, name, p)
	return player, recovered, err
}
