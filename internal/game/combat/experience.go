package combat

import (
	"log/slog"

	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/model"
)

// Award summarises a progression step.
type Award struct {
	Exp       int
	FromLevel int
	ToLevel   int
	// Skills and Weapons became eligible with this award. Nothing is
	// learned or equipped automatically.
	Skills  []data.SkillDef
	Weapons []data.WeaponDef
}

// LevelsGained returns how many levels the award crossed.
func (a Award) LevelsGained() int { return a.ToLevel - a.FromLevel }

// RewardExperience adds exp to the player and advances levels while the
// per-level threshold is met, carrying the remainder over. On level-up the
// life and mana maxima grow to the new level and both pools are refilled.
func RewardExperience(c *data.Content, player *model.Player, exp int) Award {
	a := Award{Exp: exp, FromLevel: player.Level(), ToLevel: player.Level()}
	if exp <= 0 {
		return a
	}

	total := player.Experience() + exp
	level := player.Level()
	for {
		need := c.Progression.Threshold(level)
		if need <= 0 || total < need {
			break
		}
		total -= need
		level++
	}
	player.SetLevel(level)
	player.SetExperience(total)

	if level == a.FromLevel {
		return a
	}
	a.ToLevel = level

	// Restore life and mana to the new maxima on level-up
	player.SetMaxLife(c.Player.MaxLife(level))
	player.SetMaxMana(c.Player.MaxMana(level))
	player.FillPools()

	a.Skills = c.SkillsUnlockedBetween(a.FromLevel, a.ToLevel)
	a.Weapons = c.WeaponsUnlockedBetween(a.FromLevel, a.ToLevel)

	slog.Info("level up",
		"player", player.Name(),
		"from", a.FromLevel,
		"to", a.ToLevel,
		"skills", len(a.Skills),
		"weapons", len(a.Weapons))
	return a
}

// Equip switches the player's weapon after checking the level requirement.
func Equip(player *model.Player, w data.WeaponDef) error {
	if player.Level() < w.LevelRequirement {
		return Reject(ReasonWeaponLocked, "%s requires level %d", w.Name, w.LevelRequirement)
	}
	player.Equip(w.ID, w.DamageType, w.CritChance)
	return nil
}
