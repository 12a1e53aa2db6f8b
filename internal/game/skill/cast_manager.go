package skill

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/game/combat"
	"github.com/udisondev/rpgbattle/internal/model"
)

// CheckCast validates that caster may cast def right now.
// Checks, in order: caster alive, level unlock, skill known, mana.
// It returns a combat.Rejection and never mutates state.
func CheckCast(caster *model.Player, def data.SkillDef) error {
	if caster.IsDefeated() {
		return combat.Reject(combat.ReasonActorDefeated, "%s is defeated", caster)
	}
	if caster.Level() < def.UnlockLevel {
		return combat.Reject(combat.ReasonSkillLocked, "%s unlocks at level %d", def.Name, def.UnlockLevel)
	}
	if !caster.Knows(def.ID) {
		return combat.Reject(combat.ReasonSkillNotKnown, "%s has not learned %s", caster, def.Name)
	}
	if caster.Mana().Current() < def.ManaCost {
		return combat.Reject(combat.ReasonInsufficientMana, "%s needs %d mana, has %d",
			def.Name, def.ManaCost, caster.Mana().Current())
	}
	return nil
}

// Cast pays the skill's mana cost and applies its effect.
// A rejected or invalid cast leaves every entity untouched.
func Cast(ctx *Context, def data.SkillDef) (combat.Outcome, error) {
	if err := CheckCast(ctx.Caster, def); err != nil {
		return combat.Outcome{}, err
	}
	effect, err := CreateEffect(def.Effect, def.Params)
	if err != nil {
		return combat.Outcome{}, fmt.Errorf("skill %s: %w", def.ID, err)
	}

	ctx.Caster.SpendMana(def.ManaCost)

	var out combat.Outcome
	lifeBefore := ctx.Target.Life().Current()
	out.Addf("%s casts %s!", ctx.Caster, def.Name)
	out.Add(effect.Apply(ctx))
	out.Dealt = lifeBefore - ctx.Target.Life().Current()
	out.Killed = ctx.Target.IsDefeated() && lifeBefore > 0

	slog.Debug("skill cast",
		"caster", ctx.Caster.Name(),
		"skill", def.ID,
		"effect", effect.Name(),
		"mana", ctx.Caster.Mana().Current())
	return out, nil
}

// Learn teaches def to the player once its unlock level is reached.
// Learning a known skill is a no-op.
func Learn(player *model.Player, def data.SkillDef) error {
	if player.Level() < def.UnlockLevel {
		return combat.Reject(combat.ReasonSkillLocked, "%s unlocks at level %d", def.Name, def.UnlockLevel)
	}
	player.Learn(def.ID)
	return nil
}

// ValidateContent compiles every skill effect in c.
func ValidateContent(c *data.Content) error {
	var errs []error
	for _, s := range c.Skills() {
		if _, err := CreateEffect(s.Effect, s.Params); err != nil {
			errs = append(errs, fmt.Errorf("skill %q: %w", s.ID, err))
		}
	}
	return errors.Join(errs...)
}
