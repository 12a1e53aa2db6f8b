package combat

import (
	"fmt"

	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/model"
	"github.com/udisondev/rpgbattle/internal/random"
)

// WeaponAttack resolves the player's attack with weapon w against target.
// The on-hit hook runs strictly after the primary damage step, so defense
// changes it makes only affect later attacks.
//
// Validation happens before any draw or mutation; a rejected attack leaves
// every entity and the random source untouched.
func WeaponAttack(src random.Source, wielder *model.Player, w data.WeaponDef, target *model.Enemy) (Outcome, error) {
	if err := ValidateAttack(wielder.Entity, target.Entity); err != nil {
		return Outcome{}, err
	}
	onHit, err := NewHook(w.OnHit, w.Params)
	if err != nil {
		return Outcome{}, fmt.Errorf("weapon %s: %w", w.ID, err)
	}

	out := Strike(src, wielder.Entity, target.Entity, w.Damage, w.DamageType)
	if onHit != nil {
		out.Add(onHit(src, wielder.Entity, target.Entity))
	}
	out.Killed = target.IsDefeated()
	if out.Killed {
		out.Addf("%s is defeated!", target)
	}
	return out, nil
}

// EnemyAttack resolves an enemy's turn: a base attack with the enemy's own
// damage, crit chance and damage type, then the optional overlay policy.
// An Immune target shrugs off the overlay entirely.
func EnemyAttack(src random.Source, attacker *model.Enemy, policy Hook, target *model.Player) (Outcome, error) {
	if err := ValidateAttack(attacker.Entity, target.Entity); err != nil {
		return Outcome{}, err
	}

	out := Strike(src, attacker.Entity, target.Entity, attacker.Damage(), attacker.DamageType())
	if policy != nil {
		if target.HasBuff(model.BuffImmune) {
			out.Addf("%s is immune to %s's tricks.", target, attacker)
		} else {
			out.Add(policy(src, attacker.Entity, target.Entity))
		}
	}
	out.Killed = target.IsDefeated()
	if out.Killed {
		out.Addf("%s has fallen!", target)
	}
	return out, nil
}
