package combat

import (
	"log/slog"

	"github.com/udisondev/rpgbattle/internal/model"
	"github.com/udisondev/rpgbattle/internal/random"
)

// CritChance returns the attacker's effective crit chance against target.
// Attacker buffs scale the chance (Blinded halves it), target buffs scale
// the chance of being crit (Blocking halves it). The result is clamped to [0, 1].
func CritChance(attacker, target *model.Entity) float64 {
	p := attacker.CritChance() * attacker.Buffs().CritMul() * target.Buffs().CritTakenMul()
	return min(max(p, 0), 1)
}

// RollCrit draws once from src. A crit happens when the draw is strictly
// below the effective chance.
func RollCrit(src random.Source, attacker, target *model.Entity) bool {
	return random.Chance(src, CritChance(attacker, target))
}

// Strike resolves a single weapon-style hit: crit roll, doubling,
// then defense and resistance through ApplyDamage.
func Strike(src random.Source, attacker, target *model.Entity, damage int, t model.DamageType) Outcome {
	var out Outcome

	base := damage
	if RollCrit(src, attacker, target) {
		out.Crit = true
		base *= 2
	}

	res := target.ApplyDamage(base, t)
	out.Dealt = res.Dealt
	out.Killed = res.Killed

	switch {
	case out.Crit:
		out.Addf("%s lands a critical hit on %s for %d damage!", attacker, target, res.Dealt)
	case res.Dealt == 0:
		out.Addf("%s's attack does nothing to %s.", attacker, target)
	default:
		out.Addf("%s hits %s for %d damage.", attacker, target, res.Dealt)
	}

	slog.Debug("strike",
		"attacker", attacker.Name(),
		"target", target.Name(),
		"raw", base,
		"type", t,
		"crit", out.Crit,
		"dealt", res.Dealt,
		"life", target.Life().Current())
	return out
}
