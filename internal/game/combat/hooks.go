package combat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/model"
	"github.com/udisondev/rpgbattle/internal/random"
)

func init() {
	RegisterHook("halve_defense", newHalveDefense)
	RegisterHook("heal_wielder", newHealWielder)
	RegisterHook("inflict", newInflict)
	RegisterHook("extra_hits", newExtraHits)
}

// newHalveDefense halves the target's defense for the rest of the fight.
// The enemy instance is discarded after battle, so nothing persists.
// Params: "message" (optional).
func newHalveDefense(p data.Params) (Hook, error) {
	msg := p["message"]
	return func(_ random.Source, attacker, target *model.Entity) string {
		target.SetDefense(target.Defense() / 2)
		return expand(msg, attacker, target, strconv.Itoa(target.Defense()))
	}, nil
}

// newHealWielder heals the attacker by a uniform amount in [min, max].
// Params: "min", "max", "message".
func newHealWielder(p data.Params) (Hook, error) {
	lo, err := intParam(p, "min", 1)
	if err != nil {
		return nil, err
	}
	hi, err := intParam(p, "max", lo)
	if err != nil {
		return nil, err
	}
	if lo < 0 || hi < lo {
		return nil, fmt.Errorf("invalid heal range [%d, %d]", lo, hi)
	}
	msg := p["message"]
	if msg == "" {
		msg = "{attacker} restores {n} HP!"
	}
	return func(src random.Source, attacker, target *model.Entity) string {
		healed := attacker.Heal(random.Between(src, lo, hi))
		return expand(msg, attacker, target, strconv.Itoa(healed))
	}, nil
}

// newInflict applies a buff to the target with probability 1/one_in.
// With fresh_only the hook does nothing, and draws nothing, while the
// target already carries the buff.
// Params: "buff" (required), "one_in", "duration", "fresh_only", "message".
func newInflict(p data.Params) (Hook, error) {
	kind, err := model.ParseBuffKind(p["buff"])
	if err != nil {
		return nil, err
	}
	oneIn, err := intParam(p, "one_in", 1)
	if err != nil {
		return nil, err
	}
	duration, err := intParam(p, "duration", kind.Def().DefaultDuration)
	if err != nil {
		return nil, err
	}
	if oneIn < 1 || duration < 1 {
		return nil, errors.New("one_in and duration must be at least 1")
	}
	fresh, err := boolParam(p, "fresh_only")
	if err != nil {
		return nil, err
	}
	msg := p["message"]
	if msg == "" {
		msg = "{target} is now " + strings.ToLower(kind.Def().Name) + "!"
	}
	return func(src random.Source, attacker, target *model.Entity) string {
		if fresh && target.HasBuff(kind) {
			return ""
		}
		if !random.OneIn(src, oneIn) {
			return ""
		}
		target.AddBuff(kind, duration)
		return expand(msg, attacker, target, strconv.Itoa(duration))
	}, nil
}

// newExtraHits deals several secondary hits of direct damage, each uniform
// in [min, max]. Secondary hits bypass defense and resistance.
// Params: "hits", "min", "max", "message".
func newExtraHits(p data.Params) (Hook, error) {
	hits, err := intParam(p, "hits", 1)
	if err != nil {
		return nil, err
	}
	lo, err := intParam(p, "min", 1)
	if err != nil {
		return nil, err
	}
	hi, err := intParam(p, "max", lo)
	if err != nil {
		return nil, err
	}
	if hits < 1 || lo < 0 || hi < lo {
		return nil, fmt.Errorf("invalid extra hits %d x [%d, %d]", hits, lo, hi)
	}
	msg := p["message"]
	if msg == "" {
		msg = "{attacker} strikes again!"
	}
	return func(src random.Source, attacker, target *model.Entity) string {
		dealt := make([]string, 0, hits)
		for range hits {
			res := target.LoseLife(random.Between(src, lo, hi))
			dealt = append(dealt, strconv.Itoa(res.Dealt))
		}
		return expand(msg, attacker, target, "") + " " + strings.Join(dealt, ", ") + "."
	}, nil
}
