package battle

import (
	"errors"
	"fmt"

	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/game/skill"
	"github.com/udisondev/rpgbattle/internal/model"
)

// ErrRoundCap is returned by Run when the round limit is hit before the
// battle ends. Zero-damage matchups never finish on their own.
var ErrRoundCap = errors.New("round cap reached")

// Strategy picks the player's next action.
type Strategy func(b *Battle) Action

// AttackOnly always attacks with the equipped weapon.
func AttackOnly(*Battle) Action { return Attack() }

// Tactical heals when life drops below a third, raises a known defensive
// buff when the enemy hits hard, and otherwise attacks.
func Tactical(b *Battle) Action {
	p := b.Player()
	c := b.Content()
	usable := func(s data.SkillDef) bool {
		return skill.CheckCast(p, s) == nil
	}

	if p.Life().Ratio() < 1.0/3 {
		for _, s := range c.Skills() {
			if s.Effect == "heal_self" && usable(s) {
				return Cast(s.ID)
			}
		}
	}
	if b.Enemy().Damage() >= p.Life().Max()/4 {
		for _, s := range c.Skills() {
			if s.Effect == "buff_self" && s.Category == data.SkillDefense && usable(s) && !hasSkillBuff(b, s) {
				return Cast(s.ID)
			}
		}
	}
	return Attack()
}

func hasSkillBuff(b *Battle, s data.SkillDef) bool {
	kind, err := model.ParseBuffKind(s.Params["buff"])
	return err == nil && b.Player().HasBuff(kind)
}

// Run drives b with strategy until it ends or maxRounds actions have been
// resolved. It returns the last round's result. A rejected action stops
// the run and is returned as the error.
func Run(b *Battle, strategy Strategy, maxRounds int) (Result, error) {
	var last Result
	for !b.IsOver() {
		if b.Round() >= maxRounds {
			return last, fmt.Errorf("battle %s after %d rounds: %w", b.ID(), b.Round(), ErrRoundCap)
		}
		res, err := b.ApplyAction(strategy(b))
		if err != nil {
			return last, err
		}
		last = res
	}
	return last, nil
}

// StrategyByName resolves "attack" or "tactical".
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case "attack":
		return AttackOnly, nil
	case "tactical":
		return Tactical, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// PickEnemy chooses the strongest enemy whose level does not exceed the
// player's, cycling through ties by n. Falls back to the weakest enemy.
func PickEnemy(c *data.Content, level, n int) data.EnemyDef {
	all := c.Enemies()
	var pool []data.EnemyDef
	best := 0
	for _, e := range all {
		switch {
		case e.Level > level:
		case e.Level > best:
			best = e.Level
			pool = append(pool[:0], e)
		case e.Level == best:
			pool = append(pool, e)
		}
	}
	if len(pool) == 0 {
		return all[0]
	}
	return pool[n%len(pool)]
}
