package skill

import (
	"errors"
	"fmt"

	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/model"
)

// DamageEffect deals fixed damage to the opponent through the regular
// defense and resistance path. Skills never crit.
// Params: "power" (int), "damage_type" (default magic), optional "buff"
// and "duration" inflicted when the hit lands for more than zero.
type DamageEffect struct {
	power      int
	damageType model.DamageType
	inflict    bool
	kind       model.BuffKind
	duration   int
}

func NewDamageEffect(params data.Params) (Effect, error) {
	power, err := intParam(params, "power", 0)
	if err != nil {
		return nil, err
	}
	if power < 1 {
		return nil, errors.New("power must be at least 1")
	}
	e := &DamageEffect{power: power, damageType: model.DamageMagic}
	if raw := params["damage_type"]; raw != "" {
		if e.damageType, err = model.ParseDamageType(raw); err != nil {
			return nil, err
		}
	}
	if params["buff"] != "" {
		if e.kind, e.duration, err = buffParams(params); err != nil {
			return nil, err
		}
		e.inflict = true
	}
	return e, nil
}

func (e *DamageEffect) Name() string { return "Damage" }

func (e *DamageEffect) Apply(ctx *Context) string {
	res := ctx.Target.ApplyDamage(e.power, e.damageType)
	msg := fmt.Sprintf("%s takes %d %s damage.", ctx.Target, res.Dealt, e.damageType)
	if e.inflict && res.Dealt > 0 && !res.Killed {
		ctx.Target.AddBuff(e.kind, e.duration)
		msg += fmt.Sprintf(" %s is %s!", ctx.Target, e.kind.Def().Name)
	}
	if res.Killed {
		msg += fmt.Sprintf("\n%s is defeated!", ctx.Target)
	}
	return msg
}
