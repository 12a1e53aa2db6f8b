package skill

import (
	"fmt"
	"strings"

	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/model"
)

// BuffSelfEffect applies a buff to the caster.
// Params: "buff", "duration", "message" ({caster} placeholder).
type BuffSelfEffect struct {
	kind     model.BuffKind
	duration int
	message  string
}

func NewBuffSelfEffect(params data.Params) (Effect, error) {
	kind, duration, err := buffParams(params)
	if err != nil {
		return nil, err
	}
	return &BuffSelfEffect{kind: kind, duration: duration, message: params["message"]}, nil
}

func (e *BuffSelfEffect) Name() string { return "BuffSelf" }

func (e *BuffSelfEffect) Apply(ctx *Context) string {
	ctx.Caster.AddBuff(e.kind, e.duration)
	if e.message != "" {
		return strings.ReplaceAll(e.message, "{caster}", ctx.Caster.Name())
	}
	return fmt.Sprintf("%s is %s for %d turns.", ctx.Caster, strings.ToLower(e.kind.Def().Name), e.duration)
}

// DebuffTargetEffect applies a buff to the opponent.
// Params: "buff", "duration".
type DebuffTargetEffect struct {
	kind     model.BuffKind
	duration int
}

func NewDebuffTargetEffect(params data.Params) (Effect, error) {
	kind, duration, err := buffParams(params)
	if err != nil {
		return nil, err
	}
	return &DebuffTargetEffect{kind: kind, duration: duration}, nil
}

func (e *DebuffTargetEffect) Name() string { return "DebuffTarget" }

func (e *DebuffTargetEffect) Apply(ctx *Context) string {
	ctx.Target.AddBuff(e.kind, e.duration)
	return fmt.Sprintf("%s is %s for %d turns.", ctx.Target, strings.ToLower(e.kind.Def().Name), e.duration)
}
