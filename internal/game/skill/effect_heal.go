package skill

import (
	"errors"
	"fmt"

	"github.com/udisondev/rpgbattle/internal/data"
)

// HealEffect restores the caster's life, clamped to max.
// Params: "amount" (int).
type HealEffect struct {
	amount int
}

func NewHealEffect(params data.Params) (Effect, error) {
	amount, err := intParam(params, "amount", 0)
	if err != nil {
		return nil, err
	}
	if amount < 1 {
		return nil, errors.New("amount must be at least 1")
	}
	return &HealEffect{amount: amount}, nil
}

func (e *HealEffect) Name() string { return "Heal" }

func (e *HealEffect) Apply(ctx *Context) string {
	healed := ctx.Caster.Heal(e.amount)
	return fmt.Sprintf("%s restores %d HP!", ctx.Caster, healed)
}
