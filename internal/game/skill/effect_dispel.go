package skill

import (
	"fmt"

	"github.com/udisondev/rpgbattle/internal/data"
)

// CleanseEffect removes every debuff from the caster. Beneficial buffs stay.
type CleanseEffect struct{}

func NewCleanseEffect(_ data.Params) (Effect, error) {
	return &CleanseEffect{}, nil
}

func (e *CleanseEffect) Name() string { return "Cleanse" }

func (e *CleanseEffect) Apply(ctx *Context) string {
	removed := 0
	for _, kind := range ctx.Caster.Buffs().Kinds() {
		if kind.Def().Debuff && ctx.Caster.Buffs().Remove(kind) {
			removed++
		}
	}
	if removed == 0 {
		return fmt.Sprintf("%s has nothing to cleanse.", ctx.Caster)
	}
	return fmt.Sprintf("%s is cleansed of %d effect(s).", ctx.Caster, removed)
}
